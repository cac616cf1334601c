package midi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/drivers"
)

func TestWatcherDetachesAndReattaches(t *testing.T) {
	port := newFakeOut("Synth")
	out, err := NewOutput(port, 0, 100)
	require.NoError(t, err)

	var present []drivers.Out
	w := NewWatcher(out)
	w.list = func(time.Duration) ([]drivers.Out, error) {
		return present, nil
	}

	// port vanished
	w.scan()
	assert.False(t, out.Connected())
	ev := <-w.Events()
	assert.Equal(t, DeviceDisconnected, ev.Type)
	assert.Equal(t, "Synth", ev.Name)

	// still gone: no duplicate event
	w.scan()
	assert.Len(t, w.events, 0)

	// port is back under the same name
	replug := newFakeOut("Synth")
	present = []drivers.Out{newFakeOut("Other"), replug}
	w.scan()
	assert.True(t, out.Connected())
	ev = <-w.Events()
	assert.Equal(t, DeviceConnected, ev.Type)

	require.NoError(t, out.NoteOn(64))
	assert.Len(t, replug.messages(), 1)
}

func TestWatcherScanErrorKeepsState(t *testing.T) {
	out, err := NewOutput(newFakeOut("Synth"), 0, 100)
	require.NoError(t, err)

	w := NewWatcher(out)
	w.list = func(time.Duration) ([]drivers.Out, error) {
		return nil, ErrScanTimeout
	}
	w.scan()
	assert.True(t, out.Connected())
	assert.Len(t, w.events, 0)
}

func TestWatcherLeavesClosedOutputAlone(t *testing.T) {
	out, err := NewOutput(newFakeOut("Synth"), 0, 100)
	require.NoError(t, err)
	require.NoError(t, out.Close())
	require.NoError(t, out.Close())

	replug := newFakeOut("Synth")
	w := NewWatcher(out)
	w.list = func(time.Duration) ([]drivers.Out, error) {
		return []drivers.Out{replug}, nil
	}
	w.scan()

	assert.False(t, out.Connected())
	assert.False(t, replug.IsOpen(), "a closed output must not reopen its port")
	assert.Len(t, w.events, 0)
	assert.ErrorIs(t, out.NoteOn(60), ErrDisconnected)
	assert.ErrorIs(t, out.attach(replug), ErrClosed)
}
