package midi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestOutputSendsNotes(t *testing.T) {
	port := newFakeOut("Synth")
	out, err := NewOutput(port, 2, 100)
	require.NoError(t, err)
	assert.True(t, port.IsOpen())
	assert.Equal(t, "Synth", out.Name())

	require.NoError(t, out.NoteOn(60))
	require.NoError(t, out.NoteOff(60))

	msgs := port.messages()
	require.Len(t, msgs, 2)

	var ch, key, vel uint8
	require.True(t, gomidi.Message(msgs[0]).GetNoteStart(&ch, &key, &vel))
	assert.Equal(t, uint8(2), ch)
	assert.Equal(t, uint8(60), key)
	assert.Equal(t, uint8(100), vel)

	require.True(t, gomidi.Message(msgs[1]).GetNoteEnd(&ch, &key))
	assert.Equal(t, uint8(60), key)
}

func TestOutputRejectsBadArguments(t *testing.T) {
	_, err := NewOutput(newFakeOut("x"), 16, 100)
	assert.Error(t, err)

	_, err = NewOutput(newFakeOut("x"), 0, 0)
	assert.Error(t, err)

	out, err := NewOutput(newFakeOut("x"), 0, 100)
	require.NoError(t, err)
	assert.ErrorIs(t, out.NoteOn(128), ErrNoteRange)
	assert.ErrorIs(t, out.NoteOff(200), ErrNoteRange)
}

func TestOutputOpenFailure(t *testing.T) {
	port := newFakeOut("broken")
	port.openErr = errors.New("busy")

	_, err := NewOutput(port, 0, 100)
	assert.Error(t, err)
}

func TestOutputSendFailureIsWrapped(t *testing.T) {
	port := newFakeOut("Synth")
	out, err := NewOutput(port, 0, 100)
	require.NoError(t, err)

	sendErr := errors.New("device gone")
	port.sendErr = sendErr
	assert.ErrorIs(t, out.NoteOn(60), sendErr)
}

func TestOutputDetached(t *testing.T) {
	port := newFakeOut("Synth")
	out, err := NewOutput(port, 0, 100)
	require.NoError(t, err)

	out.detach()
	assert.False(t, out.Connected())
	assert.False(t, port.IsOpen())
	assert.ErrorIs(t, out.NoteOn(60), ErrDisconnected)

	require.NoError(t, out.attach(port))
	assert.NoError(t, out.NoteOn(60))
}

func TestOutputCloseRunsCloser(t *testing.T) {
	out, err := NewOutput(newFakeOut("Virtual"), 0, 100)
	require.NoError(t, err)

	called := false
	out.SetCloser(func() error {
		called = true
		return nil
	})
	require.NoError(t, out.Close())
	assert.True(t, called)
	assert.ErrorIs(t, out.NoteOff(60), ErrDisconnected)
}
