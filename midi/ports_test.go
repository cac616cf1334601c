package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/drivers"
)

func TestFindOutPort(t *testing.T) {
	ports := []drivers.Out{
		newFakeOut("Midi Through Port-0"),
		newFakeOut("FluidSynth virtual port"),
		newFakeOut("IAC Driver Bus 1"),
	}

	p, err := FindOutPort(ports, "IAC Driver Bus 1")
	require.NoError(t, err)
	assert.Equal(t, "IAC Driver Bus 1", p.String())

	p, err = FindOutPort(ports, "fluidsynth")
	require.NoError(t, err)
	assert.Equal(t, "FluidSynth virtual port", p.String())

	p, err = FindOutPort(ports, "")
	require.NoError(t, err)
	assert.Equal(t, "FluidSynth virtual port", p.String(), "through ports are skipped")

	_, err = FindOutPort(ports, "Launchpad")
	assert.ErrorIs(t, err, ErrNoPort)

	_, err = FindOutPort([]drivers.Out{newFakeOut("Midi Through Port-0")}, "")
	assert.ErrorIs(t, err, ErrNoPort)
}
