// Package rtmidi registers the rtmidi driver with gomidi and opens virtual
// output ports that synthesizers can connect to.
package rtmidi

import (
	"fmt"

	"keymidi/midi"

	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// OpenVirtualOutput creates a virtual output port called name
func OpenVirtualOutput(name string, channel, velocity uint8) (*midi.Output, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	port, err := drv.OpenVirtualOut(name)
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("open virtual output %q: %w", name, err)
	}
	out, err := midi.NewOutput(port, channel, velocity)
	if err != nil {
		drv.Close()
		return nil, err
	}
	out.SetCloser(drv.Close)
	return out, nil
}
