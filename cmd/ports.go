package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"keymidi/midi"
	_ "keymidi/midi/rtmidi" // registers the rtmidi driver
)

func init() {
	rootCmd.AddCommand(portsCmd)
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI output ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := midi.OutPorts(portScanTimeout)
		if errors.Is(err, midi.ErrScanTimeout) {
			return fmt.Errorf("%w (on macOS: sudo killall coreaudiod midiserver)", err)
		}
		if err != nil {
			return err
		}
		if len(ports) == 0 {
			fmt.Println("(no output ports)")
			return nil
		}
		for i, p := range ports {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
		return nil
	},
}
