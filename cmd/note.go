package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"keymidi/keymap"
)

var noteDuration time.Duration

func init() {
	sendNoteCmd.Flags().DurationVar(&noteDuration, "duration", 500*time.Millisecond, "time between note-on and note-off")
	rootCmd.AddCommand(sendNoteCmd)
}

var sendNoteCmd = &cobra.Command{
	Use:   "send-note <note>",
	Short: "Send one note to the configured output (e.g. 60 or C4)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := keymap.ParseNote(args[0])
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out, err := openOutput(cfg)
		if err != nil {
			return err
		}
		defer out.Close()

		fmt.Printf("%s -> %s\n", keymap.NoteName(note), out.Name())
		if err := out.NoteOn(note); err != nil {
			return err
		}
		select {
		case <-time.After(noteDuration):
		case <-cmd.Context().Done():
		}
		return out.NoteOff(note)
	},
}
