package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"keymidi/config"
	"keymidi/debug"
)

var (
	configPath string
	debugLog   bool
)

var rootCmd = &cobra.Command{
	Use:   "keymidi",
	Short: "Play MIDI notes from the computer keyboard",
	Long: `keymidi maps key presses to MIDI note-on/note-off messages.

Keys come from the terminal (releases are inferred when auto-repeat stops)
or, on Linux, straight from an input device. Notes go to a MIDI output port.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return run(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/keymidi/config.json)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "write a debug log to the config directory")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if debugLog || cfg.Debug {
		dir, err := config.ConfigDir()
		if err != nil {
			return nil, err
		}
		if err := debug.Enable(dir); err != nil {
			return nil, fmt.Errorf("enable debug log: %w", err)
		}
	}
	return cfg, nil
}
