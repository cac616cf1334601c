package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"keymidi/keymap"
	"keymidi/source"
)

// SourceType identifies where key transitions come from
type SourceType string

const (
	SourceTerminal SourceType = "terminal"
	SourceEvdev    SourceType = "evdev"
)

// Duration is a time.Duration written as a string ("650ms") in JSON
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"650ms\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// OutputConfig selects the MIDI output port
type OutputConfig struct {
	PortName    string `json:"port,omitempty"` // empty = first usable port
	Virtual     bool   `json:"virtual,omitempty"`
	VirtualName string `json:"virtual_name,omitempty"`
	Channel     int    `json:"channel"` // 1-16
	Velocity    int    `json:"velocity"`
}

// InputConfig selects the key event source
type InputConfig struct {
	Source       SourceType `json:"source"`
	Device       string     `json:"device,omitempty"` // evdev only
	Grab         bool       `json:"grab,omitempty"`   // evdev only
	ReleaseAfter Duration   `json:"release_after"`    // terminal only
}

// DispatchConfig sizes the send worker pool
type DispatchConfig struct {
	Workers   int `json:"workers"`
	QueueSize int `json:"queue_size"`
}

// Config is the main configuration structure
type Config struct {
	Keymap            map[string]int `json:"keymap"` // terminal key tokens: "a", ",", " "
	Output            OutputConfig   `json:"output"`
	Input             InputConfig    `json:"input"`
	Dispatch          DispatchConfig `json:"dispatch"`
	PanicKey          string         `json:"panic_key,omitempty"`
	AllNotesOffOnExit bool           `json:"all_notes_off_on_exit,omitempty"`
	Palette           string         `json:"palette,omitempty"` // GIMP .gpl file
	Debug             bool           `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Keymap: keymap.DefaultBindings(),
		Output: OutputConfig{
			VirtualName: "keymidi",
			Channel:     1,
			Velocity:    100,
		},
		Input: InputConfig{
			Source:       SourceTerminal,
			ReleaseAfter: Duration(source.DefaultReleaseAfter),
		},
		Dispatch: DispatchConfig{
			Workers:   4,
			QueueSize: 64,
		},
		PanicKey: "esc",
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "keymidi"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config at path (default location if empty), or returns
// defaults if the file does not exist. Fields missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	cfg.Keymap = nil // a file keymap replaces the default one entirely
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Keymap == nil {
		cfg.Keymap = keymap.DefaultBindings()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path (default location if empty)
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges and combinations
func (c *Config) Validate() error {
	if _, err := c.KeyMap(); err != nil {
		return err
	}
	if c.Output.Channel < 1 || c.Output.Channel > 16 {
		return fmt.Errorf("output.channel %d out of range 1-16", c.Output.Channel)
	}
	if c.Output.Velocity < 1 || c.Output.Velocity > 127 {
		return fmt.Errorf("output.velocity %d out of range 1-127", c.Output.Velocity)
	}
	if c.Output.Virtual && c.Output.VirtualName == "" {
		return errors.New("output.virtual_name is required for a virtual port")
	}
	switch c.Input.Source {
	case SourceTerminal:
	case SourceEvdev:
		if c.Input.Device == "" {
			return errors.New("input.device is required for the evdev source")
		}
	default:
		return fmt.Errorf("unknown input.source %q", c.Input.Source)
	}
	if c.Input.ReleaseAfter < 0 {
		return errors.New("input.release_after must not be negative")
	}
	if c.Dispatch.Workers < 1 {
		return fmt.Errorf("dispatch.workers %d must be at least 1", c.Dispatch.Workers)
	}
	if c.Dispatch.QueueSize < 0 {
		return fmt.Errorf("dispatch.queue_size %d must not be negative", c.Dispatch.QueueSize)
	}
	if _, bound := c.Keymap[c.PanicKey]; bound && c.PanicKey != "" {
		return fmt.Errorf("panic_key %q is also bound to a note", c.PanicKey)
	}
	return nil
}

// KeyMap builds the immutable key table
func (c *Config) KeyMap() (*keymap.Map, error) {
	if len(c.Keymap) == 0 {
		return nil, errors.New("keymap is empty")
	}
	return keymap.New(c.Keymap)
}

// MIDIChannel returns the 0-based output channel
func (c *Config) MIDIChannel() uint8 {
	return uint8(c.Output.Channel - 1)
}
