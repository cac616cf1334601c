package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 72, cfg.Keymap["q"])
	assert.Equal(t, SourceTerminal, cfg.Input.Source)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"keymap": {"a": 60, "semicolon": 61},
		"output": {"port": "FluidSynth", "channel": 10, "velocity": 90},
		"input": {"source": "evdev", "device": "/dev/input/event3", "grab": true},
		"panic_key": "space"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"a": 60, "semicolon": 61}, cfg.Keymap, "file keymap replaces the default")
	assert.Equal(t, "FluidSynth", cfg.Output.PortName)
	assert.Equal(t, uint8(9), cfg.MIDIChannel())
	assert.Equal(t, 90, cfg.Output.Velocity)
	assert.Equal(t, SourceEvdev, cfg.Input.Source)
	assert.True(t, cfg.Input.Grab)
	assert.Equal(t, "space", cfg.PanicKey)

	// untouched sections keep defaults
	assert.Equal(t, 4, cfg.Dispatch.Workers)

	keys, err := cfg.KeyMap()
	require.NoError(t, err)
	note, ok := keys.Lookup("semicolon")
	assert.True(t, ok)
	assert.Equal(t, uint8(61), note)
}

func TestLoadDuration(t *testing.T) {
	path := writeConfig(t, `{"input": {"source": "terminal", "release_after": "400ms"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Duration(400*time.Millisecond), cfg.Input.ReleaseAfter)

	path = writeConfig(t, `{"input": {"source": "terminal", "release_after": 400}}`)
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"bad json":         `{`,
		"note range":       `{"keymap": {"a": 128}}`,
		"empty keymap":     `{"keymap": {}}`,
		"channel":          `{"output": {"channel": 17, "velocity": 100}}`,
		"velocity":         `{"output": {"channel": 1, "velocity": 0}}`,
		"source":           `{"input": {"source": "joystick"}}`,
		"evdev device":     `{"input": {"source": "evdev"}}`,
		"virtual name":     `{"output": {"channel": 1, "velocity": 100, "virtual": true, "virtual_name": ""}}`,
		"workers":          `{"dispatch": {"workers": 0}}`,
		"panic key bound":  `{"panic_key": "a"}`,
		"negative release": `{"input": {"source": "terminal", "release_after": "-1s"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.Output.PortName = "IAC Driver Bus 1"
	cfg.Input.ReleaseAfter = Duration(time.Second)
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"release_after": "1s"`)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
