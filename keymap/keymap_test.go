package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayout(t *testing.T) {
	m := Default()
	assert.Equal(t, 26, m.Len())

	note, ok := m.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, uint8(60), note)

	assert.Equal(t, []string{"k", "q"}, m.KeysFor(72))
	assert.Equal(t, []string{"l", "w"}, m.KeysFor(74))

	_, ok = m.Lookup("1")
	assert.False(t, ok)
}

func TestNewRejectsBadBindings(t *testing.T) {
	_, err := New(map[string]int{"a": 128})
	assert.Error(t, err)

	_, err = New(map[string]int{"a": -1})
	assert.Error(t, err)

	_, err = New(map[string]int{" ": 60})
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestNewCopiesBindings(t *testing.T) {
	b := map[string]int{"a": 60}
	m, err := New(b)
	require.NoError(t, err)

	b["a"] = 61
	b["s"] = 62

	note, _ := m.Lookup("a")
	assert.Equal(t, uint8(60), note)
	assert.Equal(t, 1, m.Len())
}

func TestKeysOrderedByNote(t *testing.T) {
	m, err := New(map[string]int{"x": 50, "z": 48, "q": 72, "k": 72})
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "x", "k", "q"}, m.Keys())
}

func TestNoteName(t *testing.T) {
	assert.Equal(t, "C4", NoteName(60))
	assert.Equal(t, "C#4", NoteName(61))
	assert.Equal(t, "C-1", NoteName(0))
	assert.Equal(t, "G9", NoteName(127))
}

func TestParseNote(t *testing.T) {
	cases := map[string]uint8{
		"60":  60,
		"C4":  60,
		"c4":  60,
		"F#3": 54,
		"Bb2": 46,
		"C-1": 0,
	}
	for in, want := range cases {
		got, err := ParseNote(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "128", "H4", "C", "G#9"} {
		_, err := ParseNote(bad)
		assert.Error(t, err, bad)
	}
}
