package keymap

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// MaxNote is the highest valid MIDI note number
const MaxNote = 127

// ErrEmptyKey is returned when a binding has no key name
var ErrEmptyKey = errors.New("keymap: empty key name")

// Map is an immutable key -> note table. Several keys may share a note.
type Map struct {
	notes map[string]uint8
}

// New validates bindings and returns a Map holding a private copy of them
func New(bindings map[string]int) (*Map, error) {
	m := &Map{notes: make(map[string]uint8, len(bindings))}
	for key, note := range bindings {
		if strings.TrimSpace(key) == "" {
			return nil, ErrEmptyKey
		}
		if note < 0 || note > MaxNote {
			return nil, fmt.Errorf("keymap: key %q: note %d out of range 0-%d", key, note, MaxNote)
		}
		m.notes[key] = uint8(note)
	}
	return m, nil
}

// Default returns the built-in QWERTY layout. 'k'/'q' share 72 and 'l'/'w' share 74.
func Default() *Map {
	m, err := New(DefaultBindings())
	if err != nil {
		panic(err)
	}
	return m
}

// DefaultBindings returns a fresh copy of the built-in layout
func DefaultBindings() map[string]int {
	return map[string]int{
		"a": 60, "s": 62, "d": 64, "f": 65, "g": 67,
		"h": 69, "j": 71, "k": 72, "l": 74,
		"z": 48, "x": 50, "c": 52, "v": 53, "b": 55,
		"n": 57, "m": 59, "q": 72, "w": 74, "e": 76,
		"r": 77, "t": 79, "y": 81, "u": 83, "i": 84,
		"o": 86, "p": 88,
	}
}

// Lookup resolves a key to its note
func (m *Map) Lookup(key string) (uint8, bool) {
	note, ok := m.notes[key]
	return note, ok
}

// Len returns the number of bound keys
func (m *Map) Len() int {
	return len(m.notes)
}

// Keys returns the bound keys sorted by note, then by name
func (m *Map) Keys() []string {
	keys := maps.Keys(m.notes)
	slices.SortFunc(keys, func(a, b string) bool {
		if m.notes[a] != m.notes[b] {
			return m.notes[a] < m.notes[b]
		}
		return a < b
	})
	return keys
}

// KeysFor returns every key bound to note, sorted by name
func (m *Map) KeysFor(note uint8) []string {
	var keys []string
	for k, n := range m.notes {
		if n == note {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Bindings returns a copy of the table
func (m *Map) Bindings() map[string]int {
	out := make(map[string]int, len(m.notes))
	for k, n := range m.notes {
		out[k] = int(n)
	}
	return out
}
