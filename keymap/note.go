package keymap

import (
	"fmt"
	"strconv"
	"strings"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName converts a MIDI note to a readable name (e.g. "C4", "F#3"), C4 = 60
func NoteName(note uint8) string {
	octave := int(note)/12 - 1
	return fmt.Sprintf("%s%d", noteNames[note%12], octave)
}

// ParseNote accepts a note number ("60") or a name ("C4", "f#3", "Bb2")
func ParseNote(s string) (uint8, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty note")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > MaxNote {
			return 0, fmt.Errorf("note %d out of range 0-%d", n, MaxNote)
		}
		return uint8(n), nil
	}

	upper := strings.ToUpper(s[:1])
	rest := s[1:]
	pitch := -1
	for i, name := range noteNames {
		if name == upper {
			pitch = i
			break
		}
	}
	if pitch < 0 {
		return 0, fmt.Errorf("invalid note %q", s)
	}
	switch {
	case strings.HasPrefix(rest, "#"):
		pitch++
		rest = rest[1:]
	case strings.HasPrefix(rest, "b"):
		pitch--
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("invalid octave in note %q", s)
	}
	n := (octave+1)*12 + pitch
	if n < 0 || n > MaxNote {
		return 0, fmt.Errorf("note %q out of range", s)
	}
	return uint8(n), nil
}
