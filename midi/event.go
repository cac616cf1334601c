package midi

import (
	"fmt"

	"keymidi/keymap"
)

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
)

// Event is a note command produced by the tracker
type Event struct {
	Type uint8 // NoteOn, NoteOff
	Note uint8
}

func (e Event) String() string {
	kind := "note-off"
	if e.Type == NoteOn {
		kind = "note-on"
	}
	return fmt.Sprintf("%s %s(%d)", kind, keymap.NoteName(e.Note), e.Note)
}
