package midi

import (
	"errors"
	"fmt"
	"sync"

	"keymidi/debug"
	"keymidi/keymap"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

var (
	// ErrDisconnected is returned by sends while the output port is gone
	ErrDisconnected = errors.New("midi: output disconnected")
	// ErrNoteRange is returned for notes above 127
	ErrNoteRange = errors.New("midi: note out of range")
	// ErrClosed is returned when reattaching an output after Close
	ErrClosed = errors.New("midi: output closed")
)

// Output sends note commands to one MIDI output port on a fixed channel.
// Safe for concurrent use.
type Output struct {
	name     string
	channel  uint8 // 0-15
	velocity uint8

	mu     sync.RWMutex
	port   drivers.Out
	send   func(msg gomidi.Message) error
	closed bool

	closeFn func() error // extra cleanup (virtual port driver)
}

// NewOutput opens port and returns an Output sending on channel (0-15)
func NewOutput(port drivers.Out, channel, velocity uint8) (*Output, error) {
	if channel > 15 {
		return nil, fmt.Errorf("midi: channel %d out of range 0-15", channel)
	}
	if velocity == 0 || velocity > 127 {
		return nil, fmt.Errorf("midi: velocity %d out of range 1-127", velocity)
	}
	o := &Output{
		name:     port.String(),
		channel:  channel,
		velocity: velocity,
	}
	if err := o.attach(port); err != nil {
		return nil, err
	}
	return o, nil
}

// Name returns the port name the output was opened on
func (o *Output) Name() string {
	return o.name
}

// Connected reports whether sends currently reach a port
func (o *Output) Connected() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.send != nil
}

// NoteOn sends a note-on at the configured velocity
func (o *Output) NoteOn(note uint8) error {
	if note > keymap.MaxNote {
		return fmt.Errorf("%w: %d", ErrNoteRange, note)
	}
	return o.write(gomidi.NoteOn(o.channel, note, o.velocity))
}

// NoteOff sends a note-off
func (o *Output) NoteOff(note uint8) error {
	if note > keymap.MaxNote {
		return fmt.Errorf("%w: %d", ErrNoteRange, note)
	}
	return o.write(gomidi.NoteOff(o.channel, note))
}

func (o *Output) write(msg gomidi.Message) error {
	o.mu.RLock()
	send := o.send
	o.mu.RUnlock()

	if send == nil {
		return ErrDisconnected
	}
	if err := send(msg); err != nil {
		return fmt.Errorf("midi: send %s to %q: %w", msg, o.name, err)
	}
	debug.LogEvery(50, "midi-out", "sent %s", msg)
	return nil
}

// attach (re)opens port and routes sends to it. Fails with ErrClosed once
// the output has been closed.
func (o *Output) attach(port drivers.Out) error {
	o.mu.RLock()
	closed := o.closed
	o.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	send, err := gomidi.SendTo(port)
	if err != nil {
		return fmt.Errorf("open output %q: %w", port.String(), err)
	}

	o.mu.Lock()
	if o.closed {
		// closed while the port was opening
		o.mu.Unlock()
		_ = port.Close()
		return ErrClosed
	}
	o.port = port
	o.send = send
	o.mu.Unlock()
	debug.Log("midi-out", "attached %q ch=%d vel=%d", port.String(), o.channel+1, o.velocity)
	return nil
}

// detach drops the current port; sends fail with ErrDisconnected until attach
func (o *Output) detach() {
	o.mu.Lock()
	port := o.port
	o.port = nil
	o.send = nil
	o.mu.Unlock()

	if port != nil {
		_ = port.Close()
	}
	debug.Log("midi-out", "detached %q", o.name)
}

// Close closes the port. The output cannot be reattached afterwards.
func (o *Output) Close() error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	o.mu.Unlock()

	o.detach()
	if o.closeFn != nil {
		return o.closeFn()
	}
	return nil
}

// SetCloser registers cleanup run after the port is closed, e.g. the driver
// that owns a virtual port
func (o *Output) SetCloser(fn func() error) {
	o.closeFn = fn
}
