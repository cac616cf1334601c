// Package tracker turns key transitions into a deduplicated stream of MIDI
// note commands.
//
// The tracker keeps the set of sounding notes. A key-down emits a note-on only
// when its note is not already sounding, and a key-up emits a note-off only
// when it is. Deduplication is per note, not per key: when several keys share
// a note, releasing any one of them turns the note off.
//
// The test-and-mutate of the set and the enqueueing of the resulting command
// happen in one critical section. The send itself runs on a worker outside
// the lock. Workers are sharded by note, so commands for one note reach the
// sink in the order they were committed, while commands for different notes
// may be delivered in any order.
//
// Enqueueing never blocks. A slow or hung sink fills its shard's queue, and
// further commands for that shard are dropped and reported as ErrQueueFull
// while key handling carries on.
package tracker

import (
	"sync"
	"sync/atomic"

	"keymidi/debug"
	"keymidi/keymap"
	"keymidi/midi"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Sink receives note commands. Implementations must tolerate concurrent calls.
type Sink interface {
	NoteOn(note uint8) error
	NoteOff(note uint8) error
}

// Stats counts commands by outcome
type Stats struct {
	Emitted uint64 // committed to the active set
	Sent    uint64
	Failed  uint64 // rejected by the sink or dropped on a full queue
}

// Tracker owns the active note set
type Tracker struct {
	keys *keymap.Map
	sink Sink

	mu     sync.Mutex
	active map[uint8]struct{}
	closed bool

	pool    *pool
	onError func(error)
	updates chan struct{}

	emitted atomic.Uint64
	sent    atomic.Uint64
	failed  atomic.Uint64
}

// New creates a tracker and starts its send workers
func New(keys *keymap.Map, sink Sink, opts ...Option) *Tracker {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t := &Tracker{
		keys:    keys,
		sink:    sink,
		active:  make(map[uint8]struct{}),
		onError: o.onError,
		updates: make(chan struct{}, 1),
	}
	t.pool = newPool(o.workers, o.queueSize, t.deliver)
	return t
}

// KeyDown handles a press. Unmapped keys and notes already sounding are ignored.
func (t *Tracker) KeyDown(key string) {
	note, ok := t.keys.Lookup(key)
	if !ok {
		return
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	if _, on := t.active[note]; on {
		t.mu.Unlock()
		debug.LogEvery(20, "tracker", "key %q: note %d already on", key, note)
		return
	}
	t.active[note] = struct{}{}
	ev := midi.Event{Type: midi.NoteOn, Note: note}
	queued := t.emit(ev)
	t.mu.Unlock()

	debug.Log("tracker", "key %q down -> note-on %d", key, note)
	if !queued {
		t.fail(ev, ErrQueueFull)
	}
	t.notify()
}

// KeyUp handles a release. Unmapped keys and notes not sounding are ignored.
func (t *Tracker) KeyUp(key string) {
	note, ok := t.keys.Lookup(key)
	if !ok {
		return
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	if _, on := t.active[note]; !on {
		t.mu.Unlock()
		return
	}
	delete(t.active, note)
	ev := midi.Event{Type: midi.NoteOff, Note: note}
	queued := t.emit(ev)
	t.mu.Unlock()

	debug.Log("tracker", "key %q up -> note-off %d", key, note)
	if !queued {
		t.fail(ev, ErrQueueFull)
	}
	t.notify()
}

// AllNotesOff turns off every sounding note and returns how many were stopped
func (t *Tracker) AllNotesOff() int {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0
	}
	notes := maps.Keys(t.active)
	slices.Sort(notes)
	var dropped []midi.Event
	for _, note := range notes {
		delete(t.active, note)
		ev := midi.Event{Type: midi.NoteOff, Note: note}
		if !t.emit(ev) {
			dropped = append(dropped, ev)
		}
	}
	t.mu.Unlock()

	for _, ev := range dropped {
		t.fail(ev, ErrQueueFull)
	}
	if len(notes) > 0 {
		debug.Log("tracker", "all notes off: %v", notes)
		t.notify()
	}
	return len(notes)
}

// emit queues ev for delivery. Caller holds t.mu so the queue order per note
// matches the order of set mutations. Reports false when ev was dropped; the
// caller reports it with fail after unlocking.
func (t *Tracker) emit(ev midi.Event) bool {
	t.emitted.Add(1)
	return t.pool.submit(ev)
}

func (t *Tracker) deliver(ev midi.Event) {
	var err error
	if ev.Type == midi.NoteOn {
		err = t.sink.NoteOn(ev.Note)
	} else {
		err = t.sink.NoteOff(ev.Note)
	}

	if err != nil {
		t.fail(ev, err)
		return
	}
	t.sent.Add(1)
}

func (t *Tracker) fail(ev midi.Event, err error) {
	t.failed.Add(1)
	debug.Log("tracker", "%s failed: %v", ev, err)
	if t.onError != nil {
		t.onError(&SendError{Event: ev, Err: err})
	}
}

func (t *Tracker) notify() {
	select {
	case t.updates <- struct{}{}:
	default:
	}
}

// Active returns the sounding notes in ascending order
func (t *Tracker) Active() []uint8 {
	t.mu.Lock()
	defer t.mu.Unlock()
	notes := maps.Keys(t.active)
	slices.Sort(notes)
	return notes
}

// IsActive reports whether note is sounding
func (t *Tracker) IsActive(note uint8) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, on := t.active[note]
	return on
}

// Stats returns command counters
func (t *Tracker) Stats() Stats {
	return Stats{
		Emitted: t.emitted.Load(),
		Sent:    t.sent.Load(),
		Failed:  t.failed.Load(),
	}
}

// Updates signals (coalesced) whenever the active set changes
func (t *Tracker) Updates() <-chan struct{} {
	return t.updates
}

// Close stops accepting transitions and waits for queued commands to be sent.
// Sounding notes are left on.
func (t *Tracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.mu.Unlock()

	t.pool.close()
	debug.Log("tracker", "closed, stats=%+v", t.Stats())
}
