package source

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// DefaultReleaseAfter outlasts the usual 250-600ms auto-repeat delay, so a
// held key keeps refreshing its press before the release fires.
const DefaultReleaseAfter = 650 * time.Millisecond

// Terminal adapts terminal key input, which reports presses and auto-repeat
// but never releases. The first press of a key is delivered as a key-down,
// later presses while held as redundant key-downs, and a key-up is
// synthesized once the key has been quiet for releaseAfter.
type Terminal struct {
	hub          *Hub
	releaseAfter time.Duration

	mu       sync.Mutex
	held     map[string]bool
	muted    map[string]bool // held through Silence; repeats are swallowed
	releases map[string]func(f func())
}

// NewTerminal creates a terminal backend feeding hub
func NewTerminal(hub *Hub, releaseAfter time.Duration) *Terminal {
	if releaseAfter <= 0 {
		releaseAfter = DefaultReleaseAfter
	}
	return &Terminal{
		hub:          hub,
		releaseAfter: releaseAfter,
		held:         make(map[string]bool),
		muted:        make(map[string]bool),
		releases:     make(map[string]func(f func())),
	}
}

// Press records a key message from the terminal
func (t *Terminal) Press(key string) {
	t.mu.Lock()
	release, ok := t.releases[key]
	if !ok {
		release = debounce.New(t.releaseAfter)
		t.releases[key] = release
	}
	t.held[key] = true
	muted := t.muted[key]
	t.mu.Unlock()

	if !muted {
		t.hub.Press(key)
	}
	release(func() { t.release(key) })
}

func (t *Terminal) release(key string) {
	t.mu.Lock()
	if !t.held[key] {
		t.mu.Unlock()
		return
	}
	delete(t.held, key)
	muted := t.muted[key]
	delete(t.muted, key)
	t.mu.Unlock()

	if !muted {
		t.hub.Release(key)
	}
}

// Silence releases every held key now and ignores their auto-repeat until
// each key has gone quiet, so a key kept down after an all-notes-off does not
// sound again. Returns the silenced keys.
func (t *Terminal) Silence() []string {
	t.mu.Lock()
	var keys []string
	for key := range t.held {
		if !t.muted[key] {
			t.muted[key] = true
			keys = append(keys, key)
		}
	}
	t.mu.Unlock()

	for _, key := range keys {
		t.hub.Release(key)
	}
	return keys
}

// Held returns whether key is considered down
func (t *Terminal) Held(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.held[key]
}
