package midi

import (
	"context"
	"errors"
	"time"

	"keymidi/debug"

	"gitlab.com/gomidi/midi/v2/drivers"
)

// DeviceEvent is emitted when the watched output port connects/disconnects
type DeviceEvent struct {
	Type DeviceEventType
	Name string
	Err  error // set when a reconnect attempt failed
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

func (t DeviceEventType) String() string {
	if t == DeviceConnected {
		return "connected"
	}
	return "disconnected"
}

// Watcher handles hot-plug of the output port: it detaches the Output when
// the port disappears and reattaches it when a port with the same name returns.
type Watcher struct {
	out      *Output
	events   chan DeviceEvent
	pollRate time.Duration
	timeout  time.Duration
	list     func(timeout time.Duration) ([]drivers.Out, error)
}

// NewWatcher creates a watcher for out
func NewWatcher(out *Output) *Watcher {
	return &Watcher{
		out:      out,
		events:   make(chan DeviceEvent, 16),
		pollRate: time.Second,
		timeout:  3 * time.Second,
		list:     OutPorts,
	}
}

// Events returns a channel of connect/disconnect events; closed when Run returns
func (w *Watcher) Events() <-chan DeviceEvent {
	return w.events
}

// Run starts the polling loop (blocking - run in goroutine)
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollRate)
	defer ticker.Stop()
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *Watcher) scan() {
	ports, err := w.list(w.timeout)
	if err != nil {
		// driver hung - keep current state and try again next tick
		debug.Log("watcher", "scan failed: %v", err)
		return
	}

	var found drivers.Out
	for _, p := range ports {
		if p.String() == w.out.Name() {
			found = p
			break
		}
	}

	connected := w.out.Connected()
	switch {
	case connected && found == nil:
		w.out.detach()
		w.emit(DeviceEvent{Type: DeviceDisconnected, Name: w.out.Name()})
	case !connected && found != nil:
		err := w.out.attach(found)
		if errors.Is(err, ErrClosed) {
			return
		}
		if err != nil {
			debug.Log("watcher", "reattach %q failed: %v", w.out.Name(), err)
			w.emit(DeviceEvent{Type: DeviceDisconnected, Name: w.out.Name(), Err: err})
			return
		}
		w.emit(DeviceEvent{Type: DeviceConnected, Name: w.out.Name()})
	}
}

func (w *Watcher) emit(ev DeviceEvent) {
	debug.Log("watcher", "%s %q", ev.Type, ev.Name)
	select {
	case w.events <- ev:
	default:
	}
}
