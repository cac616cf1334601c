//go:build linux

package source

import (
	"context"
	"errors"
	"fmt"
	"os"

	"keymidi/debug"

	"github.com/holoplot/go-evdev"
)

// key event values from the kernel
const (
	evRelease = 0
	evPress   = 1
	evRepeat  = 2
)

// Evdev reads key transitions from a Linux input device
// (/dev/input/eventN), which reports real releases.
type Evdev struct {
	Path string
	Grab bool // exclusive access: keys stop reaching other programs
}

// Run opens the device and feeds hub until ctx is cancelled
func (e *Evdev) Run(ctx context.Context, hub *Hub) error {
	dev, err := evdev.Open(e.Path)
	if err != nil {
		return fmt.Errorf("open input device %s: %w", e.Path, err)
	}
	if name, err := dev.Name(); err == nil {
		debug.Log("evdev", "opened %s (%s)", e.Path, name)
	}

	if e.Grab {
		if err := dev.Grab(); err != nil {
			dev.Close()
			return fmt.Errorf("grab %s: %w", e.Path, err)
		}
	}

	// ReadOne blocks; closing the device unblocks it on shutdown
	go func() {
		<-ctx.Done()
		if e.Grab {
			_ = dev.Ungrab()
		}
		dev.Close()
	}()

	for {
		ev, err := dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, os.ErrClosed) {
				return nil
			}
			return fmt.Errorf("read %s: %w", e.Path, err)
		}
		if ev.Type != evdev.EV_KEY {
			continue
		}

		key := normalizeKeyName(evdev.KEYToString[ev.Code])
		switch ev.Value {
		case evPress, evRepeat:
			hub.Press(key)
		case evRelease:
			hub.Release(key)
		}
	}
}
