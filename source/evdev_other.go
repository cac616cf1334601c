//go:build !linux

package source

import (
	"context"
	"errors"
)

// Evdev reads key transitions from a Linux input device. Unavailable on this
// platform.
type Evdev struct {
	Path string
	Grab bool
}

// Run always fails outside Linux
func (e *Evdev) Run(ctx context.Context, hub *Hub) error {
	return errors.New("evdev input is only supported on linux")
}
