package tracker

import (
	"errors"
	"fmt"

	"keymidi/midi"
)

type options struct {
	workers   int
	queueSize int
	onError   func(error)
}

func defaultOptions() options {
	return options{
		workers:   4,
		queueSize: 64,
	}
}

// Option configures a Tracker
type Option func(*options)

// WithWorkers sets the number of send workers (minimum 1)
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithQueueSize sets the per-worker queue depth
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.queueSize = n
		}
	}
}

// WithErrorHandler receives every failed send as a *SendError. It is called
// from worker goroutines.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

// ErrQueueFull is the cause of a SendError for a command dropped because its
// worker was still busy with earlier commands for the same shard
var ErrQueueFull = errors.New("tracker: send queue full")

// SendError reports a command the sink rejected or that was dropped before
// reaching it. The active set is not rolled back.
type SendError struct {
	Event midi.Event
	Err   error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send %s: %v", e.Event, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}
