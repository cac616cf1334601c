// Package debug writes a category-tagged trace of key, tracker and MIDI
// activity to a file. The terminal UI owns the screen, so nothing goes to
// stdout or stderr.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileName is the log file created in the directory passed to Enable
const FileName = "debug.log"

type logger struct {
	mu    sync.Mutex
	f     *os.File
	every map[string]int // LogEvery call counts per category+format
}

var std logger

// Enable truncates <dir>/debug.log and starts logging to it. Enabling twice
// keeps the current file.
func Enable(dir string) error {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.f != nil {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	std.f = f
	std.every = make(map[string]int)
	std.write("debug", fmt.Sprintf("keymidi pid %d, log opened %s", os.Getpid(), time.Now().Format(time.RFC3339)))
	return nil
}

// Disable closes the log file
func Disable() {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.f == nil {
		return
	}
	std.write("debug", "log closed")
	std.f.Close()
	std.f = nil
	std.every = nil
}

// Enabled reports whether Log writes anywhere
func Enabled() bool {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.f != nil
}

// Log writes one line under category
func Log(category, format string, args ...any) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.f == nil {
		return
	}
	std.write(category, fmt.Sprintf(format, args...))
}

// LogEvery writes only every nth call with the same category and format, for
// paths hit on every key repeat or MIDI message
func LogEvery(n int, category, format string, args ...any) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.f == nil {
		return
	}
	key := category + "\x00" + format
	std.every[key]++
	if count := std.every[key]; n <= 1 || count%n == 0 {
		std.write(category, fmt.Sprintf(format, args...)+fmt.Sprintf(" (#%d)", count))
	}
}

// write appends a line; caller holds mu. Synced per line so a crash keeps it.
func (l *logger) write(category, msg string) {
	fmt.Fprintf(l.f, "%s %-9s %s\n", time.Now().Format("15:04:05.000"), category, msg)
	l.f.Sync()
}
