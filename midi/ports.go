package midi

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// ErrNoPort is returned when no usable output port exists
var ErrNoPort = errors.New("midi: no output port available")

// ErrScanTimeout is returned when the driver does not answer in time
var ErrScanTimeout = errors.New("midi: port scan timed out")

// ExcludedPatterns are virtual/system ports never picked automatically
var ExcludedPatterns = []string{"Midi Through", "Through Port", "Dummy"}

// OutPorts lists output ports. The driver call runs in a goroutine because
// CoreMIDI can hang; on timeout the scan is abandoned.
func OutPorts(timeout time.Duration) ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case outs := <-ch:
		return outs, nil
	case <-time.After(timeout):
		return nil, ErrScanTimeout
	}
}

// FindOutPort picks a port by name: exact match first, then case-insensitive
// substring. An empty name picks the first port not in ExcludedPatterns.
func FindOutPort(ports []drivers.Out, name string) (drivers.Out, error) {
	if name == "" {
		for _, p := range ports {
			if !isExcluded(p.String()) {
				return p, nil
			}
		}
		return nil, ErrNoPort
	}

	for _, p := range ports {
		if p.String() == name {
			return p, nil
		}
	}
	for _, p := range ports {
		if containsCI(p.String(), name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q not found", ErrNoPort, name)
}

func isExcluded(name string) bool {
	for _, pat := range ExcludedPatterns {
		if containsCI(name, pat) {
			return true
		}
	}
	return false
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
