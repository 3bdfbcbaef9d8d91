// Package timer provides wall-clock timing for long-running commands.
package timer

import "time"

// Timer measures the elapsed time of a command invocation.
type Timer interface {
	// Start records the reference point all later readings are measured from.
	Start()
	// GetTiming returns the time elapsed since Start. Calling it before
	// Start returns zero.
	GetTiming() time.Duration
}

type realTimer struct {
	start time.Time
}

// New creates a Timer backed by the system clock.
func New() Timer {
	return &realTimer{}
}

func (t *realTimer) Start() {
	t.start = time.Now()
}

func (t *realTimer) GetTiming() time.Duration {
	if t.start.IsZero() {
		return 0
	}

	return time.Since(t.start)
}
