package nix

import "strings"

const (
	errorMarker   = "error:"
	warningMarker = "warning:"
)

// classifier is a two-state machine (idle / accumulating) over the
// tool's stderr lines. A line starting with the error marker opens a new
// record, flushing the open one first; a warning-marker line flushes the
// open record and is reported immediately; any other line is a
// continuation of the open record, or a standalone warning when idle.
type classifier struct {
	records []ErrorRecord
	open    *ErrorRecord
	warn    func(line string)
}

func newClassifier(warn func(line string)) *classifier {
	return &classifier{warn: warn}
}

func (c *classifier) feed(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}

	switch {
	case strings.HasPrefix(trimmed, errorMarker):
		c.flush()
		c.open = &ErrorRecord{Title: trimmed}
	case strings.HasPrefix(trimmed, warningMarker):
		c.flush()
		c.warn(trimmed)
	case c.open != nil:
		c.open.Details = append(c.open.Details, trimmed)
	default:
		c.warn(trimmed)
	}
}

// finish flushes any still-open record and returns the ordered result.
func (c *classifier) finish() []ErrorRecord {
	c.flush()

	return c.records
}

func (c *classifier) flush() {
	if c.open != nil {
		c.records = append(c.records, *c.open)
		c.open = nil
	}
}
