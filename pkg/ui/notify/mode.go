package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Styling mode constants.
const (
	// ModeAuto enables styling only on interactive terminals, decided per stream.
	ModeAuto Mode = "auto"
	// ModeAlways enables styling unconditionally.
	ModeAlways Mode = "always"
	// ModeNever disables styling unconditionally.
	ModeNever Mode = "never"
)

// Mode controls when output is styled with ANSI escape codes.
// It implements pflag.Value so it can be used directly as a flag.
type Mode string

// String returns the flag representation of the mode.
func (m *Mode) String() string {
	return string(*m)
}

// Set validates and stores a mode given on the command line.
func (m *Mode) Set(value string) error {
	switch Mode(value) {
	case ModeAuto, ModeAlways, ModeNever:
		*m = Mode(value)

		return nil
	default:
		return fmt.Errorf("invalid style %q, must be one of %s",
			value, strings.Join(m.ValidValues(), ", "))
	}
}

// Type describes the flag value type in help output.
func (m *Mode) Type() string {
	return "style"
}

// ValidValues returns the accepted mode names.
func (m *Mode) ValidValues() []string {
	return []string{string(ModeAuto), string(ModeAlways), string(ModeNever)}
}

// Enabled reports whether output written to w should be styled.
// In auto mode, only interactive terminals get styling.
func (m Mode) Enabled(w io.Writer) bool {
	switch m {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	default:
		file, ok := w.(*os.File)

		return ok && term.IsTerminal(int(file.Fd()))
	}
}
