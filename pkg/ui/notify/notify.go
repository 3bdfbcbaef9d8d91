// Package notify renders styled user-facing messages.
//
// Every message carries a type that determines its symbol and color.
// Styling is decided per output stream: auto mode enables ANSI escape
// codes only when the stream is an interactive terminal.
package notify

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	fcolor "github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
	"github.com/snow-plow/snow-plow/pkg/ui/timer"
)

// Message type constants.
// Each type determines the message styling (color and symbol).
const (
	// ErrorType represents an error message (red, with ✗ symbol).
	ErrorType MessageType = iota
	// WarningType represents a warning message (yellow, with ⚠ symbol).
	WarningType
	// ActivityType represents an activity/progress message (default color, with ► symbol).
	ActivityType
	// GenerateType represents a file generation message (default color, with ✚ symbol).
	GenerateType
	// SuccessType represents a success message (green, with ✔ symbol).
	SuccessType
	// InfoType represents an informational message (blue, with ℹ symbol).
	InfoType
)

// Long diagnostic lines are wrapped at this column before indentation.
const wrapColumn = 100

// Durations in timing blocks are rounded to this unit.
const timeRounding = time.Millisecond

// MessageType defines the type of notification message.
type MessageType int

// Message represents a notification message to be displayed to the user.
type Message struct {
	// Type determines the message styling (color, symbol).
	Type MessageType
	// Content is the main message text to display.
	Content string
	// Args are format arguments for Content if it contains format specifiers.
	Args []any
	// Writer is the output destination. If nil, defaults to os.Stdout.
	Writer io.Writer
	// Styled controls whether ANSI escape codes are emitted.
	Styled bool
	// Timer is optional. If provided and the message type is SuccessType,
	// timing information is printed in a separate block after the message.
	Timer timer.Timer
}

// Notifier binds a writer to a styling decision so callers don't thread
// both through every call site.
type Notifier struct {
	writer io.Writer
	styled bool
}

// NewNotifier creates a Notifier for the given stream.
func NewNotifier(writer io.Writer, styled bool) *Notifier {
	if writer == nil {
		writer = os.Stdout
	}

	return &Notifier{writer: writer, styled: styled}
}

// Errorf writes an error message.
func (n *Notifier) Errorf(format string, args ...any) {
	n.write(ErrorType, format, args, nil)
}

// Warningf writes a warning message.
func (n *Notifier) Warningf(format string, args ...any) {
	n.write(WarningType, format, args, nil)
}

// Activityf writes an activity/progress message.
func (n *Notifier) Activityf(format string, args ...any) {
	n.write(ActivityType, format, args, nil)
}

// Generatef writes a file generation message.
func (n *Notifier) Generatef(format string, args ...any) {
	n.write(GenerateType, format, args, nil)
}

// Successf writes a success message.
func (n *Notifier) Successf(format string, args ...any) {
	n.write(SuccessType, format, args, nil)
}

// SuccessWithTimerf writes a success message followed by a timing block.
func (n *Notifier) SuccessWithTimerf(tmr timer.Timer, format string, args ...any) {
	n.write(SuccessType, format, args, tmr)
}

// Infof writes an informational message.
func (n *Notifier) Infof(format string, args ...any) {
	n.write(InfoType, format, args, nil)
}

// Bold returns s wrapped in bold escape codes when styling is enabled.
func (n *Notifier) Bold(s string) string {
	col := fcolor.New(fcolor.Bold)
	applyStyling(col, n.styled)

	return col.Sprint(s)
}

func (n *Notifier) write(msgType MessageType, format string, args []any, tmr timer.Timer) {
	WriteMessage(Message{
		Type:    msgType,
		Content: format,
		Args:    args,
		Writer:  n.writer,
		Styled:  n.styled,
		Timer:   tmr,
	})
}

// Errorf writes an error message to the writer, styling it when the
// writer is an interactive terminal.
func Errorf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{
		Type:    ErrorType,
		Content: format,
		Args:    args,
		Writer:  writer,
		Styled:  ModeAuto.Enabled(writer),
	})
}

// WriteMessage writes a formatted message based on the message configuration.
//
// For simpler use cases, prefer a Notifier and its convenience methods.
func WriteMessage(msg Message) {
	if msg.Writer == nil {
		msg.Writer = os.Stdout
	}

	content := msg.Content
	if len(msg.Args) > 0 {
		content = fmt.Sprintf(msg.Content, msg.Args...)
	}

	config := getMessageConfig(msg.Type)
	applyStyling(config.color, msg.Styled)

	content = indentMultilineContent(content, config.symbol)

	_, err := config.color.Fprintf(msg.Writer, "%s%s\n", config.symbol, content)
	handleNotifyError(err)

	// Timing block only follows success messages.
	if msg.Type == SuccessType && msg.Timer != nil {
		_, err = config.color.Fprintf(msg.Writer, "⏲ took %s\n", msg.Timer.GetTiming().Round(timeRounding))
		handleNotifyError(err)
	}
}

// messageConfig holds the styling configuration for each message type.
type messageConfig struct {
	symbol string
	color  *fcolor.Color
}

// getMessageConfig returns the styling configuration for a given message type.
func getMessageConfig(msgType MessageType) messageConfig {
	switch msgType {
	case ErrorType:
		return messageConfig{
			symbol: "✗ ",
			color:  fcolor.New(fcolor.FgRed),
		}
	case WarningType:
		return messageConfig{
			symbol: "⚠ ",
			color:  fcolor.New(fcolor.FgYellow),
		}
	case ActivityType:
		return messageConfig{
			symbol: "► ",
			color:  fcolor.New(fcolor.Reset),
		}
	case GenerateType:
		return messageConfig{
			symbol: "✚ ",
			color:  fcolor.New(fcolor.Reset),
		}
	case SuccessType:
		return messageConfig{
			symbol: "✔ ",
			color:  fcolor.New(fcolor.FgGreen),
		}
	case InfoType:
		return messageConfig{
			symbol: "ℹ ",
			color:  fcolor.New(fcolor.FgBlue),
		}
	default:
		return messageConfig{
			symbol: "",
			color:  fcolor.New(fcolor.Reset),
		}
	}
}

// applyStyling overrides the package-global color detection with the
// per-stream decision made by the caller.
func applyStyling(col *fcolor.Color, styled bool) {
	if styled {
		col.EnableColor()
	} else {
		col.DisableColor()
	}
}

// handleNotifyError handles errors that occur during notification printing.
// Errors are logged to stderr rather than returned to avoid disrupting the user experience.
func handleNotifyError(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "notify: failed to print message: %v\n", err)
	}
}

// indentMultilineContent wraps long lines and indents subsequent lines of
// multi-line content based on the symbol width, so the message body stays
// aligned with the first line's symbol.
func indentMultilineContent(content, symbol string) string {
	content = wordwrap.WrapString(content, wrapColumn)

	if symbol == "" || !strings.Contains(content, "\n") {
		return content
	}

	indent := strings.Repeat(" ", len([]rune(symbol)))
	lines := strings.Split(content, "\n")

	for i := 1; i < len(lines); i++ {
		if lines[i] == "" {
			continue
		}

		lines[i] = indent + lines[i]
	}

	return strings.Join(lines, "\n")
}
