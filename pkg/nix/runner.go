// Package nix invokes the nix CLI as a subprocess and classifies its
// diagnostic output into structured error records and warnings.
package nix

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/snow-plow/snow-plow/pkg/ui/notify"
)

const defaultBinary = "nix"

// Runner runs nix flake operations against a flake directory. Both
// operations are synchronous and block until the subprocess exits.
type Runner interface {
	// Check validates that location holds a usable flake by running
	// `nix flake show`. It has no side effects on the flake.
	Check(ctx context.Context, location string) error
	// Update refreshes the flake's inputs by running `nix flake update`.
	Update(ctx context.Context, location string) error
}

// RunnerFactory builds a Runner bound to the warning notifier of one
// command invocation.
type RunnerFactory func(warnings *notify.Notifier) Runner

// CommandRunner shells out to the nix binary, one blocking invocation at
// a time. Warnings found on stderr are reported immediately through the
// notifier; errors are aggregated into a ToolError.
type CommandRunner struct {
	binary   string
	warnings *notify.Notifier
}

var _ Runner = (*CommandRunner)(nil)

// NewCommandRunner creates a runner invoking the nix binary from PATH.
func NewCommandRunner(warnings *notify.Notifier) *CommandRunner {
	return NewCommandRunnerWithBinary(defaultBinary, warnings)
}

// NewCommandRunnerWithBinary creates a runner invoking the given binary.
// Tests use this to substitute a stub executable.
func NewCommandRunnerWithBinary(binary string, warnings *notify.Notifier) *CommandRunner {
	return &CommandRunner{binary: binary, warnings: warnings}
}

// Check implements Runner.
func (r *CommandRunner) Check(ctx context.Context, location string) error {
	return r.run(ctx, "show", location)
}

// Update implements Runner.
func (r *CommandRunner) Update(ctx context.Context, location string) error {
	return r.run(ctx, "update", location)
}

func (r *CommandRunner) run(ctx context.Context, operation, location string) error {
	cmd := exec.CommandContext(ctx, r.binary, "flake", operation, location)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	logrus.WithFields(logrus.Fields{
		"binary":    r.binary,
		"operation": operation,
		"location":  location,
	}).Debug("invoking nix")

	err := cmd.Run()
	if err == nil {
		// A clean exit can still carry informational stderr output.
		for _, line := range splitLines(stderr.String()) {
			r.warnings.Warningf("nix: %s", line)
		}

		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("run %s flake %s: %w", r.binary, operation, err)
	}

	cls := newClassifier(func(line string) {
		r.warnings.Warningf("nix: %s", line)
	})
	for _, line := range splitLines(stderr.String()) {
		cls.feed(line)
	}

	records := cls.finish()
	if len(records) == 0 {
		// The outcome of a failed invocation is never an empty record list.
		records = []ErrorRecord{{
			Title: fmt.Sprintf("nix flake %s %s failed: %v", operation, location, exitErr),
		}}
	}

	return &ToolError{Records: records}
}

func splitLines(stream string) []string {
	var lines []string

	for _, line := range strings.Split(stream, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		lines = append(lines, strings.TrimSpace(line))
	}

	return lines
}
