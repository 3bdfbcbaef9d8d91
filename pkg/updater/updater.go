// Package updater runs nix updates across the registry's enabled
// entries, aggregating per-entry failures without aborting the batch.
package updater

import (
	"context"
	"fmt"

	"github.com/snow-plow/snow-plow/pkg/flake"
	"github.com/snow-plow/snow-plow/pkg/nix"
	"github.com/snow-plow/snow-plow/pkg/ui/notify"
)

// Failure pairs an entry name with the error its update produced.
type Failure struct {
	Name string
	Err  error
}

// Result aggregates the outcome of a batch update.
type Result struct {
	// Attempted counts the enabled entries the tool was invoked for.
	Attempted int
	Failures  []Failure
}

// Updater drives the runner across registry entries, one blocking
// invocation at a time.
type Updater struct {
	registry *flake.Registry
	runner   nix.Runner
	progress *notify.Notifier
	errs     *notify.Notifier
}

// New creates an Updater. Progress goes to the progress notifier
// (stdout), failures to the errs notifier (stderr).
func New(registry *flake.Registry, runner nix.Runner, progress, errs *notify.Notifier) *Updater {
	return &Updater{
		registry: registry,
		runner:   runner,
		progress: progress,
		errs:     errs,
	}
}

// UpdateOne updates the single named entry. A disabled entry selected by
// name is a valid, intentional no-op target: nothing runs and no error
// or warning is reported.
func (u *Updater) UpdateOne(ctx context.Context, name string) error {
	entry, ok := u.registry.Get(name)
	if !ok {
		return fmt.Errorf("flake %q is %w", name, flake.ErrUnknownName)
	}

	if !entry.Enabled {
		return nil
	}

	u.progress.Activityf("updating flake %q at %s", entry.Name, entry.Location)

	return u.runner.Update(ctx, entry.Location)
}

// UpdateAll updates every enabled entry in name order. Per-entry
// failures are reported as they happen and collected into the result,
// but never stop the batch: one flake's failure must not block the
// others.
func (u *Updater) UpdateAll(ctx context.Context) Result {
	enabled := 0

	for _, entry := range u.registry.Entries() {
		if entry.Enabled {
			enabled++
		}
	}

	var result Result

	for _, name := range u.registry.Names() {
		entry, _ := u.registry.Get(name)
		if !entry.Enabled {
			continue
		}

		result.Attempted++
		u.progress.Activityf("updating flake %q at %s (%d/%d)",
			entry.Name, entry.Location, result.Attempted, enabled)

		err := u.runner.Update(ctx, entry.Location)
		if err != nil {
			u.errs.Errorf("%v", err)
			result.Failures = append(result.Failures, Failure{Name: entry.Name, Err: err})
		}
	}

	return result
}
