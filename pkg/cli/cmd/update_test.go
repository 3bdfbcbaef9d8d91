package cmd_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/samber/do/v2"
	"github.com/snow-plow/snow-plow/pkg/cli/cmd"
	"github.com/snow-plow/snow-plow/pkg/di"
	"github.com/snow-plow/snow-plow/pkg/flake"
	"github.com/snow-plow/snow-plow/pkg/nix"
	"github.com/snow-plow/snow-plow/pkg/ui/notify"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFakeNix = errors.New("fake nix failure")

// fakeRunner records invocations and fails on demand, keyed by the last
// path element of the flake location.
type fakeRunner struct {
	mu       sync.Mutex
	checks   []string
	updates  []string
	checkErr error
	failFor  map[string]error
}

func (f *fakeRunner) Check(_ context.Context, location string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.checks = append(f.checks, location)

	return f.checkErr
}

func (f *fakeRunner) Update(_ context.Context, location string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updates = append(f.updates, location)

	return f.failFor[filepath.Base(location)]
}

var _ nix.Runner = (*fakeRunner)(nil)

// fakeRuntime builds a runtime container whose runner factory always
// hands out the given runner.
func fakeRuntime(runner nix.Runner) *di.Runtime {
	return di.New(di.ProvideTimer, func(injector di.Injector) error {
		do.Provide(injector, func(di.Injector) (nix.RunnerFactory, error) {
			return func(*notify.Notifier) nix.Runner {
				return runner
			}, nil
		})

		return nil
	})
}

func newFakeRoot(runner nix.Runner) *cobra.Command {
	return cmd.NewRootCmdWithRuntime("test", "test", "test", fakeRuntime(runner))
}

func TestUpdateAllUpdatesEnabledFlakes(t *testing.T) {
	t.Parallel()

	dir := seedRegistry(t, "name,location,enabled\n"+
		"one,/flakes/one,true\n"+
		"two,/flakes/two,true\n"+
		"three,/flakes/three,false\n")

	runner := &fakeRunner{}

	out, errs, err := runCommand(newFakeRoot(runner), dir, "update")
	require.NoError(t, err)
	assert.Empty(t, errs)

	assert.Equal(t, []string{"/flakes/one", "/flakes/two"}, runner.updates)
	assert.Contains(t, out, "(1/2)")
	assert.Contains(t, out, "(2/2)")
	assert.Contains(t, out, "updated 2 flakes")
}

func TestUpdateAllContinuesPastFailures(t *testing.T) {
	t.Parallel()

	dir := seedRegistry(t, "name,location,enabled\n"+
		"one,/flakes/one,true\n"+
		"two,/flakes/two,true\n")

	runner := &fakeRunner{failFor: map[string]error{"one": errFakeNix}}

	_, errs, err := runCommand(newFakeRoot(runner), dir, "update")
	require.NoError(t, err, "batch failures are recoverable")

	assert.Equal(t, []string{"/flakes/one", "/flakes/two"}, runner.updates)
	assert.Contains(t, errs, "1 of 2 flakes failed to update")
}

func TestUpdateAllEmptyRegistry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runner := &fakeRunner{}

	out, _, err := runCommand(newFakeRoot(runner), dir, "update")
	require.NoError(t, err)

	assert.Empty(t, runner.updates)
	assert.Contains(t, out, "no enabled flakes to update")
}

func TestUpdateByNameUpdatesOnlyThatFlake(t *testing.T) {
	t.Parallel()

	dir := seedRegistry(t, "name,location,enabled\n"+
		"one,/flakes/one,true\n"+
		"two,/flakes/two,true\n")

	runner := &fakeRunner{}

	_, _, err := runCommand(newFakeRoot(runner), dir, "update", "two")
	require.NoError(t, err)

	assert.Equal(t, []string{"/flakes/two"}, runner.updates)
}

func TestUpdateByNameDisabledIsSilentNoOp(t *testing.T) {
	t.Parallel()

	dir := seedRegistry(t, "name,location,enabled\none,/flakes/one,false\n")

	runner := &fakeRunner{}

	out, errs, err := runCommand(newFakeRoot(runner), dir, "update", "one")
	require.NoError(t, err)

	assert.Empty(t, runner.updates)
	assert.Empty(t, out)
	assert.Empty(t, errs)
}

func TestUpdateByNameUnknownFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runner := &fakeRunner{}

	_, _, err := runCommand(newFakeRoot(runner), dir, "update", "ghost")
	require.Error(t, err)
	require.ErrorIs(t, err, flake.ErrUnknownName)
}

func TestUpdateByNameFailureIsFatal(t *testing.T) {
	t.Parallel()

	dir := seedRegistry(t, "name,location,enabled\none,/flakes/one,true\n")

	runner := &fakeRunner{failFor: map[string]error{"one": errFakeNix}}

	_, _, err := runCommand(newFakeRoot(runner), dir, "update", "one")
	require.Error(t, err)
	require.ErrorIs(t, err, errFakeNix)
}
