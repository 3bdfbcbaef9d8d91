package cmd_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/snow-plow/snow-plow/pkg/cli/cmd"
	"github.com/snow-plow/snow-plow/pkg/flake"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

var errRootTest = errors.New("boom")

func TestMain(m *testing.M) {
	exitCode := m.Run()

	_, err := snaps.Clean(m, snaps.CleanOpts{Sort: true})
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to clean snapshots: " + err.Error() + "\n")

		os.Exit(1)
	}

	os.Exit(exitCode)
}

// seedRegistry writes a storage file into a fresh directory and returns
// the directory path for use with the config flag.
func seedRegistry(t *testing.T, rows string) string {
	t.Helper()

	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, flake.StorageFile), []byte(rows), 0o600)
	require.NoError(t, err)

	return dir
}

// readRegistry returns the raw storage file content for assertions on
// what a command persisted.
func readRegistry(t *testing.T, dir string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, flake.StorageFile))
	require.NoError(t, err)

	return string(data)
}

// runCommand executes the given root command with unstyled output against
// the registry directory and returns both streams.
func runCommand(root *cobra.Command, dir string, args ...string) (string, string, error) {
	var out, errs bytes.Buffer

	root.SetOut(&out)
	root.SetErr(&errs)
	root.SetArgs(append([]string{"--config", dir, "--style", "never"}, args...))

	err := root.Execute()

	return out.String(), errs.String(), err
}

func TestNewRootCmdVersionFormatting(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("1.2.3", "abc123", "2025-08-17")

	expected := "1.2.3 (Built on 2025-08-17 from Git SHA abc123)"
	if root.Version != expected {
		t.Fatalf("unexpected version string. want %q, got %q", expected, root.Version)
	}
}

func TestExecuteShowsHelp(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := cmd.NewRootCmd("", "", "")
	root.SetOut(&out)

	_ = root.Execute()

	snaps.MatchSnapshot(t, out.String())
}

func TestExecuteShowsHelpFlag(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := cmd.NewRootCmd("", "", "")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--help"})

	_ = root.Execute()

	snaps.MatchSnapshot(t, out.String())
}

func TestExecuteShowsVersion(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := cmd.NewRootCmd("1.2.3", "abc123", "2025-08-17")
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	_ = root.Execute()

	snaps.MatchSnapshot(t, out.String())
}

func TestNewRootCmdRegistersSubcommands(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("test", "test", "test")

	registered := make(map[string]bool)
	for _, sub := range root.Commands() {
		registered[sub.Name()] = true
	}

	for _, name := range []string{
		"add", "enable", "disable", "remove", "update", "list", "info", "man",
	} {
		if !registered[name] {
			t.Fatalf("expected subcommand %q to be registered", name)
		}
	}
}

func TestNewRootCmdPersistentFlags(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("test", "test", "test")

	for flagName, shorthand := range map[string]string{
		cmd.ConfigFlagName:  "c",
		cmd.StyleFlagName:   "s",
		cmd.VerboseFlagName: "",
	} {
		flag := root.PersistentFlags().Lookup(flagName)
		if flag == nil {
			t.Fatalf("expected persistent flag %q to exist", flagName)
		}

		if flag.Shorthand != shorthand {
			t.Fatalf("expected flag %q shorthand %q, got %q", flagName, shorthand, flag.Shorthand)
		}
	}
}

func TestStyleFlagRejectsUnknownValue(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := cmd.NewRootCmd("test", "test", "test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--style", "sometimes", "list"})

	err := root.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "sometimes")
}

func TestExecuteWithNonexistentCommand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := cmd.NewRootCmd("test", "test", "test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"nonexistent"})

	err := root.Execute()
	if err == nil {
		t.Fatal("Expected error but got none")
	}
}

func TestExecuteWrapperSuccess(t *testing.T) {
	t.Parallel()

	succeeding := &cobra.Command{
		Use: "ok",
		RunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
	}

	root := cmd.NewRootCmd("test", "test", "test")
	root.SetArgs([]string{"ok"})
	root.AddCommand(succeeding)

	err := cmd.Execute(root)
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
}

func TestExecuteWrapperError(t *testing.T) {
	t.Parallel()

	failing := &cobra.Command{
		Use: "fail",
		RunE: func(_ *cobra.Command, _ []string) error {
			return errRootTest
		},
	}

	root := cmd.NewRootCmd("test", "test", "test")
	root.SetArgs([]string{"fail"})
	root.AddCommand(failing)

	err := cmd.Execute(root)
	if err == nil {
		t.Fatal("Expected error but got none")
	}

	if !errors.Is(err, errRootTest) {
		t.Fatalf("Expected error to wrap %v, got %v", errRootTest, err)
	}
}
