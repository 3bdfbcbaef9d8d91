// Package cmd assembles the snow-plow command tree.
package cmd

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/snow-plow/snow-plow/pkg/cli/ui/errorhandler"
	"github.com/snow-plow/snow-plow/pkg/di"
	"github.com/snow-plow/snow-plow/pkg/ui/notify"
	"github.com/spf13/cobra"
)

// Flag names shared across commands.
const (
	ConfigFlagName  = "config"
	StyleFlagName   = "style"
	VerboseFlagName = "verbose"
)

const rootLongDesc = `snow-plow keeps a registry of nix flakes and updates them all with one
command, to improve sharing of dependencies on your computer.

Tracked flakes are stored in a small file under the configured storage
directory. Each flake can be enabled or disabled individually; 'update'
runs 'nix flake update' once per enabled flake and keeps going when a
single flake fails.`

// NewRootCmd creates the root command with version info and all subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(version, commit, date, di.NewRuntime())
}

// NewRootCmdWithRuntime creates the root command against a caller-supplied
// runtime container. Tests use it to substitute fake dependencies.
func NewRootCmdWithRuntime(version, commit, date string, runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "snow-plow",
		Short:         "snow-plow updates several nix flakes with one command",
		Long:          rootLongDesc,
		RunE:          handleRootRunE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	style := notify.ModeAuto
	cmd.PersistentFlags().StringP(
		ConfigFlagName, "c", "",
		"Directory snow-plow uses for saving the tracked flakes "+
			"(defaults to $SNOW_PLOW_CONFIG, then the system config directory)",
	)
	cmd.PersistentFlags().VarP(
		&style, StyleFlagName, "s",
		fmt.Sprintf("Control when output is styled with ANSI escape codes (%s)",
			strings.Join(style.ValidValues(), ", ")),
	)
	cmd.PersistentFlags().Bool(
		VerboseFlagName, false,
		"Enable debug logging",
	)

	cmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		verbose, err := cmd.Flags().GetBool(VerboseFlagName)
		if err == nil && verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	}

	cmd.AddCommand(NewAddCmd(runtimeContainer))
	cmd.AddCommand(NewEnableCmd())
	cmd.AddCommand(NewDisableCmd())
	cmd.AddCommand(NewRemoveCmd())
	cmd.AddCommand(NewUpdateCmd(runtimeContainer))
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewInfoCmd())
	cmd.AddCommand(NewManCmd())

	return cmd
}

// Execute runs the provided root command and surfaces a normalized error.
func Execute(cmd *cobra.Command) error {
	return errorhandler.NewExecutor().Execute(cmd)
}

// handleRootRunE handles the bare root command by printing help.
func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
