package cmd

import (
	"github.com/spf13/cobra"
)

// NewEnableCmd creates the enable command.
func NewEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "enable <name>",
		Short:        "Enable a previously disabled flake, so 'update' acts on it again",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegistry(cmd, func(s *session) error {
				return s.registry.Enable(args[0])
			})
		},
	}
}

// NewDisableCmd creates the disable command.
func NewDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "disable <name>",
		Short:        "Disable a flake, so 'update' skips it without forgetting it",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegistry(cmd, func(s *session) error {
				return s.registry.Disable(args[0])
			})
		},
	}
}
