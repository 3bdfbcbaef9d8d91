package cmd

import (
	"github.com/spf13/cobra"
)

// NewRemoveCmd creates the remove command.
func NewRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "remove <name>",
		Short:        "Remove a flake from the registry, so snow-plow no longer manages it",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegistry(cmd, func(s *session) error {
				// Removing an absent name only warns, so remove stays idempotent.
				s.registry.Remove(args[0])

				return nil
			})
		},
	}
}
