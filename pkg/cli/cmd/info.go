package cmd

import (
	"fmt"

	"github.com/snow-plow/snow-plow/pkg/flake"
	"github.com/spf13/cobra"
)

// NewInfoCmd creates the info command.
func NewInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "info <name>",
		Short:        "Show the location and status of a tracked flake",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegistry(cmd, func(s *session) error {
				entry, ok := s.registry.Get(args[0])
				if !ok {
					return fmt.Errorf("flake %q is %w", args[0], flake.ErrUnknownName)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
					s.out.Bold(entry.Name), entry.Location, flake.StateName(entry.Enabled))

				return nil
			})
		},
	}
}
