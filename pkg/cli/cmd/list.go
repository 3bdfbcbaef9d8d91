package cmd

import (
	"fmt"

	"github.com/snow-plow/snow-plow/pkg/flake"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var (
		enabledOnly  bool
		disabledOnly bool
	)

	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List tracked flakes, their location and status",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRegistry(cmd, func(s *session) error {
				filtered := enabledOnly || disabledOnly

				for _, name := range s.registry.Names() {
					entry, _ := s.registry.Get(name)

					if enabledOnly && !entry.Enabled || disabledOnly && entry.Enabled {
						continue
					}

					// The status column is redundant when a filter
					// already pins the status.
					status := ""
					if !filtered {
						status = " " + flake.StateName(entry.Enabled)
					}

					fmt.Fprintf(cmd.OutOrStdout(), "%s %s%s\n",
						s.out.Bold(entry.Name), entry.Location, status)
				}

				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&enabledOnly, "enabled", "e", false, "Only list enabled flakes")
	cmd.Flags().BoolVarP(&disabledOnly, "disabled", "d", false, "Only list disabled flakes")
	cmd.MarkFlagsMutuallyExclusive("enabled", "disabled")

	return cmd
}
