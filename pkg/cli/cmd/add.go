package cmd

import (
	"github.com/snow-plow/snow-plow/pkg/di"
	"github.com/spf13/cobra"
)

const addLongDesc = `Allow a flake to be managed by snow-plow. Although it is discouraged,
several entries can point to the same flake.

The path must contain a flake.nix; it is validated with 'nix flake show'
before the entry is registered. The path need not be canonical, but it
will be made absolute. New entries start enabled.

Examples:
  # Track the flake in the current directory
  snow-plow add mysystem .

  # Track a flake somewhere else
  snow-plow add dotfiles ~/src/dotfiles`

// NewAddCmd creates the add command.
func NewAddCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:          "add <name> <path>",
		Short:        "Track a flake under a unique name",
		Long:         addLongDesc,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runtimeContainer.Invoke(func(injector di.Injector) error {
				factory, err := di.ResolveRunnerFactory(injector)
				if err != nil {
					return err
				}

				return withRegistry(cmd, func(s *session) error {
					return s.registry.Add(cmd.Context(), args[0], args[1], factory(s.errs))
				})
			})
		},
	}
}
