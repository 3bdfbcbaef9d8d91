package cmd

import (
	"github.com/snow-plow/snow-plow/pkg/di"
	"github.com/snow-plow/snow-plow/pkg/updater"
	"github.com/spf13/cobra"
)

const updateLongDesc = `Update the named flake if a name is given, or every enabled flake when no
name is given.

Each update runs 'nix flake update' against the flake's directory, one
invocation at a time. During a batch update a failing flake is reported
and the batch moves on, so one broken flake never blocks the others.
Selecting a disabled flake by name is a valid no-op.

Examples:
  # Update everything that is enabled
  snow-plow update

  # Update one specific flake
  snow-plow update mysystem`

// NewUpdateCmd creates the update command.
func NewUpdateCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:          "update [name]",
		Short:        "Update the named flake, or every enabled flake",
		Long:         updateLongDesc,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runtimeContainer.Invoke(func(injector di.Injector) error {
				factory, err := di.ResolveRunnerFactory(injector)
				if err != nil {
					return err
				}

				tmr, err := di.ResolveTimer(injector)
				if err != nil {
					return err
				}

				return withRegistry(cmd, func(s *session) error {
					upd := updater.New(s.registry, factory(s.errs), s.out, s.errs)

					if len(args) == 1 {
						return upd.UpdateOne(cmd.Context(), args[0])
					}

					tmr.Start()

					result := upd.UpdateAll(cmd.Context())

					switch {
					case len(result.Failures) > 0:
						s.errs.Warningf("%d of %d flakes failed to update",
							len(result.Failures), result.Attempted)
					case result.Attempted > 0:
						s.out.SuccessWithTimerf(tmr, "updated %d flakes", result.Attempted)
					default:
						s.out.Activityf("no enabled flakes to update")
					}

					// Batch failures are recoverable: the registry is
					// persisted and the process exits cleanly.
					return nil
				})
			})
		},
	}
}
