package cmd

import (
	"github.com/snow-plow/snow-plow/pkg/flake"
	"github.com/snow-plow/snow-plow/pkg/io/configmanager"
	"github.com/snow-plow/snow-plow/pkg/ui/notify"
	"github.com/spf13/cobra"
)

// session carries the per-invocation collaborators every registry
// command needs: resolved configuration, styled notifiers for both
// streams, and the loaded registry.
type session struct {
	cfg      configmanager.Config
	out      *notify.Notifier
	errs     *notify.Notifier
	registry *flake.Registry
}

func newSession(cmd *cobra.Command) (*session, error) {
	manager, err := configmanager.NewManager(cmd.Flags())
	if err != nil {
		return nil, err
	}

	cfg, err := manager.Load()
	if err != nil {
		return nil, err
	}

	out := notify.NewNotifier(cmd.OutOrStdout(), cfg.Style.Enabled(cmd.OutOrStdout()))
	errs := notify.NewNotifier(cmd.ErrOrStderr(), cfg.Style.Enabled(cmd.ErrOrStderr()))

	registry, err := flake.Load(cfg.Dir, errs)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, out: out, errs: errs, registry: registry}, nil
}

// withRegistry loads the registry, runs the operation, and persists the
// registry exactly once afterwards, including after operations that only
// produced warnings. A fatal error from the operation aborts before the
// save, leaving the on-disk state as it was. There is no save-on-exit
// safety net anywhere else; skipping this path is a defect.
func withRegistry(cmd *cobra.Command, operation func(s *session) error) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	err = operation(s)
	if err != nil {
		return err
	}

	return s.registry.Save()
}
