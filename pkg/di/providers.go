package di

import (
	"github.com/samber/do/v2"
	"github.com/snow-plow/snow-plow/pkg/nix"
	"github.com/snow-plow/snow-plow/pkg/ui/notify"
	"github.com/snow-plow/snow-plow/pkg/ui/timer"
)

// Dependency providers.

// NewRuntime constructs the runtime container used by the root command.
// It registers the default timer and nix runner factory.
func NewRuntime() *Runtime {
	return New(
		ProvideTimer,
		ProvideRunnerFactory,
	)
}

// ProvideTimer registers the timer dependency with the injector.
func ProvideTimer(injector Injector) error {
	do.Provide(injector, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

// ProvideRunnerFactory registers the nix runner factory dependency.
func ProvideRunnerFactory(injector Injector) error {
	do.Provide(injector, func(Injector) (nix.RunnerFactory, error) {
		return func(warnings *notify.Notifier) nix.Runner {
			return nix.NewCommandRunner(warnings)
		}, nil
	})

	return nil
}
