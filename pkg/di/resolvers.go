package di

import (
	"fmt"

	"github.com/samber/do/v2"
	"github.com/snow-plow/snow-plow/pkg/nix"
	"github.com/snow-plow/snow-plow/pkg/ui/timer"
)

// Dependency resolvers.

// ResolveTimer retrieves the timer dependency from the injector with
// consistent error handling.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	tmr, err := do.Invoke[timer.Timer](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve timer dependency: %w", err)
	}

	return tmr, nil
}

// ResolveRunnerFactory retrieves the nix runner factory dependency from
// the injector with consistent error handling.
func ResolveRunnerFactory(injector Injector) (nix.RunnerFactory, error) {
	factory, err := do.Invoke[nix.RunnerFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve runner factory dependency: %w", err)
	}

	return factory, nil
}
