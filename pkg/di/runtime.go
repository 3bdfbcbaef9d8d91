// Package di wires shared dependencies into command handlers through a
// samber/do injector.
package di

import "github.com/samber/do/v2"

// Injector is the dependency injector handed to providers and handlers.
type Injector = do.Injector

// Provider registers one dependency with the injector.
type Provider func(Injector) error

// Runtime builds an injector from its providers and runs handlers
// against it.
type Runtime struct {
	providers []Provider
}

// New constructs a runtime from the given providers. Tests substitute
// fakes by passing their own providers.
func New(providers ...Provider) *Runtime {
	return &Runtime{providers: providers}
}

// Invoke builds a fresh injector, runs all providers, then the handler.
// A provider failure is returned before the handler runs.
func (r *Runtime) Invoke(handler func(Injector) error) error {
	injector := do.New()

	for _, provide := range r.providers {
		err := provide(injector)
		if err != nil {
			return err
		}
	}

	return handler(injector)
}
