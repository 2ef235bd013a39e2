package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewMergeCommand); err != nil {
		return err
	}
	if err := container.Provide(NewEvaluateCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *MergeCommand) Merge {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *EvaluateCommand) Evaluate {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
