package repositories

import (
	"go.uber.org/dig"

	ghRepo "github.com/rios0rios0/automerge/internal/infrastructure/repositories/github"
	gitRepo "github.com/rios0rios0/automerge/internal/infrastructure/repositories/gitlocal"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register("github", ghRepo.NewPullRequestRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(ghRepo.NewEventRepository); err != nil {
		return err
	}
	if err := container.Provide(gitRepo.NewLocalGitRepository); err != nil {
		return err
	}

	return nil
}
