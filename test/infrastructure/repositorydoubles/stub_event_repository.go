//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/automerge/internal/domain/entities"
	"github.com/rios0rios0/automerge/internal/domain/repositories"
)

// StubEventRepository implements repositories.EventRepository with canned values.
type StubEventRepository struct {
	PullRequest *entities.PullRequest
	Err         error
	CallCount   int
}

var _ repositories.EventRepository = (*StubEventRepository)(nil)

func (s *StubEventRepository) PullRequestFromEvent(_ entities.EventSettings) (*entities.PullRequest, error) {
	s.CallCount++
	return s.PullRequest, s.Err
}
