//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/automerge/internal/domain/entities"
	"github.com/rios0rios0/automerge/internal/domain/repositories"
)

// StubLocalGitRepository implements repositories.LocalGitRepository with canned values.
type StubLocalGitRepository struct {
	DiffText string
	DiffErr  error

	PullRequest *entities.PullRequest
	HeadErr     error

	CommitList []entities.Commit
	CommitsErr error

	CommitsCallCount int
	LastBase         string
	LastHead         string
}

var _ repositories.LocalGitRepository = (*StubLocalGitRepository)(nil)

func (s *StubLocalGitRepository) Diff(_ context.Context, _, base, head string) (string, error) {
	s.LastBase = base
	s.LastHead = head
	return s.DiffText, s.DiffErr
}

func (s *StubLocalGitRepository) HeadPullRequest(_ context.Context, _, _ string) (*entities.PullRequest, error) {
	return s.PullRequest, s.HeadErr
}

func (s *StubLocalGitRepository) Commits(_ context.Context, _, _, _ string) ([]entities.Commit, error) {
	s.CommitsCallCount++
	return s.CommitList, s.CommitsErr
}
