package repositories

import (
	"context"

	"github.com/rios0rios0/automerge/internal/domain/entities"
)

// PullRequestRepository abstracts the pull request endpoints of a Git hosting
// service: reading the pull request, its diff and commits, approving and merging.
type PullRequestRepository interface {
	// Name returns the provider identifier (e.g. "github").
	Name() string

	// GetPullRequest fetches a pull request by number.
	GetPullRequest(ctx context.Context, repo entities.Repository, number int) (*entities.PullRequest, error)

	// GetDiff returns the raw unified diff of a pull request.
	GetDiff(ctx context.Context, repo entities.Repository, number int) (string, error)

	// ListCommits returns every commit of a pull request.
	ListCommits(ctx context.Context, repo entities.Repository, number int) ([]entities.Commit, error)

	// Approve submits an approving review with an optional comment.
	Approve(ctx context.Context, repo entities.Repository, number int, comment string) error

	// Merge merges the pull request using the given method.
	Merge(ctx context.Context, repo entities.Repository, number int, method entities.MergeMethod) error
}
