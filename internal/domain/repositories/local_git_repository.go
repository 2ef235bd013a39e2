package repositories

import (
	"context"

	"github.com/rios0rios0/automerge/internal/domain/entities"
)

// LocalGitRepository reads a bump out of a Git checkout instead of a hosted
// pull request. Revisions accept anything `git rev-parse` understands.
type LocalGitRepository interface {
	// Diff returns the unified diff between two revisions.
	Diff(ctx context.Context, dir, base, head string) (string, error)

	// HeadPullRequest describes the head revision as a pull request: the title
	// is the commit subject, the head ref is the checked-out branch.
	HeadPullRequest(ctx context.Context, dir, head string) (*entities.PullRequest, error)

	// Commits lists the commits reachable from head, stopping at base.
	Commits(ctx context.Context, dir, base, head string) ([]entities.Commit, error)
}
