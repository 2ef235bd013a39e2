//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/automerge/internal/domain/entities"
	"github.com/rios0rios0/automerge/internal/domain/repositories"
)

// SpyPullRequestRepository implements repositories.PullRequestRepository as a
// configurable spy. It is safe for concurrent use.
type SpyPullRequestRepository struct {
	mu sync.Mutex

	// --- identity ---
	ProviderName string

	// --- GetPullRequest ---
	PullRequest       *entities.PullRequest
	GetPullRequestErr error
	RequestedNumbers  []int

	// --- GetDiff ---
	DiffText   string
	GetDiffErr error

	// --- ListCommits ---
	Commits          []entities.Commit
	ListCommitsErr   error
	ListCommitsCalls int

	// --- Approve ---
	ApproveErr      error
	ApprovedNumbers []int
	ApproveComments []string

	// --- Merge ---
	MergeErr      error
	MergedNumbers []int
	MergeMethods  []entities.MergeMethod
}

var _ repositories.PullRequestRepository = (*SpyPullRequestRepository)(nil)

func (p *SpyPullRequestRepository) Name() string { return p.ProviderName }

func (p *SpyPullRequestRepository) GetPullRequest(
	_ context.Context, _ entities.Repository, number int,
) (*entities.PullRequest, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.RequestedNumbers = append(p.RequestedNumbers, number)
	return p.PullRequest, p.GetPullRequestErr
}

func (p *SpyPullRequestRepository) GetDiff(
	_ context.Context, _ entities.Repository, _ int,
) (string, error) {
	return p.DiffText, p.GetDiffErr
}

func (p *SpyPullRequestRepository) ListCommits(
	_ context.Context, _ entities.Repository, _ int,
) ([]entities.Commit, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ListCommitsCalls++
	return p.Commits, p.ListCommitsErr
}

func (p *SpyPullRequestRepository) Approve(
	_ context.Context, _ entities.Repository, number int, comment string,
) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ApprovedNumbers = append(p.ApprovedNumbers, number)
	p.ApproveComments = append(p.ApproveComments, comment)
	return p.ApproveErr
}

func (p *SpyPullRequestRepository) Merge(
	_ context.Context, _ entities.Repository, number int, method entities.MergeMethod,
) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.MergedNumbers = append(p.MergedNumbers, number)
	p.MergeMethods = append(p.MergeMethods, method)
	return p.MergeErr
}
