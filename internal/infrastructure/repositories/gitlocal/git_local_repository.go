package gitlocal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/rios0rios0/automerge/internal/domain/entities"
	"github.com/rios0rios0/automerge/internal/domain/repositories"
)

// ErrNoMergeBase is returned when base and head share no history.
var ErrNoMergeBase = errors.New("revisions have no common ancestor")

// GitLocalRepository implements repositories.LocalGitRepository with go-git,
// so no git binary is needed on the runner.
type GitLocalRepository struct{}

// NewLocalGitRepository creates a new GitLocalRepository.
func NewLocalGitRepository() repositories.LocalGitRepository {
	return &GitLocalRepository{}
}

func (r *GitLocalRepository) Diff(ctx context.Context, dir, base, head string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}

	forkCommit, headCommit, err := forkPoint(repo, base, head)
	if err != nil {
		return "", err
	}

	patch, err := forkCommit.PatchContext(ctx, headCommit)
	if err != nil {
		return "", fmt.Errorf("failed to diff %s..%s: %w", base, head, err)
	}
	return patch.String(), nil
}

func (r *GitLocalRepository) HeadPullRequest(
	_ context.Context,
	dir, head string,
) (*entities.PullRequest, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, err
	}

	commit, err := resolveCommit(repo, head)
	if err != nil {
		return nil, err
	}

	// a detached HEAD (common on CI checkouts) has no branch to fall back on
	headRef := ""
	if ref, refErr := repo.Head(); refErr == nil && ref.Name().IsBranch() {
		headRef = ref.Name().Short()
	}

	title, _, _ := strings.Cut(strings.TrimSpace(commit.Message), "\n")
	return &entities.PullRequest{
		Title:       title,
		AuthorLogin: commit.Author.Name,
		HeadRef:     headRef,
	}, nil
}

func (r *GitLocalRepository) Commits(
	_ context.Context,
	dir, base, head string,
) ([]entities.Commit, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, err
	}

	forkCommit, headCommit, err := forkPoint(repo, base, head)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Log(&git.LogOptions{From: headCommit.Hash})
	if err != nil {
		return nil, fmt.Errorf("failed to walk history from %s: %w", head, err)
	}
	defer iter.Close()

	var commits []entities.Commit
	walkErr := iter.ForEach(func(c *object.Commit) error {
		if c.Hash == forkCommit.Hash {
			return storer.ErrStop
		}
		commits = append(commits, entities.Commit{
			SHA:           c.Hash.String(),
			AuthorName:    c.Author.Name,
			CommitterName: c.Committer.Name,
			Verified:      c.PGPSignature != "",
		})
		return nil
	})
	if walkErr != nil && !errors.Is(walkErr, storer.ErrStop) {
		return nil, fmt.Errorf("failed to walk history from %s: %w", head, walkErr)
	}

	return commits, nil
}

func open(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %q: %w", dir, err)
	}
	return repo, nil
}

// forkPoint returns the merge base of base and head along with head, so base
// commits made after the branch was cut stay out of the comparison.
func forkPoint(repo *git.Repository, base, head string) (*object.Commit, *object.Commit, error) {
	baseCommit, err := resolveCommit(repo, base)
	if err != nil {
		return nil, nil, err
	}
	headCommit, err := resolveCommit(repo, head)
	if err != nil {
		return nil, nil, err
	}

	bases, err := headCommit.MergeBase(baseCommit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find merge base of %s and %s: %w", base, head, err)
	}
	if len(bases) == 0 {
		return nil, nil, fmt.Errorf("%w: %s and %s", ErrNoMergeBase, base, head)
	}
	return bases[0], headCommit, nil
}

func resolveCommit(repo *git.Repository, revision string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %q: %w", revision, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", hash, err)
	}
	return commit, nil
}
