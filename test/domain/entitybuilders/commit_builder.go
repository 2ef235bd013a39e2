//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/automerge/internal/domain/entities"
)

// CommitBuilder creates commits that pass verification unless told otherwise.
type CommitBuilder struct {
	*testkit.BaseBuilder
	sha           string
	authorName    string
	committerName string
	verified      bool
}

// NewCommitBuilder creates a builder for a verified Dependabot commit.
func NewCommitBuilder() *CommitBuilder {
	return &CommitBuilder{
		BaseBuilder:   testkit.NewBaseBuilder(),
		sha:           "0123456789abcdef0123456789abcdef01234567",
		authorName:    entities.DefaultAuthor,
		committerName: entities.DefaultCommitter,
		verified:      true,
	}
}

// WithSHA sets the commit hash.
func (b *CommitBuilder) WithSHA(sha string) *CommitBuilder {
	b.sha = sha
	return b
}

// WithAuthorName sets the git author name.
func (b *CommitBuilder) WithAuthorName(name string) *CommitBuilder {
	b.authorName = name
	return b
}

// WithCommitterName sets the git committer name.
func (b *CommitBuilder) WithCommitterName(name string) *CommitBuilder {
	b.committerName = name
	return b
}

// Unverified marks the commit signature as not verified.
func (b *CommitBuilder) Unverified() *CommitBuilder {
	b.verified = false
	return b
}

// Build creates the commit (satisfies testkit.Builder interface).
func (b *CommitBuilder) Build() interface{} {
	return b.BuildCommit()
}

// BuildCommit creates the commit with a concrete return type.
func (b *CommitBuilder) BuildCommit() entities.Commit {
	return entities.Commit{
		SHA:           b.sha,
		AuthorName:    b.authorName,
		CommitterName: b.committerName,
		Verified:      b.verified,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *CommitBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	fresh := NewCommitBuilder()
	b.sha, b.authorName, b.committerName, b.verified = fresh.sha, fresh.authorName, fresh.committerName, fresh.verified
	return b
}

// Clone creates a deep copy of the CommitBuilder.
func (b *CommitBuilder) Clone() testkit.Builder {
	return &CommitBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		sha:           b.sha,
		authorName:    b.authorName,
		committerName: b.committerName,
		verified:      b.verified,
	}
}
