//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/automerge/internal/domain/entities"
)

// PullRequestBuilder helps create test pull requests with a fluent interface.
type PullRequestBuilder struct {
	*testkit.BaseBuilder
	number      int
	title       string
	authorLogin string
	headRef     string
}

// NewPullRequestBuilder creates a builder for a Dependabot bump of fastify.
func NewPullRequestBuilder() *PullRequestBuilder {
	b := &PullRequestBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.defaults()
	return b
}

func (b *PullRequestBuilder) defaults() {
	b.number = 1
	b.title = "Bump fastify from 3.0.0 to 3.1.0"
	b.authorLogin = entities.DefaultAuthor
	b.headRef = "dependabot/npm_and_yarn/fastify-3.1.0"
}

// WithNumber sets the pull request number.
func (b *PullRequestBuilder) WithNumber(number int) *PullRequestBuilder {
	b.number = number
	return b
}

// WithTitle sets the title.
func (b *PullRequestBuilder) WithTitle(title string) *PullRequestBuilder {
	b.title = title
	return b
}

// WithAuthorLogin sets the login of the user who opened the pull request.
func (b *PullRequestBuilder) WithAuthorLogin(login string) *PullRequestBuilder {
	b.authorLogin = login
	return b
}

// WithHeadRef sets the head branch.
func (b *PullRequestBuilder) WithHeadRef(ref string) *PullRequestBuilder {
	b.headRef = ref
	return b
}

// Build creates the pull request (satisfies testkit.Builder interface).
func (b *PullRequestBuilder) Build() interface{} {
	return b.BuildPullRequest()
}

// BuildPullRequest creates the pull request with a concrete return type.
func (b *PullRequestBuilder) BuildPullRequest() *entities.PullRequest {
	return &entities.PullRequest{
		Number:      b.number,
		Title:       b.title,
		AuthorLogin: b.authorLogin,
		HeadRef:     b.headRef,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PullRequestBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.defaults()
	return b
}

// Clone creates a deep copy of the PullRequestBuilder.
func (b *PullRequestBuilder) Clone() testkit.Builder {
	return &PullRequestBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		number:      b.number,
		title:       b.title,
		authorLogin: b.authorLogin,
		headRef:     b.headRef,
	}
}
