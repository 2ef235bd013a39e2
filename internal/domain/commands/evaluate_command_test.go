//go:build unit

package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/automerge/internal/domain/commands"
	"github.com/rios0rios0/automerge/internal/domain/entities"
	"github.com/rios0rios0/automerge/test/domain/entitybuilders"
	"github.com/rios0rios0/automerge/test/infrastructure/repositorydoubles"
)

func TestEvaluateCommand_Execute(t *testing.T) {
	t.Parallel()

	opts := commands.EvaluateOptions{RepoDir: ".", Base: "main", Head: "HEAD"}

	t.Run("should allow a patch bump under a minor target", func(t *testing.T) {
		t.Parallel()

		// given
		local := &repositorydoubles.StubLocalGitRepository{
			DiffText:    manifestDiff("react", "17.0.1", "17.0.2"),
			PullRequest: entitybuilders.NewPullRequestBuilder().BuildPullRequest(),
		}
		cmd := commands.NewEvaluateCommand(local)
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		verdict, err := cmd.Execute(t.Context(), settings, opts)

		// then
		require.NoError(t, err)
		assert.True(t, verdict.Allowed)
		assert.Equal(t, "main", local.LastBase)
		assert.Equal(t, "HEAD", local.LastHead)
		assert.Zero(t, local.CommitsCallCount)
	})

	t.Run("should reject an unknown target before reading the repository", func(t *testing.T) {
		t.Parallel()

		// given
		local := &repositorydoubles.StubLocalGitRepository{
			DiffText:    manifestDiff("react", "17.0.1", "17.0.2"),
			PullRequest: entitybuilders.NewPullRequestBuilder().BuildPullRequest(),
		}
		cmd := commands.NewEvaluateCommand(local)
		settings := entitybuilders.NewSettingsBuilder().WithTarget("huge").BuildSettings()

		// when
		verdict, err := cmd.Execute(t.Context(), settings, opts)

		// then
		require.ErrorIs(t, err, entities.ErrInvalidTarget)
		assert.Nil(t, verdict)
		assert.Empty(t, local.LastBase)
	})

	t.Run("should deny an excluded package", func(t *testing.T) {
		t.Parallel()

		// given
		local := &repositorydoubles.StubLocalGitRepository{
			DiffText:    manifestDiff("react", "17.0.1", "17.0.2"),
			PullRequest: entitybuilders.NewPullRequestBuilder().BuildPullRequest(),
		}
		cmd := commands.NewEvaluateCommand(local)
		settings := entitybuilders.NewSettingsBuilder().WithExclude("react").BuildSettings()

		// when
		verdict, err := cmd.Execute(t.Context(), settings, opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.ReasonPackageExcluded, verdict.Reason)
		assert.Equal(t, "react", verdict.Package)
	})

	t.Run("should name the package after the head branch", func(t *testing.T) {
		t.Parallel()

		// given
		local := &repositorydoubles.StubLocalGitRepository{
			DiffText: readmeDiff,
			PullRequest: entitybuilders.NewPullRequestBuilder().
				WithTitle("chore(deps): from 1.2.3 to 2.0.0").
				WithHeadRef("dependabot/npm_and_yarn/left-pad-2.0.0").
				BuildPullRequest(),
		}
		cmd := commands.NewEvaluateCommand(local)
		settings := entitybuilders.NewSettingsBuilder().WithTarget("minor").BuildSettings()

		// when
		verdict, err := cmd.Execute(t.Context(), settings, opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.ReasonBumpExceedsTarget, verdict.Reason)
		assert.Equal(t, "left-pad", verdict.Package)
	})

	t.Run("should verify commits without requiring signatures", func(t *testing.T) {
		t.Parallel()

		// given
		local := &repositorydoubles.StubLocalGitRepository{
			DiffText:    manifestDiff("react", "17.0.1", "17.0.2"),
			PullRequest: entitybuilders.NewPullRequestBuilder().BuildPullRequest(),
			CommitList:  []entities.Commit{entitybuilders.NewCommitBuilder().Unverified().BuildCommit()},
		}
		cmd := commands.NewEvaluateCommand(local)
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()
		verifying := opts
		verifying.VerifyCommits = true

		// when
		verdict, err := cmd.Execute(t.Context(), settings, verifying)

		// then
		require.NoError(t, err)
		assert.True(t, verdict.Allowed)
		assert.Equal(t, 1, local.CommitsCallCount)
	})

	t.Run("should reject unsigned commits when signatures are required", func(t *testing.T) {
		t.Parallel()

		// given
		local := &repositorydoubles.StubLocalGitRepository{
			DiffText:    manifestDiff("react", "17.0.1", "17.0.2"),
			PullRequest: entitybuilders.NewPullRequestBuilder().BuildPullRequest(),
			CommitList:  []entities.Commit{entitybuilders.NewCommitBuilder().Unverified().BuildCommit()},
		}
		cmd := commands.NewEvaluateCommand(local)
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()
		verifying := opts
		verifying.VerifyCommits = true
		verifying.RequireSigned = true

		// when
		verdict, err := cmd.Execute(t.Context(), settings, verifying)

		// then
		require.ErrorIs(t, err, commands.ErrCommitNotVerified)
		assert.Nil(t, verdict)
	})
}
