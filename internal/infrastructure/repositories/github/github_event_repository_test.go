//go:build unit

package github_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/automerge/internal/domain/entities"
	"github.com/rios0rios0/automerge/internal/infrastructure/repositories/github"
)

func writeEvent(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))
	return path
}

func TestGitHubEventRepository(t *testing.T) {
	t.Parallel()

	t.Run("should read the pull request from a pull_request payload", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeEvent(t, `{
			"action": "opened",
			"number": 12,
			"pull_request": {
				"number": 12,
				"title": "Bump fastify from 3.0.0 to 3.1.0",
				"user": {"login": "dependabot[bot]"},
				"head": {"ref": "dependabot/npm_and_yarn/fastify-3.1.0"}
			}
		}`)
		repo := github.NewEventRepository()

		// when
		pr, err := repo.PullRequestFromEvent(entities.EventSettings{Name: "pull_request_target", Path: path})

		// then
		require.NoError(t, err)
		assert.Equal(t, 12, pr.Number)
		assert.Equal(t, "Bump fastify from 3.0.0 to 3.1.0", pr.Title)
		assert.Equal(t, "dependabot[bot]", pr.AuthorLogin)
		assert.Equal(t, "dependabot/npm_and_yarn/fastify-3.1.0", pr.HeadRef)
	})

	t.Run("should fail when the payload has no pull request", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeEvent(t, `{"action": "opened"}`)
		repo := github.NewEventRepository()

		// when
		pr, err := repo.PullRequestFromEvent(entities.EventSettings{Name: "pull_request", Path: path})

		// then
		require.ErrorIs(t, err, github.ErrNoPullRequestInEvent)
		assert.Nil(t, pr)
	})

	t.Run("should fail when the payload file is missing", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "missing.json")
		repo := github.NewEventRepository()

		// when
		pr, err := repo.PullRequestFromEvent(entities.EventSettings{Name: "pull_request", Path: path})

		// then
		require.Error(t, err)
		assert.Nil(t, pr)
		assert.Contains(t, err.Error(), "failed to read event payload")
	})
}
