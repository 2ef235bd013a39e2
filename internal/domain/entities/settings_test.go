//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/automerge/internal/domain/entities"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "automerge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func mapLookup(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestNewSettings(t *testing.T) {
	t.Parallel()

	t.Run("should load the file and fill defaults", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeSettings(t, `
github:
  token: ghs_inline
  repository: fastify/app
policy:
  target: patch
  exclude: [react]
  strict: true
`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "ghs_inline", settings.GitHub.Token)
		assert.Equal(t, "fastify/app", settings.GitHub.Repository)
		target, targetErr := settings.Target()
		require.NoError(t, targetErr)
		assert.Equal(t, entities.Patch, target)
		assert.Equal(t, []string{"react"}, settings.Policy.Exclude)
		assert.True(t, settings.Policy.Strict)
		assert.Equal(t, entities.DefaultManifest, settings.Policy.Manifest)
		assert.Equal(t, entities.DefaultSelfName, settings.Policy.SelfName)
		assert.Equal(t, []string{entities.DefaultAuthor}, settings.Policy.AllowedAuthors)
		assert.Equal(t, entities.DefaultCommitter, settings.Policy.AllowedCommitter)
		assert.Equal(t, entities.MergeMethodSquash, settings.Merge.Method)
	})

	t.Run("should fall back to squash on a malformed merge method", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeSettings(t, "policy:\n  target: minor\nmerge:\n  method: octopus\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.MergeMethodSquash, settings.Merge.Method)
	})

	t.Run("should require a target", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeSettings(t, "github:\n  token: ghs_inline\n")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "policy.target is required")
	})

	t.Run("should accept a target given as override", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeSettings(t, "github:\n  token: ghs_inline\n")

		// when
		settings, err := entities.NewSettings(path, entities.WithTarget("major"), entities.WithPullRequestNumber(5))

		// then
		require.NoError(t, err)
		target, targetErr := settings.Target()
		require.NoError(t, targetErr)
		assert.Equal(t, entities.Major, target)
		assert.Equal(t, 5, settings.PullRequestNumber)
	})

	t.Run("should reject an unknown target", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeSettings(t, "policy:\n  target: everything\n")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.ErrorIs(t, err, entities.ErrInvalidTarget)
	})

	t.Run("should report a missing file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "missing.yaml")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
}

func TestNewSettingsFromInputs(t *testing.T) {
	t.Parallel()

	t.Run("should read workflow inputs and runner variables", func(t *testing.T) {
		t.Parallel()

		// given
		lookup := mapLookup(map[string]string{
			"INPUT_GITHUB-TOKEN":  "ghs_input",
			"INPUT_TARGET":        "minor",
			"INPUT_EXCLUDE":       "react, fastify ,",
			"INPUT_MERGE-METHOD":  "rebase",
			"INPUT_MERGE-COMMENT": "Thanks!",
			"INPUT_APPROVE-ONLY":  "TRUE",
			"INPUT_PR-NUMBER":     "12",
			"INPUT_STRICT":        "false",
			"GITHUB_REPOSITORY":   "fastify/app",
			"GITHUB_API_URL":      "https://ghe.example.com/api/v3",
			"GITHUB_EVENT_NAME":   "pull_request_target",
			"GITHUB_EVENT_PATH":   "/github/workflow/event.json",
		})

		// when
		settings, err := entities.NewSettingsFromInputs(lookup)

		// then
		require.NoError(t, err)
		assert.Equal(t, "ghs_input", settings.GitHub.Token)
		assert.Equal(t, "fastify/app", settings.GitHub.Repository)
		assert.Equal(t, "https://ghe.example.com/api/v3", settings.GitHub.APIURL)
		target, targetErr := settings.Target()
		require.NoError(t, targetErr)
		assert.Equal(t, entities.Minor, target)
		assert.Equal(t, []string{"react", "fastify"}, settings.Policy.Exclude)
		assert.False(t, settings.Policy.Strict)
		assert.Equal(t, entities.MergeMethodRebase, settings.Merge.Method)
		assert.Equal(t, "Thanks!", settings.Merge.Comment)
		assert.True(t, settings.Merge.ApproveOnly)
		assert.Equal(t, 12, settings.PullRequestNumber)
		assert.True(t, settings.HasPullRequestEvent())
		require.NoError(t, settings.ValidateRemote())
	})

	t.Run("should accept underscore input names and the runner token", func(t *testing.T) {
		t.Parallel()

		// given
		lookup := mapLookup(map[string]string{
			"INPUT_TARGET":    "patch",
			"INPUT_PR_NUMBER": "3",
			"GITHUB_TOKEN":    "ghs_runner",
		})

		// when
		settings, err := entities.NewSettingsFromInputs(lookup)

		// then
		require.NoError(t, err)
		assert.Equal(t, 3, settings.PullRequestNumber)
		assert.Equal(t, "ghs_runner", settings.GitHub.Token)
		assert.Equal(t, entities.DefaultAPIURL, settings.GitHub.APIURL)
	})

	t.Run("should reject a malformed pull request number", func(t *testing.T) {
		t.Parallel()

		// given
		lookup := mapLookup(map[string]string{"INPUT_TARGET": "patch", "INPUT_PR-NUMBER": "abc"})

		// when
		_, err := entities.NewSettingsFromInputs(lookup)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pr-number must be a positive integer")
	})

	t.Run("should require a target input", func(t *testing.T) {
		t.Parallel()

		// given
		lookup := mapLookup(map[string]string{"INPUT_GITHUB-TOKEN": "ghs_input"})

		// when
		_, err := entities.NewSettingsFromInputs(lookup)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected one of prerelease")
	})
}

func TestSettings_ValidateRemote(t *testing.T) {
	t.Parallel()

	t.Run("should require a pull request number or event", func(t *testing.T) {
		t.Parallel()

		// given
		settings := &entities.Settings{
			GitHub: entities.GitHubSettings{Token: "ghs", Repository: "fastify/app"},
			Event:  entities.EventSettings{Name: "push", Path: "/github/workflow/event.json"},
		}

		// when
		err := settings.ValidateRemote()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pull request number (pr-number)")
	})

	t.Run("should require an owner/name repository", func(t *testing.T) {
		t.Parallel()

		// given
		settings := &entities.Settings{
			GitHub:            entities.GitHubSettings{Token: "ghs", Repository: "app"},
			PullRequestNumber: 1,
		}

		// when
		err := settings.ValidateRemote()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "github.repository")
	})

	t.Run("should require a token", func(t *testing.T) {
		t.Parallel()

		// given
		settings := &entities.Settings{
			GitHub:            entities.GitHubSettings{Repository: "fastify/app"},
			PullRequestNumber: 1,
		}

		// when
		err := settings.ValidateRemote()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "github.token is required")
	})
}

func TestSettings_Target(t *testing.T) {
	t.Parallel()

	t.Run("should report an unknown target on hand-built settings", func(t *testing.T) {
		t.Parallel()

		// given
		settings := &entities.Settings{Policy: entities.PolicySettings{Target: "huge"}}

		// when
		_, err := settings.Target()

		// then
		require.ErrorIs(t, err, entities.ErrInvalidTarget)
		assert.Contains(t, err.Error(), "policy.target")
	})

	t.Run("should report a missing target on hand-built settings", func(t *testing.T) {
		t.Parallel()

		// given
		settings := &entities.Settings{}

		// when
		_, err := settings.Target()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "policy.target is required")
	})
}

func TestResolveToken(t *testing.T) {
	t.Parallel()

	t.Run("should return an inline token unchanged", func(t *testing.T) {
		t.Parallel()

		// when
		token := entities.ResolveToken("ghp_abc123xyz")

		// then
		assert.Equal(t, "ghp_abc123xyz", token)
	})

	t.Run("should read the token from a file path", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(path, []byte("ghp_from_file\n"), 0o600))

		// when
		token := entities.ResolveToken(path)

		// then
		assert.Equal(t, "ghp_from_file", token)
	})

	t.Run("should expand an unset variable to empty", func(t *testing.T) {
		t.Parallel()

		// when
		token := entities.ResolveToken("${AUTOMERGE_TEST_SURELY_UNSET_VARIABLE}")

		// then
		assert.Empty(t, token)
	})
}
