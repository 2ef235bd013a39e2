//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/automerge/internal/domain/entities"
)

// SettingsBuilder creates fully defaulted settings for a GitHub run on
// pull request #1 of fastify/app.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	settings entities.Settings
}

// NewSettingsBuilder creates a builder with target "minor".
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{BaseBuilder: testkit.NewBaseBuilder(), settings: defaultSettings()}
}

func defaultSettings() entities.Settings {
	return entities.Settings{
		GitHub: entities.GitHubSettings{
			Token:      "ghs_test",
			APIURL:     entities.DefaultAPIURL,
			Repository: "fastify/app",
		},
		Policy: entities.PolicySettings{
			Target:           "minor",
			Manifest:         entities.DefaultManifest,
			SelfName:         entities.DefaultSelfName,
			AllowedAuthors:   []string{entities.DefaultAuthor},
			AllowedCommitter: entities.DefaultCommitter,
		},
		Merge: entities.MergeSettings{
			Method: entities.DefaultMergeMethod,
		},
		PullRequestNumber: 1,
	}
}

// WithTarget sets the policy target.
func (b *SettingsBuilder) WithTarget(target string) *SettingsBuilder {
	b.settings.Policy.Target = target
	return b
}

// WithExclude sets the excluded packages.
func (b *SettingsBuilder) WithExclude(names ...string) *SettingsBuilder {
	b.settings.Policy.Exclude = names
	return b
}

// WithStrict enables strict mode.
func (b *SettingsBuilder) WithStrict() *SettingsBuilder {
	b.settings.Policy.Strict = true
	return b
}

// WithoutPullRequestNumber makes the run rely on the triggering event.
func (b *SettingsBuilder) WithoutPullRequestNumber() *SettingsBuilder {
	b.settings.PullRequestNumber = 0
	b.settings.Event = entities.EventSettings{Name: "pull_request", Path: "/tmp/event.json"}
	return b
}

// WithSkipCommitVerification disables commit verification.
func (b *SettingsBuilder) WithSkipCommitVerification() *SettingsBuilder {
	b.settings.Policy.SkipCommitVerification = true
	return b
}

// WithSkipVerification disables the pull request author check.
func (b *SettingsBuilder) WithSkipVerification() *SettingsBuilder {
	b.settings.Policy.SkipVerification = true
	return b
}

// WithMerge sets the merge behavior.
func (b *SettingsBuilder) WithMerge(method entities.MergeMethod, comment string, approveOnly bool) *SettingsBuilder {
	b.settings.Merge = entities.MergeSettings{Method: method, Comment: comment, ApproveOnly: approveOnly}
	return b
}

// WithToken sets the API token.
func (b *SettingsBuilder) WithToken(token string) *SettingsBuilder {
	b.settings.GitHub.Token = token
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	settings := b.settings
	settings.Policy.Exclude = append([]string(nil), b.settings.Policy.Exclude...)
	settings.Policy.AllowedAuthors = append([]string(nil), b.settings.Policy.AllowedAuthors...)
	return &settings
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.settings = defaultSettings()
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		settings:    *b.BuildSettings(),
	}
}
