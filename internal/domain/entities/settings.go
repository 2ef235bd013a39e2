package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultManifest         = "package.json"
	DefaultSelfName         = "github-action-merge-dependabot"
	DefaultAuthor           = "dependabot[bot]"
	DefaultCommitter        = "GitHub"
	DefaultAPIURL           = "https://api.github.com/"
	DefaultMergeMethod      = MergeMethodSquash
	actionInputPrefix       = "INPUT_"
	envGitHubRepository     = "GITHUB_REPOSITORY"
	envGitHubAPIURL         = "GITHUB_API_URL"
	envGitHubEventName      = "GITHUB_EVENT_NAME"
	envGitHubEventPath      = "GITHUB_EVENT_PATH"
	envGitHubToken          = "GITHUB_TOKEN"
	pullRequestEventName    = "pull_request"
	pullRequestTargetEvName = "pull_request_target"
)

// Settings is the top-level configuration for automerge.
type Settings struct {
	GitHub            GitHubSettings `yaml:"github"`
	Policy            PolicySettings `yaml:"policy"`
	Merge             MergeSettings  `yaml:"merge"`
	PullRequestNumber int            `yaml:"pull_request_number"`
	Event             EventSettings  `yaml:"-"`
}

// GitHubSettings describes how to reach the hosting API.
type GitHubSettings struct {
	Token      string `yaml:"token"`      // Inline, ${ENV_VAR}, or file path
	APIURL     string `yaml:"api_url"`    // Defaults to the public GitHub API
	Repository string `yaml:"repository"` // "owner/name"
}

// PolicySettings holds the rules the change set is evaluated against.
type PolicySettings struct {
	Target                 string   `yaml:"target"` // Required, see TargetNames
	Exclude                []string `yaml:"exclude"`
	Strict                 bool     `yaml:"strict"`
	Manifest               string   `yaml:"manifest"`
	SelfName               string   `yaml:"self_name"`
	AllowedAuthors         []string `yaml:"allowed_authors"`
	AllowedCommitter       string   `yaml:"allowed_committer"`
	SkipCommitVerification bool     `yaml:"skip_commit_verification"`
	SkipVerification       bool     `yaml:"skip_verification"`
}

// MergeSettings controls what happens once a pull request is allowed.
type MergeSettings struct {
	Method      MergeMethod `yaml:"method"`
	Comment     string      `yaml:"comment"`
	ApproveOnly bool        `yaml:"approve_only"`
}

// EventSettings points at the workflow event that triggered the run, if any.
type EventSettings struct {
	Name string
	Path string
}

// Override adjusts loaded settings before defaults and validation run.
// Command-line flags use it to take precedence over files and inputs.
type Override func(*Settings)

// WithTarget replaces the policy target when value is not empty.
func WithTarget(value string) Override {
	return func(s *Settings) {
		if value != "" {
			s.Policy.Target = value
		}
	}
}

// WithPullRequestNumber replaces the pull request number when number is set.
func WithPullRequestNumber(number int) Override {
	return func(s *Settings) {
		if number != 0 {
			s.PullRequestNumber = number
		}
	}
}

// WithRepository replaces the "owner/name" slug when value is not empty.
func WithRepository(value string) Override {
	return func(s *Settings) {
		if value != "" {
			s.GitHub.Repository = value
		}
	}
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variables and resolving token file paths.
func NewSettings(path string, overrides ...Override) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.GitHub.Token = resolveToken(settings.GitHub.Token)
	settings.ApplyEnvironment(os.LookupEnv)
	settings.apply(overrides)
	settings.applyDefaults()

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// NewSettingsFromInputs builds the configuration out of GitHub Action inputs,
// which the runner exposes as INPUT_<NAME> environment variables.
func NewSettingsFromInputs(lookup func(string) (string, bool), overrides ...Override) (*Settings, error) {
	settings := Settings{
		GitHub: GitHubSettings{
			Token: actionInput(lookup, "github-token"),
		},
		Policy: PolicySettings{
			Target:                 actionInput(lookup, "target"),
			Exclude:                parseCommaSeparatedValue(actionInput(lookup, "exclude")),
			Strict:                 isTrue(actionInput(lookup, "strict")),
			Manifest:               actionInput(lookup, "manifest"),
			SkipCommitVerification: isTrue(actionInput(lookup, "skip-commit-verification")),
			SkipVerification:       isTrue(actionInput(lookup, "skip-verification")),
		},
		Merge: MergeSettings{
			Method:      MergeMethod(actionInput(lookup, "merge-method")),
			Comment:     actionInput(lookup, "merge-comment"),
			ApproveOnly: isTrue(actionInput(lookup, "approve-only")),
		},
	}

	if settings.GitHub.Token == "" {
		if token, ok := lookup(envGitHubToken); ok {
			settings.GitHub.Token = token
		}
	}

	if raw := actionInput(lookup, "pr-number"); raw != "" {
		number, err := strconv.Atoi(raw)
		if err != nil || number <= 0 {
			return nil, fmt.Errorf("pr-number must be a positive integer, got %q", raw)
		}
		settings.PullRequestNumber = number
	}

	settings.ApplyEnvironment(lookup)
	settings.apply(overrides)
	settings.applyDefaults()

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".automerge.yaml",
		".automerge.yml",
		"automerge.yaml",
		"automerge.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ApplyEnvironment fills values the workflow runner provides when they were
// not configured explicitly.
func (s *Settings) ApplyEnvironment(lookup func(string) (string, bool)) {
	if s.GitHub.Repository == "" {
		if repo, ok := lookup(envGitHubRepository); ok {
			s.GitHub.Repository = repo
		}
	}
	if s.GitHub.APIURL == "" {
		if apiURL, ok := lookup(envGitHubAPIURL); ok {
			s.GitHub.APIURL = apiURL
		}
	}
	if name, ok := lookup(envGitHubEventName); ok {
		s.Event.Name = name
	}
	if path, ok := lookup(envGitHubEventPath); ok {
		s.Event.Path = path
	}
}

// Target returns the configured ceiling.
func (s *Settings) Target() (Magnitude, error) {
	if strings.TrimSpace(s.Policy.Target) == "" {
		return Incomparable, fmt.Errorf(
			"policy.target is required: expected one of %s",
			strings.Join(TargetNames(), ", "),
		)
	}
	target, err := ParseTarget(s.Policy.Target)
	if err != nil {
		return Incomparable, fmt.Errorf("policy.target: %w", err)
	}
	return target, nil
}

// HasPullRequestEvent reports whether the run was triggered by a pull request event.
func (s *Settings) HasPullRequestEvent() bool {
	if s.Event.Path == "" {
		return false
	}
	return s.Event.Name == pullRequestEventName || s.Event.Name == pullRequestTargetEvName
}

// ValidateRemote checks the values needed to talk to the hosting API.
func (s *Settings) ValidateRemote() error {
	if s.GitHub.Token == "" {
		return errors.New(
			"github.token is required (set inline, via ${ENV_VAR}, as file path, or the github-token input)",
		)
	}
	if _, err := ParseRepository(s.GitHub.Repository); err != nil {
		return fmt.Errorf("github.repository: %w", err)
	}
	if s.PullRequestNumber == 0 && !s.HasPullRequestEvent() {
		return errors.New(
			"must run in the context of a pull request or with a pull request number (pr-number)",
		)
	}
	return nil
}

func (s *Settings) apply(overrides []Override) {
	for _, override := range overrides {
		override(s)
	}
}

func (s *Settings) applyDefaults() {
	if s.GitHub.APIURL == "" {
		s.GitHub.APIURL = DefaultAPIURL
	}
	if s.Policy.Manifest == "" {
		s.Policy.Manifest = DefaultManifest
	}
	if s.Policy.SelfName == "" {
		s.Policy.SelfName = DefaultSelfName
	}
	if len(s.Policy.AllowedAuthors) == 0 {
		s.Policy.AllowedAuthors = []string{DefaultAuthor}
	}
	if s.Policy.AllowedCommitter == "" {
		s.Policy.AllowedCommitter = DefaultCommitter
	}
	if s.Merge.Method == "" {
		s.Merge.Method = DefaultMergeMethod
	}
	if !s.Merge.Method.IsValid() {
		logger.Warnf(
			"merge method %q is ignored because it is malformed, defaulting to %q",
			s.Merge.Method, DefaultMergeMethod,
		)
		s.Merge.Method = DefaultMergeMethod
	}
}

// validate checks for required configuration values.
func (s *Settings) validate() error {
	if _, err := s.Target(); err != nil {
		return err
	}
	if s.PullRequestNumber < 0 {
		return fmt.Errorf("pull_request_number must be positive, got %d", s.PullRequestNumber)
	}
	return nil
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// actionInput reads a workflow input. The runner keeps hyphens in the variable
// name, the underscore spelling is accepted for local runs.
func actionInput(lookup func(string) (string, bool), name string) string {
	key := actionInputPrefix + strings.ToUpper(name)
	if val, ok := lookup(key); ok {
		return strings.TrimSpace(val)
	}
	if val, ok := lookup(strings.ReplaceAll(key, "-", "_")); ok {
		return strings.TrimSpace(val)
	}
	return ""
}

func parseCommaSeparatedValue(value string) []string {
	if value == "" {
		return nil
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func isTrue(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}
