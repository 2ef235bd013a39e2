package github

import (
	"errors"
	"fmt"
	"os"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/automerge/internal/domain/entities"
	"github.com/rios0rios0/automerge/internal/domain/repositories"
)

// pull_request_target delivers the same payload shape as pull_request.
const pullRequestEventType = "pull_request"

var ErrNoPullRequestInEvent = errors.New("event payload does not contain a pull request")

// GitHubEventRepository reads the pull request from the event payload file the
// workflow runner writes to GITHUB_EVENT_PATH.
type GitHubEventRepository struct{}

// NewEventRepository creates a new GitHubEventRepository.
func NewEventRepository() repositories.EventRepository {
	return &GitHubEventRepository{}
}

func (r *GitHubEventRepository) PullRequestFromEvent(
	event entities.EventSettings,
) (*entities.PullRequest, error) {
	payload, err := os.ReadFile(event.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload %q: %w", event.Path, err)
	}

	parsed, err := gh.ParseWebHook(pullRequestEventType, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s event: %w", event.Name, err)
	}

	prEvent, ok := parsed.(*gh.PullRequestEvent)
	if !ok || prEvent.GetPullRequest() == nil {
		return nil, ErrNoPullRequestInEvent
	}
	return toPullRequest(prEvent.GetPullRequest()), nil
}
