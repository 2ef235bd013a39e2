package repositories

import "github.com/rios0rios0/automerge/internal/domain/entities"

// EventRepository reads the pull request out of the workflow event that
// triggered the run.
type EventRepository interface {
	PullRequestFromEvent(event entities.EventSettings) (*entities.PullRequest, error)
}
