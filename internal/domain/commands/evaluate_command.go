package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/automerge/internal/domain/entities"
	"github.com/rios0rios0/automerge/internal/domain/repositories"
	"github.com/rios0rios0/automerge/internal/policy"
)

// Evaluate is the interface for the evaluate command (local Git mode).
type Evaluate interface {
	Execute(ctx context.Context, settings *entities.Settings, opts EvaluateOptions) (*entities.Verdict, error)
}

// EvaluateOptions holds runtime options for a local evaluation.
type EvaluateOptions struct {
	RepoDir       string
	Base          string
	Head          string
	VerifyCommits bool
	RequireSigned bool
	Verbose       bool
}

// EvaluateCommand runs the merge decision against a local checkout without
// talking to any hosting API.
type EvaluateCommand struct {
	localRepository repositories.LocalGitRepository
}

// NewEvaluateCommand creates a new EvaluateCommand.
func NewEvaluateCommand(localRepository repositories.LocalGitRepository) *EvaluateCommand {
	return &EvaluateCommand{localRepository: localRepository}
}

// Execute computes the verdict for base..head.
func (it *EvaluateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts EvaluateOptions,
) (*entities.Verdict, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	rules, err := rulesFrom(settings)
	if err != nil {
		return nil, err
	}

	logger.Infof("Evaluating %s..%s in %s", opts.Base, opts.Head, opts.RepoDir)

	pr, err := it.localRepository.HeadPullRequest(ctx, opts.RepoDir, opts.Head)
	if err != nil {
		return nil, err
	}

	if opts.VerifyCommits {
		commits, listErr := it.localRepository.Commits(ctx, opts.RepoDir, opts.Base, opts.Head)
		if listErr != nil {
			return nil, listErr
		}
		if verifyErr := verifyCommits(commits, settings.Policy, opts.RequireSigned); verifyErr != nil {
			return nil, verifyErr
		}
		logger.Debugf("Verified %d commit(s)", len(commits))
	}

	diffText, err := it.localRepository.Diff(ctx, opts.RepoDir, opts.Base, opts.Head)
	if err != nil {
		return nil, err
	}

	changes, err := resolveChanges(diffText, pr, settings.Policy.Manifest)
	if err != nil {
		return nil, err
	}

	verdict := policy.Evaluate(changes, rules)
	logVerdict(verdict, rules.Target)
	return &verdict, nil
}
