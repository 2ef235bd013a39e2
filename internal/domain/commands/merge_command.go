package commands

import (
	"context"
	"fmt"
	"slices"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/automerge/internal/domain/entities"
	"github.com/rios0rios0/automerge/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/automerge/internal/infrastructure/repositories"
	"github.com/rios0rios0/automerge/internal/policy"
)

const providerName = "github"

// Merge is the interface for the merge command (GitHub mode).
type Merge interface {
	Execute(ctx context.Context, settings *entities.Settings, opts MergeOptions) (*entities.Verdict, error)
}

// MergeOptions holds runtime options for a single merge run.
type MergeOptions struct {
	DryRun  bool
	Verbose bool
}

// MergeCommand decides whether a Dependabot pull request may be merged and,
// when it may, approves and merges it.
type MergeCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
	eventRepository  repositories.EventRepository
}

// NewMergeCommand creates a new MergeCommand.
func NewMergeCommand(
	providerRegistry *infraRepos.ProviderRegistry,
	eventRepository repositories.EventRepository,
) *MergeCommand {
	return &MergeCommand{
		providerRegistry: providerRegistry,
		eventRepository:  eventRepository,
	}
}

// Execute evaluates the pull request and acts on the verdict. Denials are not
// errors: the verdict explains why nothing was merged.
func (it *MergeCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts MergeOptions,
) (*entities.Verdict, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	if err := settings.ValidateRemote(); err != nil {
		return nil, err
	}
	rules, err := rulesFrom(settings)
	if err != nil {
		return nil, err
	}
	repo, err := entities.ParseRepository(settings.GitHub.Repository)
	if err != nil {
		return nil, err
	}

	provider, err := it.providerRegistry.Get(providerName, settings.GitHub.Token, settings.GitHub.APIURL)
	if err != nil {
		return nil, err
	}

	pr, err := it.resolvePullRequest(ctx, provider, repo, settings)
	if err != nil {
		return nil, err
	}
	logger.Infof("Evaluating pull request #%d: %s", pr.Number, pr.Title)

	if !settings.Policy.SkipVerification && !slices.Contains(settings.Policy.AllowedAuthors, pr.AuthorLogin) {
		verdict := entities.Deny(
			entities.ReasonAuthorNotAllowed, "", entities.Unchanged,
			fmt.Sprintf("pull request #%d was opened by %q, not a dependabot PR", pr.Number, pr.AuthorLogin),
		)
		logVerdict(verdict, rules.Target)
		return &verdict, nil
	}

	verifyCommitList := !settings.Policy.SkipCommitVerification
	diffText, commits, err := it.fetch(ctx, provider, repo, pr.Number, verifyCommitList)
	if err != nil {
		return nil, err
	}

	if verifyCommitList {
		if verifyErr := verifyCommits(commits, settings.Policy, true); verifyErr != nil {
			return nil, verifyErr
		}
		logger.Debugf("Verified %d commit(s)", len(commits))
	}

	changes, err := resolveChanges(diffText, pr, settings.Policy.Manifest)
	if err != nil {
		return nil, err
	}

	verdict := policy.Evaluate(changes, rules)
	logVerdict(verdict, rules.Target)
	if !verdict.Allowed {
		return &verdict, nil
	}

	if opts.DryRun {
		logger.Infof("[DRY RUN] Would approve pull request #%d", pr.Number)
		if !settings.Merge.ApproveOnly {
			logger.Infof("[DRY RUN] Would %s pull request #%d", settings.Merge.Method, pr.Number)
		}
		return &verdict, nil
	}

	if approveErr := provider.Approve(ctx, repo, pr.Number, settings.Merge.Comment); approveErr != nil {
		return nil, approveErr
	}
	if settings.Merge.ApproveOnly {
		logger.Info("Approving only")
		return &verdict, nil
	}

	if mergeErr := provider.Merge(ctx, repo, pr.Number, settings.Merge.Method); mergeErr != nil {
		return nil, mergeErr
	}
	logger.Info("Dependabot merge completed")

	return &verdict, nil
}

// resolvePullRequest prefers an explicit number over the triggering event.
func (it *MergeCommand) resolvePullRequest(
	ctx context.Context,
	provider repositories.PullRequestRepository,
	repo entities.Repository,
	settings *entities.Settings,
) (*entities.PullRequest, error) {
	if settings.PullRequestNumber > 0 {
		return provider.GetPullRequest(ctx, repo, settings.PullRequestNumber)
	}
	return it.eventRepository.PullRequestFromEvent(settings.Event)
}

// fetch downloads the diff and, when requested, the commit list concurrently.
func (it *MergeCommand) fetch(
	ctx context.Context,
	provider repositories.PullRequestRepository,
	repo entities.Repository,
	number int,
	withCommits bool,
) (string, []entities.Commit, error) {
	var (
		diffText string
		commits  []entities.Commit
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		diffText, err = provider.GetDiff(groupCtx, repo, number)
		return err
	})
	if withCommits {
		group.Go(func() error {
			var err error
			commits, err = provider.ListCommits(groupCtx, repo, number)
			return err
		})
	}

	if err := group.Wait(); err != nil {
		return "", nil, err
	}
	return diffText, commits, nil
}
