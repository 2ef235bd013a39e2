package github

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/rios0rios0/automerge/internal/domain/entities"
	"github.com/rios0rios0/automerge/internal/domain/repositories"
)

const (
	providerName  = "github"
	perPage       = 100
	retryMax      = 3
	approveEvent  = "APPROVE"
	publicAPIHost = "https://api.github.com"
)

// ErrNotMerged is returned when GitHub accepts the merge call but reports the
// pull request as still open.
var ErrNotMerged = errors.New("pull request was not merged")

// GitHubPullRequestRepository implements repositories.PullRequestRepository
// on top of the GitHub REST API.
type GitHubPullRequestRepository struct {
	client *gh.Client
}

// NewPullRequestRepository creates a GitHub client authenticated with token.
// Transient failures (5xx, rate limiting, connection resets) are retried.
// A non-public apiURL is treated as a GitHub Enterprise Server endpoint.
func NewPullRequestRepository(token, apiURL string) (repositories.PullRequestRepository, error) {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = retryMax
	retryClient.Logger = leveledLogger{}

	client := gh.NewClient(retryClient.StandardClient()).WithAuthToken(token)
	if apiURL != "" && strings.TrimSuffix(apiURL, "/") != publicAPIHost {
		enterprise, err := client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
		}
		client = enterprise
	}

	return newPullRequestRepository(client), nil
}

func newPullRequestRepository(client *gh.Client) *GitHubPullRequestRepository {
	return &GitHubPullRequestRepository{client: client}
}

func (p *GitHubPullRequestRepository) Name() string { return providerName }

func (p *GitHubPullRequestRepository) GetPullRequest(
	ctx context.Context,
	repo entities.Repository,
	number int,
) (*entities.PullRequest, error) {
	pr, _, err := p.client.PullRequests.Get(ctx, repo.Organization, repo.Name, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request #%d: %w", number, err)
	}
	return toPullRequest(pr), nil
}

func (p *GitHubPullRequestRepository) GetDiff(
	ctx context.Context,
	repo entities.Repository,
	number int,
) (string, error) {
	raw, _, err := p.client.PullRequests.GetRaw(
		ctx, repo.Organization, repo.Name, number, gh.RawOptions{Type: gh.Diff},
	)
	if err != nil {
		return "", fmt.Errorf("failed to get diff of pull request #%d: %w", number, err)
	}
	return raw, nil
}

func (p *GitHubPullRequestRepository) ListCommits(
	ctx context.Context,
	repo entities.Repository,
	number int,
) ([]entities.Commit, error) {
	var commits []entities.Commit
	opts := &gh.ListOptions{PerPage: perPage}

	for {
		page, resp, err := p.client.PullRequests.ListCommits(
			ctx, repo.Organization, repo.Name, number, opts,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits of pull request #%d: %w", number, err)
		}

		for _, c := range page {
			commits = append(commits, toCommit(c))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return commits, nil
}

func (p *GitHubPullRequestRepository) Approve(
	ctx context.Context,
	repo entities.Repository,
	number int,
	comment string,
) error {
	review := &gh.PullRequestReviewRequest{Event: gh.String(approveEvent)}
	if comment != "" {
		review.Body = gh.String(comment)
	}

	if _, _, err := p.client.PullRequests.CreateReview(
		ctx, repo.Organization, repo.Name, number, review,
	); err != nil {
		return fmt.Errorf("failed to approve pull request #%d: %w", number, err)
	}
	return nil
}

func (p *GitHubPullRequestRepository) Merge(
	ctx context.Context,
	repo entities.Repository,
	number int,
	method entities.MergeMethod,
) error {
	result, _, err := p.client.PullRequests.Merge(
		ctx, repo.Organization, repo.Name, number, "",
		&gh.PullRequestOptions{MergeMethod: string(method)},
	)
	if err != nil {
		return fmt.Errorf("failed to merge pull request #%d: %w", number, err)
	}
	if !result.GetMerged() {
		return fmt.Errorf("%w: #%d: %s", ErrNotMerged, number, result.GetMessage())
	}
	return nil
}

func toPullRequest(pr *gh.PullRequest) *entities.PullRequest {
	return &entities.PullRequest{
		Number:      pr.GetNumber(),
		Title:       pr.GetTitle(),
		AuthorLogin: pr.GetUser().GetLogin(),
		HeadRef:     pr.GetHead().GetRef(),
	}
}

func toCommit(c *gh.RepositoryCommit) entities.Commit {
	return entities.Commit{
		SHA:           c.GetSHA(),
		AuthorLogin:   c.GetAuthor().GetLogin(),
		AuthorName:    c.GetCommit().GetAuthor().GetName(),
		CommitterName: c.GetCommit().GetCommitter().GetName(),
		Verified:      c.GetCommit().GetVerification().GetVerified(),
	}
}
