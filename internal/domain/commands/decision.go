package commands

import (
	"errors"
	"fmt"
	"slices"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/automerge/internal/bumptitle"
	"github.com/rios0rios0/automerge/internal/domain/entities"
	"github.com/rios0rios0/automerge/internal/manifest"
	"github.com/rios0rios0/automerge/internal/policy"
)

const releasesURL = "https://github.com/fastify/github-action-merge-dependabot/releases/tag/v%s"

// ErrCommitNotVerified is returned when a pull request carries a commit the
// bot did not produce.
var ErrCommitNotVerified = errors.New("commit could not be verified")

// resolveChanges reads the change set from the manifest diff and falls back to
// the pull request title and branch when the diff does not touch the manifest.
func resolveChanges(diffText string, pr *entities.PullRequest, manifestPath string) (entities.ChangeSet, error) {
	changes, err := manifest.ExtractChangesFromDiff(diffText, manifestPath)
	if err == nil {
		return changes, nil
	}
	if !errors.Is(err, manifest.ErrNoManifestChanges) {
		return nil, err
	}

	logger.Debugf("%s is not part of the diff, reading the change from the title", manifestPath)
	change, titleErr := bumptitle.ExtractChange(pr.Title, pr.HeadRef)
	if titleErr != nil {
		return nil, titleErr
	}
	return entities.NewChangeSet(change), nil
}

// verifyCommits checks that every commit was authored by an allowed bot and
// committed by the platform. Platform signature verification is only
// enforced when requireVerified is set.
func verifyCommits(commits []entities.Commit, settings entities.PolicySettings, requireVerified bool) error {
	for _, commit := range commits {
		authored := slices.Contains(settings.AllowedAuthors, commit.AuthorName) ||
			slices.Contains(settings.AllowedAuthors, commit.AuthorLogin)
		if (requireVerified && !commit.Verified) ||
			commit.CommitterName != settings.AllowedCommitter || !authored {
			return fmt.Errorf(
				"%w: signature for commit %s could not be verified - not a dependabot commit",
				ErrCommitNotVerified, commit.SHA,
			)
		}
	}
	return nil
}

func rulesFrom(settings *entities.Settings) (policy.Rules, error) {
	target, err := settings.Target()
	if err != nil {
		return policy.Rules{}, err
	}
	return policy.Rules{
		Target:   target,
		Exclude:  settings.Policy.Exclude,
		SelfName: settings.Policy.SelfName,
		Strict:   settings.Policy.Strict,
	}, nil
}

func logVerdict(verdict entities.Verdict, target entities.Magnitude) {
	for _, evaluation := range verdict.Evaluations {
		logger.Debugf(
			"%s: %s -> %s (%s)",
			evaluation.Change.Package, evaluation.Change.From, evaluation.Change.To, evaluation.Magnitude,
		)
	}

	switch verdict.Reason {
	case entities.ReasonAllowed:
		logger.Infof("All changes are within target %s", target)
	case entities.ReasonPackageExcluded:
		logger.Infof("%s, skipping.", verdict.Detail)
	case entities.ReasonCannotAutoupgradeMajor:
		version := ""
		for _, evaluation := range verdict.Evaluations {
			if evaluation.Change.Package == verdict.Package {
				version = evaluation.Change.To
			}
		}
		logger.Warnf(
			"%s. Read how to upgrade it manually: "+releasesURL,
			verdict.Detail, trimVersionPrefix(version),
		)
	default:
		logger.Warnf("%s, skipping.", verdict.Detail)
	}
}

func trimVersionPrefix(version string) string {
	for len(version) > 0 && (version[0] == 'v' || version[0] == 'V') {
		version = version[1:]
	}
	return version
}
