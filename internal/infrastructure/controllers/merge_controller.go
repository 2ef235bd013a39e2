package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/automerge/internal/domain/commands"
	"github.com/rios0rios0/automerge/internal/domain/entities"
)

// MergeController handles the "merge" subcommand (GitHub mode).
type MergeController struct {
	command commands.Merge
}

// NewMergeController creates a new MergeController.
func NewMergeController(command commands.Merge) *MergeController {
	return &MergeController{command: command}
}

// GetBind returns the Cobra command metadata for the merge controller.
func (it *MergeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "merge",
		Short: "Approve and merge a Dependabot pull request",
		Long: `Evaluate a Dependabot pull request on GitHub and, when every
dependency change stays within the target, approve and merge it.

Intended to run inside a GitHub Actions workflow triggered by
pull_request or pull_request_target. Outside of one, pass the
pull request with --pr-number and the repository with --repository.`,
	}
}

// Execute runs the merge mode.
func (it *MergeController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	failOnDeny, _ := cmd.Flags().GetBool("fail-on-deny")
	number, _ := cmd.Flags().GetInt("pr-number")
	repository, _ := cmd.Flags().GetString("repository")

	settings, err := loadSettings(cmd,
		entities.WithPullRequestNumber(number),
		entities.WithRepository(repository),
	)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return err
	}

	verdict, err := it.command.Execute(ctx, settings, commands.MergeOptions{
		DryRun:  dryRun,
		Verbose: verbose,
	})
	if err != nil {
		logger.Errorf("Merge failed: %v", err)
		return err
	}

	return verdictError(verdict, failOnDeny)
}

// AddFlags adds the merge-specific flags to the given Cobra command.
func (it *MergeController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Int("pr-number", 0, "Pull request number (default: read from the triggering event)")
	cmd.Flags().String("repository", "", "Repository as owner/name (default: GITHUB_REPOSITORY)")
}
