package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/automerge/internal/domain/commands"
	"github.com/rios0rios0/automerge/internal/domain/entities"
)

// EvaluateController handles the "evaluate" subcommand (local Git mode).
type EvaluateController struct {
	command commands.Evaluate
}

// NewEvaluateController creates a new EvaluateController.
func NewEvaluateController(command commands.Evaluate) *EvaluateController {
	return &EvaluateController{command: command}
}

// GetBind returns the Cobra command metadata for the evaluate controller.
func (it *EvaluateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "evaluate [path]",
		Short: "Decide whether a local bump branch could be merged",
		Long: `Evaluate the difference between two revisions of a local Git
repository as if it were a Dependabot pull request.

The head commit subject is used as the title and the checked-out
branch as the head ref. Nothing is approved or merged.`,
	}
}

// Execute runs the local evaluation.
func (it *EvaluateController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	verbose, _ := cmd.Flags().GetBool("verbose")
	failOnDeny, _ := cmd.Flags().GetBool("fail-on-deny")
	base, _ := cmd.Flags().GetString("base")
	head, _ := cmd.Flags().GetString("head")
	verifyCommits, _ := cmd.Flags().GetBool("verify-commits")
	requireSigned, _ := cmd.Flags().GetBool("require-signed")

	repoDir := "."
	if len(args) > 0 {
		repoDir = args[0]
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return err
	}

	verdict, err := it.command.Execute(ctx, settings, commands.EvaluateOptions{
		RepoDir:       repoDir,
		Base:          base,
		Head:          head,
		VerifyCommits: verifyCommits || requireSigned,
		RequireSigned: requireSigned,
		Verbose:       verbose,
	})
	if err != nil {
		logger.Errorf("Evaluation failed: %v", err)
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), describe(verdict))
	return verdictError(verdict, failOnDeny)
}

// AddFlags adds the evaluate-specific flags to the given Cobra command.
func (it *EvaluateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("base", "main", "Base revision the bump is compared against")
	cmd.Flags().String("head", "HEAD", "Head revision holding the bump")
	cmd.Flags().Bool("verify-commits", false, "Check that commits between base and head come from the bot")
	cmd.Flags().Bool("require-signed", false, "Also require those commits to be signed (implies --verify-commits)")
}

func describe(verdict *entities.Verdict) string {
	if verdict.Allowed {
		return fmt.Sprintf("%s: %d change(s) may be merged", verdict.Reason, len(verdict.Evaluations))
	}
	return fmt.Sprintf("%s: %s", verdict.Reason, verdict.Detail)
}
