package controllers

import (
	"errors"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/automerge/internal/domain/entities"
)

// ErrDenied is returned when a run must fail because the pull request may not
// be merged automatically.
var ErrDenied = errors.New("pull request may not be merged automatically")

// AddPersistentFlags adds the flags shared by every subcommand.
func AddPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect, then workflow inputs)")
	cmd.PersistentFlags().String("target", "",
		"Highest accepted bump (prerelease, prepatch, patch, preminor, minor, premajor, major, any)")
	cmd.PersistentFlags().Bool("fail-on-deny", false,
		"Exit with an error when the pull request may not be merged")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be done without approving or merging")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")
}

// loadSettings reads the configuration file, or the workflow inputs when no
// file exists. Flag values take precedence over both.
func loadSettings(cmd *cobra.Command, overrides ...entities.Override) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	target, _ := cmd.Flags().GetString("target")
	overrides = append(overrides, entities.WithTarget(target))

	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("%v, reading workflow inputs", err)
			return entities.NewSettingsFromInputs(os.LookupEnv, overrides...)
		}
		configPath = found
	}

	logger.Infof("Using config file: %s", configPath)
	return entities.NewSettings(configPath, overrides...)
}

// verdictError turns a denial into an error when the run should fail. A major
// upgrade of the tool itself always fails so the upgrade notice is seen.
func verdictError(verdict *entities.Verdict, failOnDeny bool) error {
	if verdict == nil || verdict.Allowed {
		return nil
	}
	if failOnDeny || verdict.Reason == entities.ReasonCannotAutoupgradeMajor {
		return fmt.Errorf("%w: %s", ErrDenied, verdict.Detail)
	}
	return nil
}
