//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/automerge/internal/domain/commands"
	"github.com/rios0rios0/automerge/internal/domain/entities"
)

// StubEvaluateCommand is a stub implementation of commands.Evaluate.
type StubEvaluateCommand struct {
	ExecuteCallCount int
	Verdict          *entities.Verdict
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.EvaluateOptions
}

var _ commands.Evaluate = (*StubEvaluateCommand)(nil)

func (s *StubEvaluateCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.EvaluateOptions,
) (*entities.Verdict, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.Verdict, s.ExecuteErr
}
