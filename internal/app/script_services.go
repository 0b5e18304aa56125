package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/sqlexec"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
)

// scriptExecutionService implements the ScriptExecutionService interface for running SQL scripts
type scriptExecutionService struct {
	executor sqlexec.StatementExecutor
	logger   logger.Logger
}

// NewScriptExecutionService creates a new scriptExecutionService instance
func NewScriptExecutionService(executor sqlexec.StatementExecutor, logger logger.Logger) (sqlexec.ScriptExecutionService, error) {
	return &scriptExecutionService{
		executor: executor,
		logger:   logger,
	}, nil
}

// ExecuteScript splits the script into statements and executes them in source
// order, one implicit transaction per statement. Failures are collected in
// the result; StopOnError aborts the remainder instead.
func (s *scriptExecutionService) ExecuteScript(ctx context.Context, name, script string, opts sqlexec.ExecOptions) (*sqlexec.ScriptResult, error) {
	statements := sqlexec.Split(script)
	result := &sqlexec.ScriptResult{
		Name:  name,
		Total: len(statements),
	}

	if opts.DryRun {
		s.logger.Info("Dry run: ", name, " splits into ", len(statements), " statements")
		return result, nil
	}

	for i, statement := range statements {
		if err := s.executor.Exec(ctx, statement); err != nil {
			result.Failed = append(result.Failed, &sqlexec.StatementError{
				Index:     i,
				Statement: statement,
				Err:       err,
			})
			s.logger.Error("Statement ", i+1, " of ", name, " failed: ", err)
			if opts.StopOnError {
				break
			}
			continue
		}
		result.Succeeded++
	}

	s.logger.Info(result.Summary())
	return result, nil
}

// ExecuteFile reads the file at path and executes it like ExecuteScript.
func (s *scriptExecutionService) ExecuteFile(ctx context.Context, path string, opts sqlexec.ExecOptions) (*sqlexec.ScriptResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}

	return s.ExecuteScript(ctx, filepath.Base(path), string(data), opts)
}
