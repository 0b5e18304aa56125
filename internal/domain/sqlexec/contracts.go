package sqlexec

import (
	"context"
)

// ScriptExecutionService defines methods for running multi-statement SQL
// scripts against the operations database.
type ScriptExecutionService interface {
	// ExecuteScript splits the script into individual statements and executes
	// them one at a time. Statement failures are collected rather than
	// aborting the run unless StopOnError is set.
	// It returns a ScriptResult describing the outcome of every statement.
	ExecuteScript(ctx context.Context, name, script string, opts ExecOptions) (*ScriptResult, error)

	// ExecuteFile reads the file at path and executes it like ExecuteScript.
	ExecuteFile(ctx context.Context, path string, opts ExecOptions) (*ScriptResult, error)
}

// StatementExecutor executes a single SQL statement. Implementations run each
// statement in its own implicit transaction; the caller never gets a
// script-wide transaction.
type StatementExecutor interface {
	Exec(ctx context.Context, statement string) error
}
