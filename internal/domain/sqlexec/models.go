package sqlexec

import (
	"fmt"
)

// ExecOptions controls how a script run treats statement failures.
type ExecOptions struct {
	// StopOnError aborts the run at the first failing statement instead of
	// continuing with the remainder of the script.
	StopOnError bool
	// DryRun splits and reports the statements without executing any of them.
	DryRun bool
}

// StatementError records a single failed statement within a script run.
type StatementError struct {
	Index     int
	Statement string
	Err       error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("statement %d failed: %v", e.Index+1, e.Err)
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// ScriptResult describes the outcome of executing one script.
type ScriptResult struct {
	Name      string
	Total     int
	Succeeded int
	Failed    []*StatementError
}

// Ok reports whether every statement in the script succeeded.
func (r *ScriptResult) Ok() bool {
	return len(r.Failed) == 0
}

// Summary returns a one-line description suitable for logging.
func (r *ScriptResult) Summary() string {
	return fmt.Sprintf("%s: %d/%d statements succeeded, %d failed", r.Name, r.Succeeded, r.Total, len(r.Failed))
}
