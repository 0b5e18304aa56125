package policies

import (
	"context"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/sqlexec"
)

// PolicyService defines methods for applying and inspecting row level
// security policies.
type PolicyService interface {
	// Apply renders every policy and executes the resulting statements.
	// Failures are collected per statement in the manner of script runs.
	Apply(ctx context.Context, policies []Policy, opts sqlexec.ExecOptions) (*sqlexec.ScriptResult, error)

	// List reads the policies currently installed in the database, optionally
	// filtered to a single table.
	List(ctx context.Context, table string) ([]*AppliedPolicy, error)
}

// PolicyReader reads installed policies from the database catalog.
type PolicyReader interface {
	ListPolicies(ctx context.Context, table string) ([]*AppliedPolicy, error)
}

// AppliedPolicy is a policy as reported by pg_policies.
type AppliedPolicy struct {
	Table      string
	Name       string
	Command    string
	Roles      []string
	Using      string
	WithCheck  string
	Permissive bool
}
