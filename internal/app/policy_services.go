package app

import (
	"context"
	"fmt"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/policies"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/sqlexec"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
)

// rlsPolicyName is the script name reported for policy apply runs.
const rlsPolicyName = "rls-policies"

// policyService implements the PolicyService interface for row level security
type policyService struct {
	scriptRunner sqlexec.ScriptExecutionService
	policyReader policies.PolicyReader
	logger       logger.Logger
}

// NewPolicyService creates a new policyService instance
func NewPolicyService(scriptRunner sqlexec.ScriptExecutionService, policyReader policies.PolicyReader, logger logger.Logger) (policies.PolicyService, error) {
	return &policyService{
		scriptRunner: scriptRunner,
		policyReader: policyReader,
		logger:       logger,
	}, nil
}

// Apply renders the policy set into DDL and runs it as one script. Rendering
// validates every policy first, so a single bad definition stops the run
// before any statement reaches the database.
func (s *policyService) Apply(ctx context.Context, policySet []policies.Policy, opts sqlexec.ExecOptions) (*sqlexec.ScriptResult, error) {
	if len(policySet) == 0 {
		return nil, fmt.Errorf("no policies to apply")
	}

	script, err := policies.RenderAll(policySet)
	if err != nil {
		return nil, fmt.Errorf("failed to render policies: %w", err)
	}

	result, err := s.scriptRunner.ExecuteScript(ctx, rlsPolicyName, script, opts)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Applied ", len(policySet), " policies across the schema")
	return result, nil
}

// List reads the policies installed in the database, optionally filtered to a
// single table.
func (s *policyService) List(ctx context.Context, table string) ([]*policies.AppliedPolicy, error) {
	applied, err := s.policyReader.ListPolicies(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	return applied, nil
}
