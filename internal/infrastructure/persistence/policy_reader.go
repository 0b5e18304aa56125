package persistence

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/policies"
)

type pgPolicyReader struct {
	db *gorm.DB
}

// NewPgPolicyReader creates a new PolicyReader backed by the pg_policies
// catalog view. Row level security is a Postgres feature, so other dialects
// are rejected outright.
func NewPgPolicyReader(db *gorm.DB) (policies.PolicyReader, error) {
	return &pgPolicyReader{db: db}, nil
}

type policyRow struct {
	Tablename  string
	Policyname string
	Permissive string
	Roles      string
	Cmd        string
	Qual       *string
	WithCheck  *string
}

func (r *pgPolicyReader) ListPolicies(ctx context.Context, table string) ([]*policies.AppliedPolicy, error) {
	if r.db.Dialector.Name() != "postgres" {
		return nil, fmt.Errorf("policy introspection requires postgres, got %s", r.db.Dialector.Name())
	}

	query := r.db.WithContext(ctx).Raw(`
		SELECT tablename, policyname, permissive, roles::text AS roles, cmd, qual, with_check
		FROM pg_policies
		WHERE schemaname = 'public'
		ORDER BY tablename, policyname`)
	if table != "" {
		query = r.db.WithContext(ctx).Raw(`
			SELECT tablename, policyname, permissive, roles::text AS roles, cmd, qual, with_check
			FROM pg_policies
			WHERE schemaname = 'public' AND tablename = ?
			ORDER BY policyname`, table)
	}

	var rows []policyRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read pg_policies: %w", err)
	}

	applied := make([]*policies.AppliedPolicy, len(rows))
	for i, row := range rows {
		policy := &policies.AppliedPolicy{
			Table:      row.Tablename,
			Name:       row.Policyname,
			Command:    row.Cmd,
			Roles:      parsePgArray(row.Roles),
			Permissive: strings.EqualFold(row.Permissive, "PERMISSIVE"),
		}
		if row.Qual != nil {
			policy.Using = *row.Qual
		}
		if row.WithCheck != nil {
			policy.WithCheck = *row.WithCheck
		}
		applied[i] = policy
	}

	return applied, nil
}

// parsePgArray unpacks a text-cast Postgres array like {authenticated,anon}.
// Role names are plain identifiers so quoted elements do not occur.
func parsePgArray(raw string) []string {
	trimmed := strings.Trim(strings.TrimSpace(raw), "{}")
	if trimmed == "" {
		return nil
	}

	parts := strings.Split(trimmed, ",")
	roles := make([]string, 0, len(parts))
	for _, part := range parts {
		role := strings.Trim(strings.TrimSpace(part), `"`)
		if role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}
