package migrations

import (
	"context"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/sqlexec"
)

// MigrationService defines methods for applying and inspecting schema migrations.
type MigrationService interface {
	// Up applies every pending script in lexical order and records each run
	// in the ledger. Scripts already recorded are skipped; a recorded script
	// whose checksum no longer matches the file is reported as drifted and
	// not re-applied.
	// It returns a ScriptResult per executed script.
	Up(ctx context.Context, opts sqlexec.ExecOptions) ([]*sqlexec.ScriptResult, error)

	// Status reports the ledger state of every script in the migrations
	// directory plus any ledger entries whose file has disappeared.
	Status(ctx context.Context) ([]*ScriptStatus, error)

	// MarkApplied records the named script in the ledger without executing
	// it, for schemas that were provisioned before the ledger existed.
	MarkApplied(ctx context.Context, name string) error
}

// LedgerRepository defines the interface for migration ledger operations.
type LedgerRepository interface {
	EnsureLedger(ctx context.Context) error
	List(ctx context.Context) ([]*Record, error)
	Get(ctx context.Context, name string) (*Record, error)
	Create(ctx context.Context, record *Record) error
}
