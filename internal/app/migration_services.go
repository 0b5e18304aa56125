package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/migrations"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/sqlexec"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
)

// migrationService implements the MigrationService interface for the schema ledger
type migrationService struct {
	ledgerRepo   migrations.LedgerRepository
	scriptRunner sqlexec.ScriptExecutionService
	dir          string
	logger       logger.Logger
}

// NewMigrationService creates a new migrationService instance. dir is the
// directory holding the numbered .sql scripts.
func NewMigrationService(ledgerRepo migrations.LedgerRepository, scriptRunner sqlexec.ScriptExecutionService, dir string, logger logger.Logger) (migrations.MigrationService, error) {
	if dir == "" {
		return nil, fmt.Errorf("migrations directory must not be empty")
	}

	return &migrationService{
		ledgerRepo:   ledgerRepo,
		scriptRunner: scriptRunner,
		dir:          dir,
		logger:       logger,
	}, nil
}

// Up applies every pending script in lexical order. Each executed script gets
// a ledger row with its statement counts, failures included, so a partial run
// is visible in Status. The ledger row lands after the script ran; there is
// no transactional coupling between the two.
func (s *migrationService) Up(ctx context.Context, opts sqlexec.ExecOptions) ([]*sqlexec.ScriptResult, error) {
	if err := s.ledgerRepo.EnsureLedger(ctx); err != nil {
		return nil, err
	}

	scripts, err := migrations.LoadScripts(s.dir)
	if err != nil {
		return nil, err
	}

	applied, err := s.appliedByName(ctx)
	if err != nil {
		return nil, err
	}

	var results []*sqlexec.ScriptResult
	for _, script := range scripts {
		if record, ok := applied[script.Name]; ok {
			if record.Checksum != script.Checksum {
				s.logger.Warn("Migration ", script.Name, " changed after it was applied; not re-running")
			}
			continue
		}

		result, err := s.scriptRunner.ExecuteScript(ctx, script.Name, script.SQL, opts)
		if err != nil {
			return results, err
		}
		results = append(results, result)

		if opts.DryRun {
			continue
		}

		record := &migrations.Record{
			Name:       script.Name,
			Checksum:   script.Checksum,
			Statements: result.Total,
			Failed:     len(result.Failed),
			AppliedAt:  time.Now().UTC(),
		}
		if err := s.ledgerRepo.Create(ctx, record); err != nil {
			return results, fmt.Errorf("failed to record migration %s: %w", script.Name, err)
		}

		if !result.Ok() && opts.StopOnError {
			return results, fmt.Errorf("migration %s aborted the run: %s", script.Name, result.Summary())
		}
	}

	if len(results) == 0 {
		s.logger.Info("No pending migrations in ", s.dir)
	}

	return results, nil
}

// Status pairs every script on disk with its ledger state and appends ledger
// entries whose file has disappeared.
func (s *migrationService) Status(ctx context.Context) ([]*migrations.ScriptStatus, error) {
	if err := s.ledgerRepo.EnsureLedger(ctx); err != nil {
		return nil, err
	}

	scripts, err := migrations.LoadScripts(s.dir)
	if err != nil {
		return nil, err
	}

	records, err := s.ledgerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*migrations.Record, len(records))
	for _, record := range records {
		byName[record.Name] = record
	}

	var statuses []*migrations.ScriptStatus
	onDisk := make(map[string]bool, len(scripts))
	for _, script := range scripts {
		onDisk[script.Name] = true

		status := &migrations.ScriptStatus{
			Name:     script.Name,
			State:    migrations.StatePending,
			Checksum: script.Checksum,
		}
		if record, ok := byName[script.Name]; ok {
			appliedAt := record.AppliedAt
			status.AppliedAt = &appliedAt
			if record.Checksum == script.Checksum {
				status.State = migrations.StateApplied
			} else {
				status.State = migrations.StateDrifted
			}
		}
		statuses = append(statuses, status)
	}

	for _, record := range records {
		if onDisk[record.Name] {
			continue
		}
		appliedAt := record.AppliedAt
		statuses = append(statuses, &migrations.ScriptStatus{
			Name:      record.Name,
			State:     migrations.StateMissing,
			Checksum:  record.Checksum,
			AppliedAt: &appliedAt,
		})
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Name < statuses[j].Name
	})

	return statuses, nil
}

// MarkApplied records the named script without executing it, for schemas that
// were provisioned before the ledger existed.
func (s *migrationService) MarkApplied(ctx context.Context, name string) error {
	if err := s.ledgerRepo.EnsureLedger(ctx); err != nil {
		return err
	}

	scripts, err := migrations.LoadScripts(s.dir)
	if err != nil {
		return err
	}

	var script *migrations.Script
	for _, candidate := range scripts {
		if candidate.Name == name {
			script = candidate
			break
		}
	}
	if script == nil {
		return fmt.Errorf("%w: %s", migrations.ErrNotFound, name)
	}

	if _, err := s.ledgerRepo.Get(ctx, name); err == nil {
		return fmt.Errorf("migration %s is already recorded", name)
	} else if !errors.Is(err, migrations.ErrNotFound) {
		return err
	}

	record := &migrations.Record{
		Name:       script.Name,
		Checksum:   script.Checksum,
		Statements: len(sqlexec.Split(script.SQL)),
		AppliedAt:  time.Now().UTC(),
	}
	if err := s.ledgerRepo.Create(ctx, record); err != nil {
		return err
	}

	s.logger.Info("Marked migration ", name, " as applied without executing it")
	return nil
}

func (s *migrationService) appliedByName(ctx context.Context) (map[string]*migrations.Record, error) {
	records, err := s.ledgerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*migrations.Record, len(records))
	for _, record := range records {
		byName[record.Name] = record
	}
	return byName, nil
}
