package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/audit"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
)

// auditService implements the AuditService interface over a file trail store
// with an optional database mirror
type auditService struct {
	trailStore audit.TrailStore
	mirrorRepo audit.MirrorRepository
	logger     logger.Logger
}

// NewAuditService creates a new auditService instance. mirrorRepo may be nil
// when mirroring to the admin audit table is disabled.
func NewAuditService(trailStore audit.TrailStore, mirrorRepo audit.MirrorRepository, logger logger.Logger) (audit.AuditService, error) {
	return &auditService{
		trailStore: trailStore,
		mirrorRepo: mirrorRepo,
		logger:     logger,
	}, nil
}

// Log stamps missing event fields, validates and appends. The trail append is
// the source of record; a mirror failure is logged and swallowed so a broken
// database connection cannot lose audit events.
func (s *auditService) Log(ctx context.Context, event *audit.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.Severity == "" {
		event.Severity = audit.SeverityInfo
	}

	if err := event.Validate(); err != nil {
		return err
	}

	if err := s.trailStore.Append(event); err != nil {
		return err
	}

	if s.mirrorRepo != nil {
		if err := s.mirrorRepo.Create(ctx, event); err != nil {
			s.logger.Error("Failed to mirror audit event ", event.ID, " to the database: ", err)
		}
	}

	return nil
}

// Report scans the category trail and aggregates the events inside the
// window. Zero bounds leave that side of the window open.
func (s *auditService) Report(ctx context.Context, category string, since, until time.Time) (*audit.Report, error) {
	events, malformed, err := s.trailStore.Scan(category)
	if err != nil {
		return nil, err
	}

	report := audit.NewReport(category)
	report.Malformed = malformed
	for _, event := range events {
		if !since.IsZero() && event.Timestamp.Before(since) {
			continue
		}
		if !until.IsZero() && event.Timestamp.After(until) {
			continue
		}
		report.Add(event)
	}

	s.logger.Info("Report for ", category, ": ", report.Events, " events, ", report.Malformed, " malformed lines")
	return report, nil
}

// Rotate renames the category trail with a timestamp suffix so a fresh file
// starts on the next append.
func (s *auditService) Rotate(category string) error {
	if err := s.trailStore.Rotate(category); err != nil {
		return err
	}
	s.logger.Info("Rotated audit trail for ", category)
	return nil
}
