package audit

import (
	"context"
	"time"
)

// AuditService defines methods for recording and reporting operational audit
// events.
type AuditService interface {
	// Log validates and stamps the event, appends it to the category trail
	// and mirrors it to the admin audit table. A mirror failure is logged and
	// does not fail the append.
	Log(ctx context.Context, event *Event) error

	// Report scans the category trail and aggregates events inside the
	// window. Zero since/until bounds are open. Malformed lines are counted
	// and skipped.
	Report(ctx context.Context, category string, since, until time.Time) (*Report, error)

	// Rotate renames the category trail with a timestamp suffix and starts a
	// fresh file.
	Rotate(category string) error
}

// TrailStore is the append-only JSONL store behind the audit service, one
// file per category.
type TrailStore interface {
	Append(event *Event) error
	Scan(category string) ([]*Event, int, error)
	Rotate(category string) error
}

// MirrorRepository writes audit events to the admin audit table.
type MirrorRepository interface {
	Create(ctx context.Context, event *Event) error
}
