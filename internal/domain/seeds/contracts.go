package seeds

import (
	"context"
)

// SeedService defines methods for upserting configuration entries into the
// app_settings table.
type SeedService interface {
	// Seed upserts every entry individually. Existing keys are skipped unless
	// overwrite is set, in which case they are updated. Entry failures are
	// logged and counted without aborting the run.
	Seed(ctx context.Context, entries []Entry, overwrite bool) (*SeedResult, error)

	// List returns the seeded settings, optionally filtered to a category.
	// Sensitive values are redacted.
	List(ctx context.Context, category string) ([]Entry, error)
}

// SettingsRepository defines the interface for app_settings persistence.
type SettingsRepository interface {
	EnsureTable(ctx context.Context) error
	Get(ctx context.Context, key string) (*Entry, error)
	List(ctx context.Context, category string) ([]Entry, error)
	Create(ctx context.Context, entry *Entry) error
	Update(ctx context.Context, entry *Entry) error
}
