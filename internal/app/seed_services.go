package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/seeds"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
)

// seedService implements the SeedService interface for app_settings
type seedService struct {
	settingsRepo seeds.SettingsRepository
	logger       logger.Logger
}

// NewSeedService creates a new seedService instance
func NewSeedService(settingsRepo seeds.SettingsRepository, logger logger.Logger) (seeds.SeedService, error) {
	return &seedService{
		settingsRepo: settingsRepo,
		logger:       logger,
	}, nil
}

// Seed upserts every entry individually. A failing entry is counted and
// logged without aborting the rest of the batch, so one bad row never blocks
// the settings a fresh environment needs.
func (s *seedService) Seed(ctx context.Context, entries []seeds.Entry, overwrite bool) (*seeds.SeedResult, error) {
	if err := s.settingsRepo.EnsureTable(ctx); err != nil {
		return nil, err
	}

	entries = s.dedupeEntries(entries)

	result := &seeds.SeedResult{}
	for i := range entries {
		entry := &entries[i]
		action := seeds.SeedAction{
			Key:      entry.Key,
			Category: entry.Category,
			Display:  entry.DisplayValue(),
		}

		outcome, err := s.seedEntry(ctx, entry, overwrite)
		if err != nil {
			action.Action = seeds.ActionFailed
			result.Failed++
			result.Actions = append(result.Actions, action)
			s.logger.Error("Failed to seed ", entry.Key, ": ", err)
			continue
		}

		action.Action = outcome
		result.Actions = append(result.Actions, action)
		switch outcome {
		case seeds.ActionCreated:
			result.Created++
		case seeds.ActionUpdated:
			result.Updated++
		case seeds.ActionSkipped:
			result.Skipped++
		}
	}

	s.logger.Info("Seeded ", result.Total(), " settings: ", result.Created, " created, ", result.Updated, " updated, ", result.Skipped, " skipped, ", result.Failed, " failed")
	return result, nil
}

// List returns the seeded settings, optionally filtered to a category.
// Sensitive values are replaced before the entries leave the service.
func (s *seedService) List(ctx context.Context, category string) ([]seeds.Entry, error) {
	entries, err := s.settingsRepo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	for i := range entries {
		if entries[i].Sensitive {
			entries[i].Value = seeds.Redacted
		}
	}

	return entries, nil
}

func (s *seedService) seedEntry(ctx context.Context, entry *seeds.Entry, overwrite bool) (string, error) {
	if err := entry.Validate(); err != nil {
		return "", err
	}

	existing, err := s.settingsRepo.Get(ctx, entry.Key)
	if err != nil {
		if !errors.Is(err, seeds.ErrNotFound) {
			return "", err
		}
		if err := s.settingsRepo.Create(ctx, entry); err != nil {
			return "", err
		}
		return seeds.ActionCreated, nil
	}

	if !overwrite {
		return seeds.ActionSkipped, nil
	}
	if existing.Value == entry.Value && existing.Category == entry.Category && existing.Sensitive == entry.Sensitive {
		return seeds.ActionSkipped, nil
	}

	if err := s.settingsRepo.Update(ctx, entry); err != nil {
		return "", err
	}
	return seeds.ActionUpdated, nil
}

// dedupeEntries collapses duplicate keys within one batch, last entry wins.
// The survivor keeps the position of the first occurrence so the seed order
// stays stable.
func (s *seedService) dedupeEntries(entries []seeds.Entry) []seeds.Entry {
	index := make(map[string]int, len(entries))
	deduped := make([]seeds.Entry, 0, len(entries))

	for _, entry := range entries {
		if i, ok := index[entry.Key]; ok {
			s.logger.Warn("Duplicate seed key ", entry.Key, " in batch; keeping the last definition")
			deduped[i] = entry
			continue
		}
		index[entry.Key] = len(deduped)
		deduped = append(deduped, entry)
	}

	return deduped
}
