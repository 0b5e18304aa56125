package app

import (
	"context"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/drift"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
)

// driftSchema is the schema the toolkit owns on the managed platform.
const driftSchema = "public"

// driftService implements the DriftService interface
type driftService struct {
	schemaReader drift.SchemaReader
	logger       logger.Logger
}

// NewDriftService creates a new driftService instance
func NewDriftService(schemaReader drift.SchemaReader, logger logger.Logger) (drift.DriftService, error) {
	return &driftService{
		schemaReader: schemaReader,
		logger:       logger,
	}, nil
}

// Check introspects the live schema and compares it against the expected
// catalog.
func (s *driftService) Check(ctx context.Context) (*drift.Drift, error) {
	live, err := s.schemaReader.ReadTables(ctx, driftSchema)
	if err != nil {
		return nil, err
	}

	result := drift.Compare(drift.ExpectedCatalog(), live)
	if result.Clean() {
		s.logger.Info("Schema matches the expected catalog (", len(live), " live tables)")
	} else {
		s.logger.Warn("Schema drift detected: ",
			len(result.MissingTables), " missing tables, ",
			len(result.MissingColumns), " missing columns, ",
			len(result.TypeMismatches), " type mismatches, ",
			len(result.NullabilityMismatches), " nullability mismatches")
	}

	return result, nil
}

// Dump returns the live schema as read from the database.
func (s *driftService) Dump(ctx context.Context) ([]drift.TableSpec, error) {
	return s.schemaReader.ReadTables(ctx, driftSchema)
}
