package app

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/health"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
)

// doctorService implements the DoctorService interface over a set of vendor
// probers
type doctorService struct {
	probers []health.Prober
	logger  logger.Logger
}

// NewDoctorService creates a new doctorService instance over the given
// probers.
func NewDoctorService(logger logger.Logger, probers ...health.Prober) (health.DoctorService, error) {
	if len(probers) == 0 {
		return nil, fmt.Errorf("doctor needs at least one prober")
	}

	return &doctorService{
		probers: probers,
		logger:  logger,
	}, nil
}

// Run probes every dependency concurrently. A plain errgroup without a
// derived context keeps one failing probe from cancelling its siblings; the
// failure lands in that probe's result instead.
func (s *doctorService) Run(ctx context.Context) (*health.CheckupResult, error) {
	results := make([]health.ProbeResult, len(s.probers))

	var g errgroup.Group
	for i, prober := range s.probers {
		i, prober := i, prober
		g.Go(func() error {
			results[i] = prober.Probe(ctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})

	for _, result := range results {
		if result.OK {
			s.logger.Info("Probe ", result.Name, " ok in ", result.LatencyMs, "ms")
		} else {
			s.logger.Error("Probe ", result.Name, " failed: ", result.Error)
		}
	}

	return &health.CheckupResult{Probes: results}, nil
}
