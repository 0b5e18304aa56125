package v1

import (
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/audit"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/drift"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/health"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/migrations"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/seeds"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	doctorService health.DoctorService,
	migrationService migrations.MigrationService,
	driftService drift.DriftService,
	auditService audit.AuditService,
	seedService seeds.SeedService) {

	v1 := r.Group(BasePath)

	// Health Routes
	healthHandler := NewHealthHandler(doctorService)
	v1.GET("/health", healthHandler.Health)
	v1.GET("/health/deep", healthHandler.DeepHealth)

	// Report Routes
	reportHandler := NewReportHandler(migrationService, driftService, auditService, seedService)
	v1.GET("/migrations", reportHandler.Migrations)
	v1.GET("/drift", reportHandler.Drift)
	v1.GET("/audit/report", reportHandler.AuditReport)
	v1.GET("/settings", reportHandler.Settings)
}
