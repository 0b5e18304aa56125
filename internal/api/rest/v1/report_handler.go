package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/audit"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/drift"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/migrations"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/seeds"

	"github.com/gin-gonic/gin"
)

// ReportHandler defines the interface for the read-only ops report endpoints
type ReportHandler interface {
	Migrations(ctx *gin.Context)
	Drift(ctx *gin.Context)
	AuditReport(ctx *gin.Context)
	Settings(ctx *gin.Context)
}

// reportHandler struct holds the services
type reportHandler struct {
	migrationService migrations.MigrationService
	driftService     drift.DriftService
	auditService     audit.AuditService
	seedService      seeds.SeedService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(migrationService migrations.MigrationService, driftService drift.DriftService, auditService audit.AuditService, seedService seeds.SeedService) ReportHandler {
	return &reportHandler{
		migrationService: migrationService,
		driftService:     driftService,
		auditService:     auditService,
		seedService:      seedService,
	}
}

// Migrations reports the ledger state of every migration script
func (handler *reportHandler) Migrations(ctx *gin.Context) {
	statuses, err := handler.migrationService.Status(ctx)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("could not read migration status: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	var listResponse = []MigrationStatusResponse{}
	for _, status := range statuses {
		listResponse = append(listResponse, MigrationStatusResponse{
			Name:      status.Name,
			State:     status.State,
			Checksum:  status.Checksum,
			AppliedAt: status.AppliedAt,
		})
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// Drift compares the live schema against the expected catalog
func (handler *reportHandler) Drift(ctx *gin.Context) {
	report, err := handler.driftService.Check(ctx)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("could not check schema drift: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	driftResponse := DriftResponse{
		Clean:                 report.Clean(),
		MissingTables:         report.MissingTables,
		UnexpectedTables:      report.UnexpectedTables,
		MissingColumns:        report.MissingColumns,
		TypeMismatches:        []MismatchResponse{},
		NullabilityMismatches: []MismatchResponse{},
	}
	for _, mismatch := range report.TypeMismatches {
		driftResponse.TypeMismatches = append(driftResponse.TypeMismatches, MismatchResponse{
			Table:    mismatch.Table,
			Column:   mismatch.Column,
			Expected: mismatch.Expected,
			Actual:   mismatch.Actual,
		})
	}
	for _, mismatch := range report.NullabilityMismatches {
		driftResponse.NullabilityMismatches = append(driftResponse.NullabilityMismatches, MismatchResponse{
			Table:    mismatch.Table,
			Column:   mismatch.Column,
			Expected: mismatch.Expected,
			Actual:   mismatch.Actual,
		})
	}

	ctx.JSON(http.StatusOK, driftResponse)
}

// AuditReport aggregates the audit trail for a category inside an optional window
func (handler *reportHandler) AuditReport(ctx *gin.Context) {
	category := ctx.Query("category")
	if len(category) == 0 {
		var errorResponse ErrorResponse
		errorMessage := "category query parameter is required"
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	var since time.Time
	if sinceQuery := ctx.Query("since"); len(sinceQuery) > 0 {
		parsed, err := time.Parse(time.RFC3339, sinceQuery)
		if err != nil {
			var errorResponse ErrorResponse
			errorMessage := fmt.Sprintf("since must be an RFC3339 timestamp: %v", err.Error())
			errorResponse.Message = &errorMessage
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return
		}
		since = parsed
	}

	var until time.Time
	if untilQuery := ctx.Query("until"); len(untilQuery) > 0 {
		parsed, err := time.Parse(time.RFC3339, untilQuery)
		if err != nil {
			var errorResponse ErrorResponse
			errorMessage := fmt.Sprintf("until must be an RFC3339 timestamp: %v", err.Error())
			errorResponse.Message = &errorMessage
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return
		}
		until = parsed
	}

	report, err := handler.auditService.Report(ctx, category, since, until)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("could not build audit report for %s: %v", category, err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	reportResponse := AuditReportResponse{
		Category:   report.Category,
		Events:     report.Events,
		Malformed:  report.Malformed,
		ByAction:   report.ByAction,
		BySeverity: report.BySeverity,
		ByActor:    report.ByActor,
		PerDay:     report.PerDay,
		First:      report.First,
		Last:       report.Last,
	}

	ctx.JSON(http.StatusOK, reportResponse)
}

// Settings lists the seeded platform settings with sensitive values redacted
func (handler *reportHandler) Settings(ctx *gin.Context) {
	category := ctx.Query("category")

	entries, err := handler.seedService.List(ctx, category)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("could not list settings: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	var listResponse = []SettingResponse{}
	for _, entry := range entries {
		listResponse = append(listResponse, SettingResponse{
			Key:       entry.Key,
			Value:     entry.Value,
			Category:  entry.Category,
			Sensitive: entry.Sensitive,
		})
	}

	ctx.JSON(http.StatusOK, listResponse)
}
