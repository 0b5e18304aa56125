package v1

import (
	"fmt"
	"net/http"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/health"

	"github.com/gin-gonic/gin"
)

// HealthHandler defines the interface for handling health endpoints
type HealthHandler interface {
	Health(ctx *gin.Context)
	DeepHealth(ctx *gin.Context)
}

// healthHandler struct holds the doctor service
type healthHandler struct {
	doctorService health.DoctorService
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(doctorService health.DoctorService) HealthHandler {
	return &healthHandler{
		doctorService: doctorService,
	}
}

// Health reports process liveness without touching any dependency
func (handler *healthHandler) Health(ctx *gin.Context) {
	var infoResponse InfoResponse
	infoMessage := "ok"
	infoResponse.Message = &infoMessage
	ctx.JSON(http.StatusOK, infoResponse)
}

// DeepHealth probes every vendor dependency and reports per-probe results
func (handler *healthHandler) DeepHealth(ctx *gin.Context) {
	checkup, err := handler.doctorService.Run(ctx)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("health checkup failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	checkupResponse := CheckupResponse{
		Healthy: checkup.Healthy(),
		Probes:  []ProbeResponse{},
	}
	for _, probe := range checkup.Probes {
		checkupResponse.Probes = append(checkupResponse.Probes, ProbeResponse{
			Name:      probe.Name,
			OK:        probe.OK,
			LatencyMs: probe.LatencyMs,
			Error:     probe.Error,
		})
	}

	status := http.StatusOK
	if !checkupResponse.Healthy {
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, checkupResponse)
}
