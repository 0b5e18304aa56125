//go:build unit
// +build unit

package v1

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/health"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealthHandler_Health_Success(t *testing.T) {
	mockDoctorService := new(MockDoctorService)

	handler := NewHealthHandler(mockDoctorService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Health(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
	mockDoctorService.AssertNotCalled(t, "Run", mock.Anything)
}

func TestHealthHandler_DeepHealth_AllHealthy(t *testing.T) {
	mockDoctorService := new(MockDoctorService)

	handler := NewHealthHandler(mockDoctorService)

	checkup := &health.CheckupResult{
		Probes: []health.ProbeResult{
			{Name: health.ProbeCloudflare, OK: true, LatencyMs: 12},
			{Name: health.ProbePostgres, OK: true, LatencyMs: 3},
			{Name: health.ProbeSendGrid, OK: true, LatencyMs: 40},
		},
	}

	mockDoctorService.On("Run", mock.Anything).Return(checkup, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health/deep", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.DeepHealth(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy":true`)
	assert.Contains(t, w.Body.String(), health.ProbePostgres)
	mockDoctorService.AssertExpectations(t)
}

func TestHealthHandler_DeepHealth_FailingProbe(t *testing.T) {
	mockDoctorService := new(MockDoctorService)

	handler := NewHealthHandler(mockDoctorService)

	checkup := &health.CheckupResult{
		Probes: []health.ProbeResult{
			{Name: health.ProbePostgres, OK: true, LatencyMs: 3},
			{Name: health.ProbeSendGrid, OK: false, LatencyMs: 1500, Error: "api key rejected"},
		},
	}

	mockDoctorService.On("Run", mock.Anything).Return(checkup, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health/deep", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.DeepHealth(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy":false`)
	assert.Contains(t, w.Body.String(), "api key rejected")
	mockDoctorService.AssertExpectations(t)
}

func TestHealthHandler_DeepHealth_DoctorError(t *testing.T) {
	mockDoctorService := new(MockDoctorService)

	handler := NewHealthHandler(mockDoctorService)

	mockDoctorService.On("Run", mock.Anything).Return(nil, errors.New("doctor needs at least one prober"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health/deep", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.DeepHealth(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "health checkup failed")
	mockDoctorService.AssertExpectations(t)
}
