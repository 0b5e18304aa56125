package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/accounts"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/health"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/config"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
)

// httpDoer abstracts the HTTP client so tests can inject a fake without a
// live platform project.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// BaaSAdminConnector talks to the managed platform's auth admin API. Every
// call carries the service role key, which bypasses row level security, so
// this connector must only ever run server-side.
type BaaSAdminConnector struct {
	settings *config.BaaSSettings
	client   httpDoer
	cb       *gobreaker.CircuitBreaker
	logger   logger.Logger
}

// NewBaaSAdminConnector creates a connector for the platform's auth admin
// API. The circuit breaker wraps health probes only; admin mutations are
// operator-driven and fail straight back to the caller.
func NewBaaSAdminConnector(settings *config.BaaSSettings, cb *gobreaker.CircuitBreaker, logger logger.Logger) (*BaaSAdminConnector, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &BaaSAdminConnector{
		settings: settings,
		client:   &http.Client{Timeout: 15 * time.Second},
		cb:       cb,
		logger:   logger,
	}, nil
}

// adminUserResponse mirrors the fragments of the auth admin user object the
// connector reads.
type adminUserResponse struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	EmailConfirmedAt string         `json:"email_confirmed_at"`
	AppMetadata      map[string]any `json:"app_metadata"`
}

func (u *adminUserResponse) toDomain() *accounts.AdminUser {
	user := &accounts.AdminUser{
		ID:        u.ID,
		Email:     u.Email,
		Confirmed: u.EmailConfirmedAt != "",
	}
	if role, ok := u.AppMetadata["role"].(string); ok {
		user.Role = role
	}
	return user
}

// CreateUser creates a confirmed auth user with the platform role stored in
// app_metadata, which is where the row level security policies read it from.
func (c *BaaSAdminConnector) CreateUser(ctx context.Context, email, password, role string) (*accounts.AdminUser, error) {
	payload := map[string]any{
		"email":         email,
		"password":      password,
		"email_confirm": true,
		"app_metadata":  map[string]any{"role": role},
	}

	var user adminUserResponse
	if err := c.do(ctx, http.MethodPost, "/auth/v1/admin/users", payload, &user); err != nil {
		return nil, fmt.Errorf("failed to create auth user: %w", err)
	}

	c.logger.Info("Created auth user with id ", user.ID)
	return user.toDomain(), nil
}

// UpdateUserPassword sets a new password for the auth user with the given id.
func (c *BaaSAdminConnector) UpdateUserPassword(ctx context.Context, userID, password string) error {
	payload := map[string]any{"password": password}

	path := fmt.Sprintf("/auth/v1/admin/users/%s", userID)
	if err := c.do(ctx, http.MethodPut, path, payload, nil); err != nil {
		return fmt.Errorf("failed to update auth user password: %w", err)
	}

	c.logger.Info("Updated auth password for user ", userID)
	return nil
}

// Probe checks the auth service health endpoint. Persistent failures trip the
// breaker after three consecutive errors.
func (c *BaaSAdminConnector) Probe(ctx context.Context) health.ProbeResult {
	start := time.Now()

	_, err := c.cb.Execute(func() (any, error) {
		if err := c.do(ctx, http.MethodGet, "/auth/v1/health", nil, nil); err != nil {
			return nil, err
		}
		return nil, nil
	})

	latency := time.Since(start).Milliseconds()

	if err != nil {
		errMsg := err.Error()
		if errors.Is(err, gobreaker.ErrOpenState) {
			errMsg = "circuit open"
		}
		return health.ProbeResult{
			Name:      health.ProbeBaaSAuth,
			OK:        false,
			LatencyMs: latency,
			Error:     errMsg,
		}
	}

	return health.ProbeResult{
		Name:      health.ProbeBaaSAuth,
		OK:        true,
		LatencyMs: latency,
	}
}

// do sends one authenticated request and decodes the JSON response into out
// when out is non-nil.
func (c *BaaSAdminConnector) do(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.settings.BaseURL()+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", c.settings.ServiceRoleKey)
	req.Header.Set("Authorization", "Bearer "+c.settings.ServiceRoleKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("auth admin API returned %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// readErrorBody extracts a short error description from a failed response.
func readErrorBody(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil || len(raw) == 0 {
		return "no error body"
	}

	var parsed struct {
		Message     string `json:"message"`
		Msg         string `json:"msg"`
		Description string `json:"error_description"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		switch {
		case parsed.Message != "":
			return parsed.Message
		case parsed.Msg != "":
			return parsed.Msg
		case parsed.Description != "":
			return parsed.Description
		}
	}
	return string(raw)
}
