package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/invento-api/internal/domain"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", domain.NewValidationError("team_name", "Team name is required"), http.StatusBadRequest},
		{"duplicate team", domain.ErrDuplicateTeamName, http.StatusBadRequest},
		{"duplicate member", domain.ErrDuplicateMember, http.StatusBadRequest},
		{"duplicate admin", domain.ErrDuplicateAdmin, http.StatusBadRequest},
		{"weak password", domain.ErrWeakPassword, http.StatusBadRequest},
		{"not found wrapped", fmt.Errorf("load: %w", domain.ErrTeamNotFound), http.StatusNotFound},
		{"admin not found", domain.ErrAdminNotFound, http.StatusNotFound},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"deactivated", domain.ErrAccountDeactivated, http.StatusUnauthorized},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized},
		{"locked out", domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError},
	}

	errs := NewErrorResponder(nil, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			errs.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.status, rec.Code)

			var resp Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestHandleErrorDetailOnlyInDevelopment(t *testing.T) {
	internal := errors.New("pq: relation missing")

	production := NewErrorResponder(nil, false)
	development := NewErrorResponder(nil, true)

	rec := httptest.NewRecorder()
	production.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), internal)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "relation missing")

	rec = httptest.NewRecorder()
	development.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), internal)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pq: relation missing", resp.Error)

	// Responders are independent of each other
	rec = httptest.NewRecorder()
	production.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), internal)
	assert.NotContains(t, rec.Body.String(), "relation missing")
}

func TestHandleErrorLogsToResponderLogger(t *testing.T) {
	var buf bytes.Buffer
	errs := NewErrorResponder(slog.New(slog.NewJSONHandler(&buf, nil)), false)

	rec := httptest.NewRecorder()
	errs.HandleError(rec, httptest.NewRequest(http.MethodDelete, "/api/teams/x", nil), errors.New("disk full"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "disk full")
	assert.Contains(t, buf.String(), "/api/teams/x")
}

func TestNilErrorResponderHidesDetails(t *testing.T) {
	var errs *ErrorResponder

	rec := httptest.NewRecorder()
	errs.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("secret detail"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret detail")
}
