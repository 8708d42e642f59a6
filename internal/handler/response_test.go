package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipekit/internal/domain"
	"recipekit/internal/handler"
	"recipekit/internal/scaling"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"cancelled", errors.Wrap(domain.ErrCancelled, "parsing"), handler.StatusClientClosedRequest, "CANCELLED"},
		{"context cancelled", context.Canceled, handler.StatusClientClosedRequest, "CANCELLED"},
		{"too large", domain.ErrInputTooLarge, http.StatusRequestEntityTooLarge, "INPUT_TOO_LARGE"},
		{"yield", scaling.ValidateYield(0.1, 4), http.StatusBadRequest, "INVALID_YIELD"},
		{"invalid request", errors.Wrap(domain.ErrInvalidRequest, "recipe is required"), http.StatusBadRequest, "INVALID_REQUEST"},
		{"reused orchestrator", domain.ErrOrchestratorUsed, http.StatusConflict, "IMPORT_STATE_CONFLICT"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestHealth_DatabaseDisabled(t *testing.T) {
	h := handler.NewHealthHandler(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	h.Readiness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"disabled"`)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	h.Liveness(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealth_Readiness(t *testing.T) {
	raw, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer raw.Close()
	h := handler.NewHealthHandler(sqlx.NewDb(raw, "pgx"))

	mock.ExpectPing()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	h.Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	mock.ExpectPing().WillReturnError(errors.New("down"))
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	h.Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
