package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"recipekit/internal/config"
	"recipekit/internal/domain"
	"recipekit/internal/handler"
	"recipekit/internal/router"
	"recipekit/mocks"
)

func newEngine() (*gin.Engine, *mocks.MockImportService) {
	gin.SetMode(gin.TestMode)
	svc := new(mocks.MockImportService)
	r := router.Setup(router.Handlers{
		Recipe:     handler.NewRecipeHandler(svc, config.DefaultImportConfig()),
		Ingredient: handler.NewIngredientHandler(svc),
		History:    handler.NewHistoryHandler(svc),
		Health:     handler.NewHealthHandler(nil),
	}, []string{"http://localhost:3000"}, nil)
	return r, svc
}

func TestSetup_Routes(t *testing.T) {
	r, svc := newEngine()
	svc.On("ListHistory", mock.Anything, 0).Return([]domain.ImportLogEntry{}, nil)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/readyz", http.StatusOK},
		{http.MethodGet, "/swagger/doc.json", http.StatusOK},
		{http.MethodGet, "/api/v1/imports", http.StatusOK},
		{http.MethodGet, "/api/v1/recipes/extraction-instructions", http.StatusOK},
		{http.MethodGet, "/api/v1/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, http.NoBody))
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestSetup_SwaggerDocDescribesImport(t *testing.T) {
	r, _ := newEngine()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", http.NoBody))
	assert.Contains(t, w.Body.String(), "/recipes/import")
	assert.Contains(t, w.Body.String(), "RecipeKit API")
}

func TestSetup_Preflight(t *testing.T) {
	r, _ := newEngine()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recipes/import", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
