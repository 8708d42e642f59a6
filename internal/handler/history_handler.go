package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recipekit/internal/importer"
)

// HistoryHandler lists recorded import attempts.
type HistoryHandler struct {
	importService importer.Service
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(importService importer.Service) *HistoryHandler {
	return &HistoryHandler{importService: importService}
}

// ListImports handles GET /api/v1/imports
// @Summary      Recent imports
// @Description  Lists the most recent import attempts, newest first. Empty when history is disabled.
// @Tags         imports
// @Produce      json
// @Param        limit query int false "Maximum entries (capped at 100)" default(20)
// @Success      200 {object} APIResponse{data=[]domain.ImportLogEntry,meta=ListMeta}
// @Failure      400 {object} APIResponse
// @Router       /imports [get]
func (h *HistoryHandler) ListImports(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 0 {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'limit': must be a non-negative integer")
			return
		}
		limit = n
	}

	entries, err := h.importService.ListHistory(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, entries, ListMeta{Count: len(entries), Limit: limit})
}
