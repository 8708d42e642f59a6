package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipekit/internal/importer"
)

// IngredientHandler handles standalone ingredient parsing.
type IngredientHandler struct {
	importService importer.Service
}

// NewIngredientHandler creates a new IngredientHandler.
func NewIngredientHandler(importService importer.Service) *IngredientHandler {
	return &IngredientHandler{importService: importService}
}

// Parse handles POST /api/v1/ingredients/parse
// @Summary      Parse ingredient lines
// @Description  Decomposes lines with the configured provider chain; lines it cannot handle use the fallback parser.
// @Tags         ingredients
// @Accept       json
// @Produce      json
// @Param        body body ParseIngredientsRequest true "Ingredient lines"
// @Success      200 {object} APIResponse{data=ParseIngredientsResponse}
// @Failure      400 {object} APIResponse
// @Router       /ingredients/parse [post]
func (h *IngredientHandler) Parse(c *gin.Context) {
	var req ParseIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body: "+err.Error())
		return
	}

	out, err := h.importService.ParseIngredients(c.Request.Context(), req.Lines)
	if err != nil {
		HandleError(c, err)
		return
	}
	failed := out.Failed
	if failed == nil {
		failed = []string{}
	}
	RespondOK(c, ParseIngredientsResponse{
		Ingredients:    out.Ingredients,
		Failed:         failed,
		DecomposerUsed: out.DecomposerUsed,
		DurationMs:     out.Duration.Milliseconds(),
	})
}
