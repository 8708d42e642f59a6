package handler

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"recipekit/internal/config"
	"recipekit/internal/domain"
	"recipekit/internal/export"
	"recipekit/internal/importer"
	"recipekit/internal/jsonld"
	"recipekit/internal/scaling"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// JSON escaping can double the size of the pasted text.
	bodyOverhead = 64 << 10
)

// RecipeHandler handles recipe import, scaling and export endpoints.
type RecipeHandler struct {
	importService importer.Service
	cfg           config.ImportConfig
	now           func() time.Time
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(importService importer.Service, cfg config.ImportConfig) *RecipeHandler {
	return &RecipeHandler{importService: importService, cfg: cfg, now: time.Now}
}

// Import handles POST /api/v1/recipes/import
// @Summary      Import a pasted recipe
// @Description  Runs the import pipeline on pasted JSON-LD. Failed imports return 422 with the full result.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        body body ImportRequest true "Pasted text"
// @Success      200 {object} APIResponse{data=domain.ImportResult}
// @Failure      400 {object} APIResponse
// @Failure      413 {object} APIResponse
// @Failure      422 {object} APIResponse{data=domain.ImportResult}
// @Router       /recipes/import [post]
func (h *RecipeHandler) Import(c *gin.Context) {
	input, ok := h.bindImport(c)
	if !ok {
		return
	}

	result, err := h.importService.Import(c.Request.Context(), input, nil)
	if err != nil {
		HandleError(c, err)
		return
	}
	respondImport(c, result)
}

// ImportStream handles POST /api/v1/recipes/import/stream
// @Summary      Import a pasted recipe with progress events
// @Description  Same as import, streamed as server-sent events: "progress" per ingredient batch, then "result" or "error".
// @Tags         recipes
// @Accept       json
// @Produce      text/event-stream
// @Param        body body ImportRequest true "Pasted text"
// @Success      200 {object} domain.BatchProgress
// @Router       /recipes/import/stream [post]
func (h *RecipeHandler) ImportStream(c *gin.Context) {
	input, ok := h.bindImport(c)
	if !ok {
		return
	}
	streamImport(c, h.importService, input)
}

func (h *RecipeHandler) bindImport(c *gin.Context) (domain.RawImportInput, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(h.cfg.MaxInputBytes)*2+bodyOverhead)

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			HandleError(c, domain.ErrInputTooLarge)
			return domain.RawImportInput{}, false
		}
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body: "+err.Error())
		return domain.RawImportInput{}, false
	}
	return domain.RawImportInput{Text: req.Text, SourceURL: strings.TrimSpace(req.SourceURL)}, true
}

func respondImport(c *gin.Context, result *domain.ImportResult) {
	if result.Success {
		RespondOK(c, result)
		return
	}
	msg := "import failed"
	if len(result.Errors) > 0 {
		msg = result.Errors[0].Message
	}
	c.JSON(http.StatusUnprocessableEntity, APIResponse{
		Success: false,
		Data:    result,
		Error:   &APIError{Code: "IMPORT_FAILED", Message: msg},
	})
}

// Scale handles POST /api/v1/recipes/scale
// @Summary      Scale a recipe
// @Description  Scales ingredients and instruction mentions to a target yield between 0.5x and 10x of the original.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        body body ScaleRequest true "Recipe and target yield"
// @Success      200 {object} APIResponse{data=scaling.ScaledRecipe}
// @Failure      400 {object} APIResponse{error=APIError{details=scaling.YieldError}}
// @Router       /recipes/scale [post]
func (h *RecipeHandler) Scale(c *gin.Context) {
	scaled, ok := h.scale(c)
	if !ok {
		return
	}
	RespondOK(c, scaled)
}

// Export handles POST /api/v1/recipes/export
// @Summary      Export a shopping list
// @Description  Scales the recipe and renders its ingredients as CSV or XLSX.
// @Tags         recipes
// @Accept       json
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format query string false "csv or xlsx" default(csv)
// @Param        body body ScaleRequest true "Recipe and target yield"
// @Success      200 {file} file
// @Failure      400 {object} APIResponse
// @Router       /recipes/export [post]
func (h *RecipeHandler) Export(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'format': must be csv or xlsx")
		return
	}

	scaled, ok := h.scale(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	contentType := contentTypeCSV
	var err error
	if format == "xlsx" {
		contentType = contentTypeXLSX
		err = export.WriteXLSX(&buf, scaled.Name, scaled.Ingredients)
	} else {
		err = export.WriteCSV(&buf, scaled.Ingredients)
	}
	if err != nil {
		HandleError(c, errors.Wrap(err, "rendering export"))
		return
	}

	filename := export.BuildFilename(scaled.Name, format, h.now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *RecipeHandler) scale(c *gin.Context) (*scaling.ScaledRecipe, bool) {
	var req ScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body: "+err.Error())
		return nil, false
	}
	target := req.TargetYield
	if target == 0 {
		target = scaling.ParseYield(req.Recipe.RecipeYield)
	}
	scaled, err := scaling.ScaleRecipe(&req.Recipe, target, scaling.Options{
		ScaleToTaste:  req.ScaleToTaste,
		MaxReferences: h.cfg.MaxInstructionReferences,
	})
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	return scaled, true
}

// ExtractionInstructions handles GET /api/v1/recipes/extraction-instructions
// @Summary      JSON-LD extraction steps
// @Description  Returns browser-console steps for copying a page's embedded recipe data.
// @Tags         recipes
// @Produce      json
// @Param        source_url query string false "Recipe page URL"
// @Success      200 {object} APIResponse{data=ExtractionInstructionsResponse}
// @Router       /recipes/extraction-instructions [get]
func (h *RecipeHandler) ExtractionInstructions(c *gin.Context) {
	RespondOK(c, ExtractionInstructionsResponse{
		Instructions: jsonld.ExtractionInstructions(c.Query("source_url")),
	})
}
