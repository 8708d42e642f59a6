package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "recipekit/docs"
	"recipekit/internal/handler"
	"recipekit/internal/logger"
	"recipekit/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Recipe     *handler.RecipeHandler
	Ingredient *handler.IngredientHandler
	History    *handler.HistoryHandler
	Health     *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, corsOrigins []string, log *logger.Logger) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	recipes := v1.Group("/recipes")
	recipes.POST("/import", h.Recipe.Import)
	recipes.POST("/import/stream", h.Recipe.ImportStream)
	recipes.POST("/scale", h.Recipe.Scale)
	recipes.POST("/export", h.Recipe.Export)
	recipes.GET("/extraction-instructions", h.Recipe.ExtractionInstructions)

	v1.POST("/ingredients/parse", h.Ingredient.Parse)
	v1.GET("/imports", h.History.ListImports)

	return r
}
