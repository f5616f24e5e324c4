package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/platewise/recipe-backend/internal/handlers"
	"github.com/platewise/recipe-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName          string
	AllowedOrigins       []string
	RecipeHandler        *handlers.RecipeHandler
	RequestLogMiddleware *middleware.RequestLogMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	if cfg.RequestLogMiddleware != nil {
		router.Use(cfg.RequestLogMiddleware.Handler())
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	recipes := router.Group("/recipes")
	{
		recipes.GET("/list", cfg.RecipeHandler.ListRecipes)
		recipes.GET("/get/:id", cfg.RecipeHandler.GetRecipe)
		recipes.PUT("/add", cfg.RecipeHandler.AddRecipe)
		recipes.PATCH("/update", cfg.RecipeHandler.UpdateRecipe)
		recipes.DELETE("/delete/:id", cfg.RecipeHandler.DeleteRecipe)
		recipes.GET("/search", cfg.RecipeHandler.SearchRecipes)
	}

	return router
}
