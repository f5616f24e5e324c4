package app

import (
	"github.com/gin-gonic/gin"

	"github.com/platewise/recipe-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:          cfg.ServiceName,
		AllowedOrigins:       cfg.AllowedOrigins,
		RecipeHandler:        handlerset.Recipe,
		RequestLogMiddleware: middlewareset.RequestLog,
	})
}
