package app

import (
	"github.com/platewise/recipe-backend/internal/logger"
	"github.com/platewise/recipe-backend/internal/middleware"
)

type Middleware struct {
	RequestLog *middleware.RequestLogMiddleware
}

func wireMiddleware(log *logger.Logger) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		RequestLog: middleware.NewRequestLogMiddleware(log),
	}
}
