package app

import (
	"github.com/platewise/recipe-backend/internal/handlers"
	"github.com/platewise/recipe-backend/internal/logger"
)

type Handlers struct {
	Recipe *handlers.RecipeHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Recipe: handlers.NewRecipeHandler(log, serviceset.Recipe),
	}
}
