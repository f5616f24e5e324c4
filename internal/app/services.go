package app

import (
	"gorm.io/gorm"

	"github.com/platewise/recipe-backend/internal/logger"
	"github.com/platewise/recipe-backend/internal/search"
	"github.com/platewise/recipe-backend/internal/services"
)

type Services struct {
	Recipe       services.RecipeService
	RecipeSearch search.RecipeSearchRepo
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	searchRepo, err := search.NewRecipeSearchRepo(log)
	if err != nil {
		return Services{}, err
	}

	recipeService := services.NewRecipeService(
		db,
		log,
		reposet.Recipe,
		reposet.Ingredient,
		reposet.Instruction,
		searchRepo,
		nil,
	)

	return Services{
		Recipe:       recipeService,
		RecipeSearch: searchRepo,
	}, nil
}
