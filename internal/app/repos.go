package app

import (
	"gorm.io/gorm"

	"github.com/platewise/recipe-backend/internal/logger"
	"github.com/platewise/recipe-backend/internal/repos"
)

type Repos struct {
	Recipe      repos.RecipeRepo
	Ingredient  repos.IngredientRepo
	Instruction repos.InstructionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Recipe:      repos.NewRecipeRepo(db, log),
		Ingredient:  repos.NewIngredientRepo(db, log),
		Instruction: repos.NewInstructionRepo(db, log),
	}
}
