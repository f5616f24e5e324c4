package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/platewise/recipe-backend/internal/logger"
	"github.com/platewise/recipe-backend/internal/types"
)

// The bridge table recipes_ingredients relates a recipe to its ingredient
// rows. It is a persistence detail: only this repo touches it, and no
// domain object ever represents a bridge row.
const (
	ingredientsByRecipeQuery = `
		SELECT i.ingredient_id, i.ingredient_number, i.ingredient, i.quantity_specifier, i.quantity
		FROM recipes_ingredients ri
		JOIN ingredients i ON i.ingredient_id = ri.ingredients_ingredient_id
		WHERE ri.recipe_recipe_id = ?
		ORDER BY i.ingredient_number`

	ingredientIDsByRecipeQuery = `
		SELECT i.ingredient_id
		FROM recipes_ingredients ri
		JOIN ingredients i ON i.ingredient_id = ri.ingredients_ingredient_id
		WHERE ri.recipe_recipe_id = ?`

	insertRecipeIngredient = `
		INSERT INTO recipes_ingredients (recipe_recipe_id, ingredients_ingredient_id) VALUES (?, ?)`

	deleteBridgeByIngredientIDs = `
		DELETE FROM recipes_ingredients WHERE ingredients_ingredient_id IN ?`

	deleteBridgeByRecipeID = `
		DELETE FROM recipes_ingredients WHERE recipe_recipe_id = ?`
)

type IngredientRepo interface {
	CreateAll(ctx context.Context, tx *gorm.DB, ingredients []*types.Ingredient) ([]*types.Ingredient, error)
	UpdateAll(ctx context.Context, tx *gorm.DB, ingredients []*types.Ingredient) ([]int64, error)
	DeleteAllByIDs(ctx context.Context, tx *gorm.DB, ingredientIDs []int64) ([]int64, error)
	GetByRecipeID(ctx context.Context, tx *gorm.DB, recipeID int64) ([]*types.Ingredient, error)
	GetIDsByRecipeID(ctx context.Context, tx *gorm.DB, recipeID int64) ([]int64, error)
	LinkToRecipe(ctx context.Context, tx *gorm.DB, recipeID int64, ingredientIDs []int64) error
	UnlinkByIDs(ctx context.Context, tx *gorm.DB, ingredientIDs []int64) error
	UnlinkAllByRecipeID(ctx context.Context, tx *gorm.DB, recipeID int64) error
}

type ingredientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) IngredientRepo {
	repoLog := baseLog.With("repo", "IngredientRepo")
	return &ingredientRepo{db: db, log: repoLog}
}

func (r *ingredientRepo) CreateAll(ctx context.Context, tx *gorm.DB, ingredients []*types.Ingredient) ([]*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ingredients) == 0 {
		return []*types.Ingredient{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepo) UpdateAll(ctx context.Context, tx *gorm.DB, ingredients []*types.Ingredient) ([]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	affected := make([]int64, 0, len(ingredients))
	for _, ing := range ingredients {
		if err := transaction.WithContext(ctx).
			Model(&types.Ingredient{}).
			Where("ingredient_id = ?", ing.IngredientID).
			Updates(map[string]interface{}{
				"ingredient_number":  ing.IngredientNumber,
				"quantity_specifier": ing.QuantitySpecifier,
				"quantity":           ing.Quantity,
				"ingredient":         ing.Ingredient,
			}).Error; err != nil {
			return nil, err
		}
		affected = append(affected, ing.IngredientID)
	}
	return affected, nil
}

func (r *ingredientRepo) DeleteAllByIDs(ctx context.Context, tx *gorm.DB, ingredientIDs []int64) ([]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ingredientIDs) == 0 {
		return []int64{}, nil
	}

	if err := transaction.WithContext(ctx).
		Where("ingredient_id IN ?", ingredientIDs).
		Delete(&types.Ingredient{}).Error; err != nil {
		return nil, err
	}
	return ingredientIDs, nil
}

func (r *ingredientRepo) GetByRecipeID(ctx context.Context, tx *gorm.DB, recipeID int64) ([]*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Ingredient
	if err := transaction.WithContext(ctx).
		Raw(ingredientsByRecipeQuery, recipeID).
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ingredientRepo) GetIDsByRecipeID(ctx context.Context, tx *gorm.DB, recipeID int64) ([]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []int64
	if err := transaction.WithContext(ctx).
		Raw(ingredientIDsByRecipeQuery, recipeID).
		Scan(&ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *ingredientRepo) LinkToRecipe(ctx context.Context, tx *gorm.DB, recipeID int64, ingredientIDs []int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	for _, id := range ingredientIDs {
		if err := transaction.WithContext(ctx).
			Exec(insertRecipeIngredient, recipeID, id).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *ingredientRepo) UnlinkByIDs(ctx context.Context, tx *gorm.DB, ingredientIDs []int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ingredientIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Exec(deleteBridgeByIngredientIDs, ingredientIDs).Error
}

func (r *ingredientRepo) UnlinkAllByRecipeID(ctx context.Context, tx *gorm.DB, recipeID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Exec(deleteBridgeByRecipeID, recipeID).Error
}
