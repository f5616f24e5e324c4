package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/platewise/recipe-backend/internal/apperrors"
	"github.com/platewise/recipe-backend/internal/logger"
	"github.com/platewise/recipe-backend/internal/types"
)

type RecipeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) (*types.Recipe, error)
	Update(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) (int64, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, recipeID int64) (int64, error)
	GetByID(ctx context.Context, tx *gorm.DB, recipeID int64) (*types.Recipe, error)
	GetAll(ctx context.Context, tx *gorm.DB, startPage int64, pageSize int) ([]*types.Recipe, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
	GetAllByName(ctx context.Context, tx *gorm.DB, name string) ([]*types.Recipe, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, recipeID int64) (bool, error)
}

type recipeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	repoLog := baseLog.With("repo", "RecipeRepo")
	return &recipeRepo{db: db, log: repoLog}
}

func (r *recipeRepo) Create(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) (*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// Update writes the client-mutable parent columns. The variation and
// creation time columns are immutable after insert and never touched here.
func (r *recipeRepo) Update(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	result := transaction.WithContext(ctx).
		Model(&types.Recipe{}).
		Where("recipe_id = ?", recipe.RecipeID).
		Updates(map[string]interface{}{
			"name":                    recipe.Name,
			"description":             recipe.Description,
			"last_modified_date_time": recipe.LastModifiedDateTime,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, fmt.Errorf("recipe %d: %w", recipe.RecipeID, apperrors.ErrNotFound)
	}
	return recipe.RecipeID, nil
}

func (r *recipeRepo) DeleteByID(ctx context.Context, tx *gorm.DB, recipeID int64) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	result := transaction.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&types.Recipe{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, fmt.Errorf("recipe %d: %w", recipeID, apperrors.ErrNotFound)
	}
	return recipeID, nil
}

func (r *recipeRepo) GetByID(ctx context.Context, tx *gorm.DB, recipeID int64) (*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var recipe types.Recipe
	err := transaction.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipe %d: %w", recipeID, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &recipe, nil
}

// GetAll pages with 1-based page numbering. A zero or negative page or
// size disables pagination and returns everything.
func (r *recipeRepo) GetAll(ctx context.Context, tx *gorm.DB, startPage int64, pageSize int) ([]*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Order("recipe_id")
	if startPage > 0 && pageSize > 0 {
		query = query.Offset(int(startPage-1) * pageSize).Limit(pageSize)
	}

	var results []*types.Recipe
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *recipeRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).Model(&types.Recipe{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *recipeRepo) GetAllByName(ctx context.Context, tx *gorm.DB, name string) ([]*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Recipe
	if err := transaction.WithContext(ctx).
		Where("name = ?", name).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *recipeRepo) ExistsByID(ctx context.Context, tx *gorm.DB, recipeID int64) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Recipe{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
