package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/platewise/recipe-backend/internal/logger"
	"github.com/platewise/recipe-backend/internal/types"
)

const (
	instructionsByRecipeQuery = `
		SELECT i.instruction_id, i.instruction_number, i.instruction
		FROM recipes_instructions ri
		JOIN instructions i ON i.instruction_id = ri.instructions_instruction_id
		WHERE ri.recipe_recipe_id = ?
		ORDER BY i.instruction_number`

	instructionIDsByRecipeQuery = `
		SELECT i.instruction_id
		FROM recipes_instructions ri
		JOIN instructions i ON i.instruction_id = ri.instructions_instruction_id
		WHERE ri.recipe_recipe_id = ?`

	insertRecipeInstruction = `
		INSERT INTO recipes_instructions (recipe_recipe_id, instructions_instruction_id) VALUES (?, ?)`

	deleteBridgeByInstructionIDs = `
		DELETE FROM recipes_instructions WHERE instructions_instruction_id IN ?`

	deleteInstructionBridgeByRecipeID = `
		DELETE FROM recipes_instructions WHERE recipe_recipe_id = ?`
)

type InstructionRepo interface {
	CreateAll(ctx context.Context, tx *gorm.DB, instructions []*types.Instruction) ([]*types.Instruction, error)
	UpdateAll(ctx context.Context, tx *gorm.DB, instructions []*types.Instruction) ([]int64, error)
	DeleteAllByIDs(ctx context.Context, tx *gorm.DB, instructionIDs []int64) ([]int64, error)
	GetByRecipeID(ctx context.Context, tx *gorm.DB, recipeID int64) ([]*types.Instruction, error)
	GetIDsByRecipeID(ctx context.Context, tx *gorm.DB, recipeID int64) ([]int64, error)
	LinkToRecipe(ctx context.Context, tx *gorm.DB, recipeID int64, instructionIDs []int64) error
	UnlinkByIDs(ctx context.Context, tx *gorm.DB, instructionIDs []int64) error
	UnlinkAllByRecipeID(ctx context.Context, tx *gorm.DB, recipeID int64) error
}

type instructionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInstructionRepo(db *gorm.DB, baseLog *logger.Logger) InstructionRepo {
	repoLog := baseLog.With("repo", "InstructionRepo")
	return &instructionRepo{db: db, log: repoLog}
}

func (r *instructionRepo) CreateAll(ctx context.Context, tx *gorm.DB, instructions []*types.Instruction) ([]*types.Instruction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(instructions) == 0 {
		return []*types.Instruction{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&instructions).Error; err != nil {
		return nil, err
	}
	return instructions, nil
}

func (r *instructionRepo) UpdateAll(ctx context.Context, tx *gorm.DB, instructions []*types.Instruction) ([]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	affected := make([]int64, 0, len(instructions))
	for _, ins := range instructions {
		if err := transaction.WithContext(ctx).
			Model(&types.Instruction{}).
			Where("instruction_id = ?", ins.InstructionID).
			Updates(map[string]interface{}{
				"instruction_number": ins.InstructionNumber,
				"instruction":        ins.Instruction,
			}).Error; err != nil {
			return nil, err
		}
		affected = append(affected, ins.InstructionID)
	}
	return affected, nil
}

func (r *instructionRepo) DeleteAllByIDs(ctx context.Context, tx *gorm.DB, instructionIDs []int64) ([]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(instructionIDs) == 0 {
		return []int64{}, nil
	}

	if err := transaction.WithContext(ctx).
		Where("instruction_id IN ?", instructionIDs).
		Delete(&types.Instruction{}).Error; err != nil {
		return nil, err
	}
	return instructionIDs, nil
}

func (r *instructionRepo) GetByRecipeID(ctx context.Context, tx *gorm.DB, recipeID int64) ([]*types.Instruction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Instruction
	if err := transaction.WithContext(ctx).
		Raw(instructionsByRecipeQuery, recipeID).
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *instructionRepo) GetIDsByRecipeID(ctx context.Context, tx *gorm.DB, recipeID int64) ([]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []int64
	if err := transaction.WithContext(ctx).
		Raw(instructionIDsByRecipeQuery, recipeID).
		Scan(&ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *instructionRepo) LinkToRecipe(ctx context.Context, tx *gorm.DB, recipeID int64, instructionIDs []int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	for _, id := range instructionIDs {
		if err := transaction.WithContext(ctx).
			Exec(insertRecipeInstruction, recipeID, id).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *instructionRepo) UnlinkByIDs(ctx context.Context, tx *gorm.DB, instructionIDs []int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(instructionIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Exec(deleteBridgeByInstructionIDs, instructionIDs).Error
}

func (r *instructionRepo) UnlinkAllByRecipeID(ctx context.Context, tx *gorm.DB, recipeID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Exec(deleteInstructionBridgeByRecipeID, recipeID).Error
}
