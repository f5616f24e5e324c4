package types

import (
	"fmt"
	"strings"

	"github.com/platewise/recipe-backend/internal/apperrors"
)

// Instruction mirrors Ingredient: owned by a recipe, bridged by id, no
// independent lifecycle.
type Instruction struct {
	InstructionID     int64  `gorm:"column:instruction_id;primaryKey;autoIncrement" json:"instructionId"`
	InstructionNumber int    `gorm:"column:instruction_number;not null" json:"instructionNumber"`
	Instruction       string `gorm:"column:instruction;not null" json:"instruction"`
}

func (Instruction) TableName() string { return "instructions" }

func (i *Instruction) Validate() error {
	if strings.TrimSpace(i.Instruction) == "" {
		return fmt.Errorf("instruction text must not be blank: %w", apperrors.ErrInvalidArgument)
	}
	return nil
}
