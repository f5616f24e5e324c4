package types

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/platewise/recipe-backend/internal/apperrors"
)

const NameColumnLength = 256

// Recipe is the aggregate root. Ingredients and Instructions are owned by
// the recipe but persisted as independent rows related through bridge
// tables; the bridge rows never surface as domain objects.
type Recipe struct {
	RecipeID             int64          `gorm:"column:recipe_id;primaryKey;autoIncrement" json:"recipeId"`
	Name                 string         `gorm:"column:name;size:256;not null" json:"name"`
	Variation            int            `gorm:"column:variation;not null" json:"variation"`
	Description          string         `gorm:"column:description;not null" json:"description"`
	CreationDateTime     time.Time      `gorm:"column:creation_date_time;not null" json:"creationDateTime"`
	LastModifiedDateTime time.Time      `gorm:"column:last_modified_date_time;not null" json:"lastModifiedDateTime"`
	Ingredients          []*Ingredient  `gorm:"-" json:"ingredients"`
	Instructions         []*Instruction `gorm:"-" json:"instructions"`
}

func (Recipe) TableName() string { return "recipes" }

// Validate checks the aggregate invariants before any write touches the
// store.
func (r *Recipe) Validate() error {
	if r == nil {
		return fmt.Errorf("recipe is nil: %w", apperrors.ErrInvalidArgument)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("recipe name must not be blank: %w", apperrors.ErrInvalidArgument)
	}
	if utf8.RuneCountInString(r.Name) > NameColumnLength {
		return fmt.Errorf("recipe name exceeds %d characters: %w", NameColumnLength, apperrors.ErrInvalidArgument)
	}
	for i, ing := range r.Ingredients {
		if ing == nil {
			return fmt.Errorf("ingredient %d is nil: %w", i, apperrors.ErrInvalidArgument)
		}
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	for i, ins := range r.Instructions {
		if ins == nil {
			return fmt.Errorf("instruction %d is nil: %w", i, apperrors.ErrInvalidArgument)
		}
		if err := ins.Validate(); err != nil {
			return err
		}
	}
	return nil
}
