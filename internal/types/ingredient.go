package types

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/platewise/recipe-backend/internal/apperrors"
)

const IngredientColumnLength = 256

// Ingredient rows have no independent lifecycle; they are written and read
// only through their owning recipe. A zero IngredientID marks a
// not-yet-persisted instance.
type Ingredient struct {
	IngredientID      int64             `gorm:"column:ingredient_id;primaryKey;autoIncrement" json:"ingredientId"`
	IngredientNumber  int               `gorm:"column:ingredient_number;not null" json:"ingredientNumber"`
	QuantitySpecifier QuantitySpecifier `gorm:"column:quantity_specifier;not null" json:"quantitySpecifier"`
	Quantity          float64           `gorm:"column:quantity;not null" json:"quantity"`
	Ingredient        string            `gorm:"column:ingredient;size:256;not null" json:"ingredient"`
}

func (Ingredient) TableName() string { return "ingredients" }

func (i *Ingredient) Validate() error {
	if !i.QuantitySpecifier.Valid() {
		return fmt.Errorf("unknown quantity specifier %q: %w", i.QuantitySpecifier, apperrors.ErrInvalidArgument)
	}
	if strings.TrimSpace(i.Ingredient) == "" {
		return fmt.Errorf("ingredient text must not be blank: %w", apperrors.ErrInvalidArgument)
	}
	if utf8.RuneCountInString(i.Ingredient) > IngredientColumnLength {
		return fmt.Errorf("ingredient text exceeds %d characters: %w", IngredientColumnLength, apperrors.ErrInvalidArgument)
	}
	return nil
}
