// Package documents holds the search-index document shapes. They mirror the
// reconciled aggregate; the recipe id is the only identity the index needs.
package documents

import (
	"time"

	"github.com/platewise/recipe-backend/internal/types"
)

type RecipeDoc struct {
	ID                   int64            `json:"id"`
	Name                 string           `json:"name"`
	Variation            int              `json:"variation"`
	Description          string           `json:"description"`
	CreationDateTime     time.Time        `json:"creationDateTime"`
	LastModifiedDateTime time.Time        `json:"lastModifiedDateTime"`
	Ingredients          []IngredientDoc  `json:"ingredients"`
	Instructions         []InstructionDoc `json:"instructions"`
}

type IngredientDoc struct {
	IngredientID      int64                   `json:"ingredientId"`
	IngredientNumber  int                     `json:"ingredientNumber"`
	QuantitySpecifier types.QuantitySpecifier `json:"quantitySpecifier"`
	Quantity          float64                 `json:"quantity"`
	Ingredient        string                  `json:"ingredient"`
}

type InstructionDoc struct {
	InstructionID     int64  `json:"instructionId"`
	InstructionNumber int    `json:"instructionNumber"`
	Instruction       string `json:"instruction"`
}
