package mapping

import (
	"github.com/platewise/recipe-backend/internal/documents"
	"github.com/platewise/recipe-backend/internal/types"
)

// ToDoc converts a reconciled recipe into its index document.
func ToDoc(r *types.Recipe) documents.RecipeDoc {
	doc := documents.RecipeDoc{
		ID:                   r.RecipeID,
		Name:                 r.Name,
		Variation:            r.Variation,
		Description:          r.Description,
		CreationDateTime:     r.CreationDateTime,
		LastModifiedDateTime: r.LastModifiedDateTime,
		Ingredients:          make([]documents.IngredientDoc, 0, len(r.Ingredients)),
		Instructions:         make([]documents.InstructionDoc, 0, len(r.Instructions)),
	}
	for _, ing := range r.Ingredients {
		doc.Ingredients = append(doc.Ingredients, documents.IngredientDoc{
			IngredientID:      ing.IngredientID,
			IngredientNumber:  ing.IngredientNumber,
			QuantitySpecifier: ing.QuantitySpecifier,
			Quantity:          ing.Quantity,
			Ingredient:        ing.Ingredient,
		})
	}
	for _, ins := range r.Instructions {
		doc.Instructions = append(doc.Instructions, documents.InstructionDoc{
			InstructionID:     ins.InstructionID,
			InstructionNumber: ins.InstructionNumber,
			Instruction:       ins.Instruction,
		})
	}
	return doc
}

// FromDoc converts an index document back into an aggregate value.
func FromDoc(doc documents.RecipeDoc) *types.Recipe {
	r := &types.Recipe{
		RecipeID:             doc.ID,
		Name:                 doc.Name,
		Variation:            doc.Variation,
		Description:          doc.Description,
		CreationDateTime:     doc.CreationDateTime,
		LastModifiedDateTime: doc.LastModifiedDateTime,
		Ingredients:          make([]*types.Ingredient, 0, len(doc.Ingredients)),
		Instructions:         make([]*types.Instruction, 0, len(doc.Instructions)),
	}
	for _, ing := range doc.Ingredients {
		r.Ingredients = append(r.Ingredients, &types.Ingredient{
			IngredientID:      ing.IngredientID,
			IngredientNumber:  ing.IngredientNumber,
			QuantitySpecifier: ing.QuantitySpecifier,
			Quantity:          ing.Quantity,
			Ingredient:        ing.Ingredient,
		})
	}
	for _, ins := range doc.Instructions {
		r.Instructions = append(r.Instructions, &types.Instruction{
			InstructionID:     ins.InstructionID,
			InstructionNumber: ins.InstructionNumber,
			Instruction:       ins.Instruction,
		})
	}
	return r
}
