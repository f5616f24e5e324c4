package services

import (
	"reflect"
	"testing"

	"github.com/platewise/recipe-backend/internal/types"
)

func namedIngredient(id int64, name string) *types.Ingredient {
	return &types.Ingredient{
		IngredientID:      id,
		QuantitySpecifier: types.Count,
		Quantity:          1,
		Ingredient:        name,
	}
}

func TestPartitionChildrenSplitsAddUpdateAbandon(t *testing.T) {
	existing := []*types.Ingredient{
		namedIngredient(1, "salt"),
		namedIngredient(2, "pepper"),
		namedIngredient(3, "oil"),
	}
	incoming := []*types.Ingredient{
		namedIngredient(2, "pepper"),
		namedIngredient(3, "olive oil"),
		namedIngredient(0, "garlic"),
	}

	diff := partitionChildren(existing, incoming, ingredientID)

	if want := []int64{1}; !reflect.DeepEqual(diff.abandonedIDs, want) {
		t.Fatalf("abandoned ids: want=%v got=%v", want, diff.abandonedIDs)
	}
	if len(diff.toUpdate) != 2 {
		t.Fatalf("toUpdate length: want=2 got=%d", len(diff.toUpdate))
	}
	if diff.toUpdate[0].IngredientID != 2 || diff.toUpdate[1].IngredientID != 3 {
		t.Fatalf("toUpdate ids: want=[2,3] got=[%d,%d]", diff.toUpdate[0].IngredientID, diff.toUpdate[1].IngredientID)
	}
	if len(diff.toAdd) != 1 {
		t.Fatalf("toAdd length: want=1 got=%d", len(diff.toAdd))
	}
	if diff.toAdd[0].Ingredient != "garlic" {
		t.Fatalf("toAdd ingredient: want=%q got=%q", "garlic", diff.toAdd[0].Ingredient)
	}
}

func TestPartitionChildrenUnknownIDIsAdded(t *testing.T) {
	existing := []*types.Ingredient{namedIngredient(1, "salt")}
	// Id 99 was never persisted for this recipe; it is treated as new.
	incoming := []*types.Ingredient{namedIngredient(99, "flour")}

	diff := partitionChildren(existing, incoming, ingredientID)

	if want := []int64{1}; !reflect.DeepEqual(diff.abandonedIDs, want) {
		t.Fatalf("abandoned ids: want=%v got=%v", want, diff.abandonedIDs)
	}
	if len(diff.toUpdate) != 0 {
		t.Fatalf("toUpdate length: want=0 got=%d", len(diff.toUpdate))
	}
	if len(diff.toAdd) != 1 || diff.toAdd[0].IngredientID != 99 {
		t.Fatalf("toAdd: want one entry with id 99, got %+v", diff.toAdd)
	}
}

func TestPartitionChildrenEmptyIncomingAbandonsAll(t *testing.T) {
	existing := []*types.Ingredient{
		namedIngredient(1, "salt"),
		namedIngredient(2, "pepper"),
	}

	diff := partitionChildren(existing, nil, ingredientID)

	if want := []int64{1, 2}; !reflect.DeepEqual(diff.abandonedIDs, want) {
		t.Fatalf("abandoned ids: want=%v got=%v", want, diff.abandonedIDs)
	}
	if len(diff.toUpdate) != 0 || len(diff.toAdd) != 0 {
		t.Fatalf("expected empty update/add sets, got update=%d add=%d", len(diff.toUpdate), len(diff.toAdd))
	}
}

func TestPartitionChildrenIsPure(t *testing.T) {
	existing := []*types.Ingredient{namedIngredient(1, "salt"), namedIngredient(2, "pepper")}
	incoming := []*types.Ingredient{namedIngredient(2, "pepper"), namedIngredient(0, "garlic")}

	first := partitionChildren(existing, incoming, ingredientID)
	second := partitionChildren(existing, incoming, ingredientID)

	if !reflect.DeepEqual(first.abandonedIDs, second.abandonedIDs) {
		t.Fatalf("abandoned ids differ between runs: %v vs %v", first.abandonedIDs, second.abandonedIDs)
	}
	if !reflect.DeepEqual(first.toUpdate, second.toUpdate) || !reflect.DeepEqual(first.toAdd, second.toAdd) {
		t.Fatalf("partitions differ between identical runs")
	}
}

func TestRenumberAssignsContiguousPositions(t *testing.T) {
	recipe := &types.Recipe{
		Ingredients: []*types.Ingredient{
			{IngredientNumber: 7, Ingredient: "salt", QuantitySpecifier: types.Count, Quantity: 1},
			{IngredientNumber: 7, Ingredient: "pepper", QuantitySpecifier: types.Count, Quantity: 1},
			{IngredientNumber: -2, Ingredient: "oil", QuantitySpecifier: types.Count, Quantity: 1},
		},
		Instructions: []*types.Instruction{
			{InstructionNumber: 42, Instruction: "chop"},
			{InstructionNumber: 0, Instruction: "fry"},
		},
	}

	renumberChildren(recipe)

	for i, ing := range recipe.Ingredients {
		if ing.IngredientNumber != i+1 {
			t.Fatalf("ingredient %d number: want=%d got=%d", i, i+1, ing.IngredientNumber)
		}
	}
	for i, ins := range recipe.Instructions {
		if ins.InstructionNumber != i+1 {
			t.Fatalf("instruction %d number: want=%d got=%d", i, i+1, ins.InstructionNumber)
		}
	}
}
