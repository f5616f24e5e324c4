package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/platewise/recipe-backend/internal/apperrors"
	"github.com/platewise/recipe-backend/internal/documents"
	"github.com/platewise/recipe-backend/internal/logger"
	"github.com/platewise/recipe-backend/internal/types"
)

// In-memory stand-ins for the relational accessors and the search index.
// They record operation counts so tests can assert on write behavior.

type fakeRecipeRepo struct {
	recipes map[int64]*types.Recipe
	nextID  int64
	creates int
	updates int
	deletes int
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: map[int64]*types.Recipe{}}
}

func (f *fakeRecipeRepo) Create(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) (*types.Recipe, error) {
	f.nextID++
	recipe.RecipeID = f.nextID
	stored := *recipe
	stored.Ingredients = nil
	stored.Instructions = nil
	f.recipes[recipe.RecipeID] = &stored
	f.creates++
	return recipe, nil
}

func (f *fakeRecipeRepo) Update(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) (int64, error) {
	stored, ok := f.recipes[recipe.RecipeID]
	if !ok {
		return 0, fmt.Errorf("recipe %d: %w", recipe.RecipeID, apperrors.ErrNotFound)
	}
	stored.Name = recipe.Name
	stored.Description = recipe.Description
	stored.LastModifiedDateTime = recipe.LastModifiedDateTime
	f.updates++
	return recipe.RecipeID, nil
}

func (f *fakeRecipeRepo) DeleteByID(ctx context.Context, tx *gorm.DB, recipeID int64) (int64, error) {
	if _, ok := f.recipes[recipeID]; !ok {
		return 0, fmt.Errorf("recipe %d: %w", recipeID, apperrors.ErrNotFound)
	}
	delete(f.recipes, recipeID)
	f.deletes++
	return recipeID, nil
}

func (f *fakeRecipeRepo) GetByID(ctx context.Context, tx *gorm.DB, recipeID int64) (*types.Recipe, error) {
	stored, ok := f.recipes[recipeID]
	if !ok {
		return nil, fmt.Errorf("recipe %d: %w", recipeID, apperrors.ErrNotFound)
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeRecipeRepo) GetAll(ctx context.Context, tx *gorm.DB, startPage int64, pageSize int) ([]*types.Recipe, error) {
	ids := make([]int64, 0, len(f.recipes))
	for id := range f.recipes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	all := make([]*types.Recipe, 0, len(ids))
	for _, id := range ids {
		copied := *f.recipes[id]
		all = append(all, &copied)
	}
	if startPage > 0 && pageSize > 0 {
		offset := int(startPage-1) * pageSize
		if offset >= len(all) {
			return []*types.Recipe{}, nil
		}
		end := offset + pageSize
		if end > len(all) {
			end = len(all)
		}
		all = all[offset:end]
	}
	return all, nil
}

func (f *fakeRecipeRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	return int64(len(f.recipes)), nil
}

func (f *fakeRecipeRepo) GetAllByName(ctx context.Context, tx *gorm.DB, name string) ([]*types.Recipe, error) {
	var results []*types.Recipe
	for _, stored := range f.recipes {
		if stored.Name == name {
			copied := *stored
			results = append(results, &copied)
		}
	}
	return results, nil
}

func (f *fakeRecipeRepo) ExistsByID(ctx context.Context, tx *gorm.DB, recipeID int64) (bool, error) {
	_, ok := f.recipes[recipeID]
	return ok, nil
}

type fakeIngredientRepo struct {
	rows    map[int64]*types.Ingredient
	links   map[int64]map[int64]bool
	nextID  int64
	creates int
	updates int
	deletes int
	linked  int
}

func newFakeIngredientRepo() *fakeIngredientRepo {
	return &fakeIngredientRepo{
		rows:  map[int64]*types.Ingredient{},
		links: map[int64]map[int64]bool{},
	}
}

func (f *fakeIngredientRepo) CreateAll(ctx context.Context, tx *gorm.DB, ingredients []*types.Ingredient) ([]*types.Ingredient, error) {
	for _, ing := range ingredients {
		if ing.IngredientID == 0 {
			f.nextID++
			ing.IngredientID = f.nextID
		} else if ing.IngredientID > f.nextID {
			f.nextID = ing.IngredientID
		}
		copied := *ing
		f.rows[ing.IngredientID] = &copied
		f.creates++
	}
	return ingredients, nil
}

func (f *fakeIngredientRepo) UpdateAll(ctx context.Context, tx *gorm.DB, ingredients []*types.Ingredient) ([]int64, error) {
	ids := make([]int64, 0, len(ingredients))
	for _, ing := range ingredients {
		copied := *ing
		f.rows[ing.IngredientID] = &copied
		f.updates++
		ids = append(ids, ing.IngredientID)
	}
	return ids, nil
}

func (f *fakeIngredientRepo) DeleteAllByIDs(ctx context.Context, tx *gorm.DB, ingredientIDs []int64) ([]int64, error) {
	for _, id := range ingredientIDs {
		delete(f.rows, id)
		f.deletes++
	}
	return ingredientIDs, nil
}

func (f *fakeIngredientRepo) GetByRecipeID(ctx context.Context, tx *gorm.DB, recipeID int64) ([]*types.Ingredient, error) {
	var results []*types.Ingredient
	for id := range f.links[recipeID] {
		if row, ok := f.rows[id]; ok {
			copied := *row
			results = append(results, &copied)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].IngredientNumber < results[j].IngredientNumber })
	return results, nil
}

func (f *fakeIngredientRepo) GetIDsByRecipeID(ctx context.Context, tx *gorm.DB, recipeID int64) ([]int64, error) {
	var ids []int64
	for id := range f.links[recipeID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeIngredientRepo) LinkToRecipe(ctx context.Context, tx *gorm.DB, recipeID int64, ingredientIDs []int64) error {
	if f.links[recipeID] == nil {
		f.links[recipeID] = map[int64]bool{}
	}
	for _, id := range ingredientIDs {
		f.links[recipeID][id] = true
		f.linked++
	}
	return nil
}

func (f *fakeIngredientRepo) UnlinkByIDs(ctx context.Context, tx *gorm.DB, ingredientIDs []int64) error {
	for _, set := range f.links {
		for _, id := range ingredientIDs {
			delete(set, id)
		}
	}
	return nil
}

func (f *fakeIngredientRepo) UnlinkAllByRecipeID(ctx context.Context, tx *gorm.DB, recipeID int64) error {
	delete(f.links, recipeID)
	return nil
}

type fakeInstructionRepo struct {
	rows    map[int64]*types.Instruction
	links   map[int64]map[int64]bool
	nextID  int64
	creates int
	updates int
	deletes int
}

func newFakeInstructionRepo() *fakeInstructionRepo {
	return &fakeInstructionRepo{
		rows:  map[int64]*types.Instruction{},
		links: map[int64]map[int64]bool{},
	}
}

func (f *fakeInstructionRepo) CreateAll(ctx context.Context, tx *gorm.DB, instructions []*types.Instruction) ([]*types.Instruction, error) {
	for _, ins := range instructions {
		if ins.InstructionID == 0 {
			f.nextID++
			ins.InstructionID = f.nextID
		} else if ins.InstructionID > f.nextID {
			f.nextID = ins.InstructionID
		}
		copied := *ins
		f.rows[ins.InstructionID] = &copied
		f.creates++
	}
	return instructions, nil
}

func (f *fakeInstructionRepo) UpdateAll(ctx context.Context, tx *gorm.DB, instructions []*types.Instruction) ([]int64, error) {
	ids := make([]int64, 0, len(instructions))
	for _, ins := range instructions {
		copied := *ins
		f.rows[ins.InstructionID] = &copied
		f.updates++
		ids = append(ids, ins.InstructionID)
	}
	return ids, nil
}

func (f *fakeInstructionRepo) DeleteAllByIDs(ctx context.Context, tx *gorm.DB, instructionIDs []int64) ([]int64, error) {
	for _, id := range instructionIDs {
		delete(f.rows, id)
		f.deletes++
	}
	return instructionIDs, nil
}

func (f *fakeInstructionRepo) GetByRecipeID(ctx context.Context, tx *gorm.DB, recipeID int64) ([]*types.Instruction, error) {
	var results []*types.Instruction
	for id := range f.links[recipeID] {
		if row, ok := f.rows[id]; ok {
			copied := *row
			results = append(results, &copied)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].InstructionNumber < results[j].InstructionNumber })
	return results, nil
}

func (f *fakeInstructionRepo) GetIDsByRecipeID(ctx context.Context, tx *gorm.DB, recipeID int64) ([]int64, error) {
	var ids []int64
	for id := range f.links[recipeID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeInstructionRepo) LinkToRecipe(ctx context.Context, tx *gorm.DB, recipeID int64, instructionIDs []int64) error {
	if f.links[recipeID] == nil {
		f.links[recipeID] = map[int64]bool{}
	}
	for _, id := range instructionIDs {
		f.links[recipeID][id] = true
	}
	return nil
}

func (f *fakeInstructionRepo) UnlinkByIDs(ctx context.Context, tx *gorm.DB, instructionIDs []int64) error {
	for _, set := range f.links {
		for _, id := range instructionIDs {
			delete(set, id)
		}
	}
	return nil
}

func (f *fakeInstructionRepo) UnlinkAllByRecipeID(ctx context.Context, tx *gorm.DB, recipeID int64) error {
	delete(f.links, recipeID)
	return nil
}

type fakeSearchRepo struct {
	docs    map[int64]documents.RecipeDoc
	saveErr error
	saves   int
	deletes int
}

func newFakeSearchRepo() *fakeSearchRepo {
	return &fakeSearchRepo{docs: map[int64]documents.RecipeDoc{}}
}

func (f *fakeSearchRepo) Save(ctx context.Context, doc documents.RecipeDoc) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.docs[doc.ID] = doc
	f.saves++
	return nil
}

func (f *fakeSearchRepo) DeleteByID(ctx context.Context, recipeID int64) error {
	delete(f.docs, recipeID)
	f.deletes++
	return nil
}

func (f *fakeSearchRepo) Search(ctx context.Context, searchText string) ([]documents.RecipeDoc, error) {
	var results []documents.RecipeDoc
	for _, doc := range f.docs {
		if strings.Contains(doc.Name, searchText) || strings.Contains(doc.Description, searchText) {
			results = append(results, doc)
		}
	}
	return results, nil
}

func (f *fakeSearchRepo) Close() error { return nil }

type serviceFixture struct {
	svc         *recipeService
	recipeRepo  *fakeRecipeRepo
	ingredients *fakeIngredientRepo
	instrs      *fakeInstructionRepo
	search      *fakeSearchRepo
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	dbName := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gormDB, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	recipeRepo := newFakeRecipeRepo()
	ingredientRepo := newFakeIngredientRepo()
	instructionRepo := newFakeInstructionRepo()
	searchRepo := newFakeSearchRepo()

	svc := NewRecipeService(gormDB, log, recipeRepo, ingredientRepo, instructionRepo, searchRepo, nil).(*recipeService)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

	return &serviceFixture{
		svc:         svc,
		recipeRepo:  recipeRepo,
		ingredients: ingredientRepo,
		instrs:      instructionRepo,
		search:      searchRepo,
	}
}
