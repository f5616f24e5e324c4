package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/platewise/recipe-backend/internal/apperrors"
	"github.com/platewise/recipe-backend/internal/documents"
	"github.com/platewise/recipe-backend/internal/logger"
	"github.com/platewise/recipe-backend/internal/mapping"
	"github.com/platewise/recipe-backend/internal/repos"
	"github.com/platewise/recipe-backend/internal/search"
	"github.com/platewise/recipe-backend/internal/types"
)

// RecipeService is the reconciliation engine: every write reads current
// state, diffs the child lists, applies the relational writes in one
// transaction, then propagates the result to the search index.
type RecipeService interface {
	GetAllRecipes(ctx context.Context, startPage int64, pageSize int) ([]*types.Recipe, error)
	GetRecipeCount(ctx context.Context) (int64, error)
	GetRecipeByID(ctx context.Context, recipeID int64) (*types.Recipe, error)
	AddRecipe(ctx context.Context, recipe *types.Recipe) (*types.Recipe, error)
	UpdateRecipe(ctx context.Context, recipe *types.Recipe) (*types.Recipe, error)
	DeleteRecipeByID(ctx context.Context, recipeID int64) (int64, error)
	SearchRecipes(ctx context.Context, searchText string) ([]documents.RecipeDoc, error)
}

type recipeService struct {
	db              *gorm.DB
	log             *logger.Logger
	recipeRepo      repos.RecipeRepo
	ingredientRepo  repos.IngredientRepo
	instructionRepo repos.InstructionRepo
	searchRepo      search.RecipeSearchRepo

	// mu serializes all writers against each other and against readers,
	// process-wide for the whole aggregate type. Coarser than per-recipe
	// locking, but a reader can never observe a half-reconciled child list.
	mu *sync.RWMutex

	now func() time.Time
}

func NewRecipeService(
	db *gorm.DB,
	baseLog *logger.Logger,
	recipeRepo repos.RecipeRepo,
	ingredientRepo repos.IngredientRepo,
	instructionRepo repos.InstructionRepo,
	searchRepo search.RecipeSearchRepo,
	lock *sync.RWMutex,
) RecipeService {
	serviceLog := baseLog.With("service", "RecipeService")
	if lock == nil {
		lock = &sync.RWMutex{}
	}
	return &recipeService{
		db:              db,
		log:             serviceLog,
		recipeRepo:      recipeRepo,
		ingredientRepo:  ingredientRepo,
		instructionRepo: instructionRepo,
		searchRepo:      searchRepo,
		mu:              lock,
		now:             time.Now,
	}
}

func ingredientID(i *types.Ingredient) int64   { return i.IngredientID }
func instructionID(i *types.Instruction) int64 { return i.InstructionID }

func renumberChildren(recipe *types.Recipe) {
	renumber(recipe.Ingredients, func(i *types.Ingredient, n int) { i.IngredientNumber = n })
	renumber(recipe.Instructions, func(i *types.Instruction, n int) { i.InstructionNumber = n })
}

// resetChildIDs discards client-supplied child identifiers so the store
// assigns fresh ones on insert.
func resetChildIDs(recipe *types.Recipe) {
	for _, ing := range recipe.Ingredients {
		ing.IngredientID = 0
	}
	for _, ins := range recipe.Instructions {
		ins.InstructionID = 0
	}
}

func (s *recipeService) GetAllRecipes(ctx context.Context, startPage int64, pageSize int) ([]*types.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipes, err := s.recipeRepo.GetAll(ctx, nil, startPage, pageSize)
	if err != nil {
		return nil, fmt.Errorf("get all recipes: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, recipe := range recipes {
		g.Go(func() error {
			return s.mergeChildren(gctx, recipe)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *recipeService) GetRecipeCount(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.recipeRepo.CountAll(ctx, nil)
}

func (s *recipeService) GetRecipeByID(ctx context.Context, recipeID int64) (*types.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipe, err := s.recipeRepo.GetByID(ctx, nil, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.mergeChildren(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) AddRecipe(ctx context.Context, recipe *types.Recipe) (*types.Recipe, error) {
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	creationTime := s.now()
	recipe.CreationDateTime = creationTime
	recipe.LastModifiedDateTime = creationTime
	// Every child of a new recipe is a new row.
	resetChildIDs(recipe)
	renumberChildren(recipe)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		sameName, err := s.recipeRepo.GetAllByName(ctx, tx, recipe.Name)
		if err != nil {
			return fmt.Errorf("look up recipes named %q: %w", recipe.Name, err)
		}
		maxVariation := 0
		for _, existing := range sameName {
			if existing.Variation > maxVariation {
				maxVariation = existing.Variation
			}
		}
		recipe.Variation = maxVariation + 1

		if _, err := s.recipeRepo.Create(ctx, tx, recipe); err != nil {
			return fmt.Errorf("save recipe: %w", err)
		}
		if err := s.insertChildren(ctx, tx, recipe.RecipeID, recipe.Ingredients, recipe.Instructions); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		s.log.Error("AddRecipe failed", "name", recipe.Name, "error", err)
		return nil, err
	}

	s.log.Info("AddRecipe", "recipe_id", recipe.RecipeID, "name", recipe.Name, "variation", recipe.Variation)
	s.syncToIndex(ctx, recipe)
	return recipe, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipe *types.Recipe) (*types.Recipe, error) {
	if recipe == nil || recipe.RecipeID == 0 {
		return nil, fmt.Errorf("update requires a recipe id: %w", apperrors.ErrInvalidArgument)
	}
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.recipeRepo.GetByID(ctx, tx, recipe.RecipeID)
		if err != nil {
			return err
		}
		currentIngredients, err := s.ingredientRepo.GetByRecipeID(ctx, tx, recipe.RecipeID)
		if err != nil {
			return fmt.Errorf("load current ingredients: %w", err)
		}
		currentInstructions, err := s.instructionRepo.GetByRecipeID(ctx, tx, recipe.RecipeID)
		if err != nil {
			return fmt.Errorf("load current instructions: %w", err)
		}

		// Variation and creation time are immutable by the client.
		recipe.Variation = existing.Variation
		recipe.CreationDateTime = existing.CreationDateTime
		recipe.LastModifiedDateTime = s.now()
		renumberChildren(recipe)

		ingredientDiff := partitionChildren(currentIngredients, recipe.Ingredients, ingredientID)
		instructionDiff := partitionChildren(currentInstructions, recipe.Instructions, instructionID)

		// An id unknown to the persisted set marks a fresh insert; the
		// store assigns the real identity.
		for _, ing := range ingredientDiff.toAdd {
			ing.IngredientID = 0
		}
		for _, ins := range instructionDiff.toAdd {
			ins.InstructionID = 0
		}

		if _, err := s.recipeRepo.Update(ctx, tx, recipe); err != nil {
			return fmt.Errorf("update recipe row: %w", err)
		}

		// Bridge rows go before child rows so the transaction never holds
		// a bridge row pointing at a missing child.
		if err := s.ingredientRepo.UnlinkByIDs(ctx, tx, ingredientDiff.abandonedIDs); err != nil {
			return fmt.Errorf("unlink abandoned ingredients: %w", err)
		}
		if _, err := s.ingredientRepo.DeleteAllByIDs(ctx, tx, ingredientDiff.abandonedIDs); err != nil {
			return fmt.Errorf("delete abandoned ingredients: %w", err)
		}
		if _, err := s.ingredientRepo.UpdateAll(ctx, tx, ingredientDiff.toUpdate); err != nil {
			return fmt.Errorf("update ingredients: %w", err)
		}
		addedIngredients, err := s.ingredientRepo.CreateAll(ctx, tx, ingredientDiff.toAdd)
		if err != nil {
			return fmt.Errorf("add ingredients: %w", err)
		}
		if err := s.ingredientRepo.LinkToRecipe(ctx, tx, recipe.RecipeID, childIDs(addedIngredients, ingredientID)); err != nil {
			return fmt.Errorf("link added ingredients: %w", err)
		}

		if err := s.instructionRepo.UnlinkByIDs(ctx, tx, instructionDiff.abandonedIDs); err != nil {
			return fmt.Errorf("unlink abandoned instructions: %w", err)
		}
		if _, err := s.instructionRepo.DeleteAllByIDs(ctx, tx, instructionDiff.abandonedIDs); err != nil {
			return fmt.Errorf("delete abandoned instructions: %w", err)
		}
		if _, err := s.instructionRepo.UpdateAll(ctx, tx, instructionDiff.toUpdate); err != nil {
			return fmt.Errorf("update instructions: %w", err)
		}
		addedInstructions, err := s.instructionRepo.CreateAll(ctx, tx, instructionDiff.toAdd)
		if err != nil {
			return fmt.Errorf("add instructions: %w", err)
		}
		if err := s.instructionRepo.LinkToRecipe(ctx, tx, recipe.RecipeID, childIDs(addedInstructions, instructionID)); err != nil {
			return fmt.Errorf("link added instructions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("UpdateRecipe", "recipe_id", recipe.RecipeID, "name", recipe.Name)
	s.syncToIndex(ctx, recipe)
	return recipe, nil
}

func (s *recipeService) DeleteRecipeByID(ctx context.Context, recipeID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		ingredientIDs, err := s.ingredientRepo.GetIDsByRecipeID(ctx, tx, recipeID)
		if err != nil {
			return fmt.Errorf("collect ingredient ids: %w", err)
		}
		instructionIDs, err := s.instructionRepo.GetIDsByRecipeID(ctx, tx, recipeID)
		if err != nil {
			return fmt.Errorf("collect instruction ids: %w", err)
		}

		if err := s.ingredientRepo.UnlinkAllByRecipeID(ctx, tx, recipeID); err != nil {
			return fmt.Errorf("unlink ingredients: %w", err)
		}
		if err := s.instructionRepo.UnlinkAllByRecipeID(ctx, tx, recipeID); err != nil {
			return fmt.Errorf("unlink instructions: %w", err)
		}

		if _, err := s.recipeRepo.DeleteByID(ctx, tx, recipeID); err != nil {
			return err
		}
		if _, err := s.ingredientRepo.DeleteAllByIDs(ctx, tx, ingredientIDs); err != nil {
			return fmt.Errorf("delete ingredients: %w", err)
		}
		if _, err := s.instructionRepo.DeleteAllByIDs(ctx, tx, instructionIDs); err != nil {
			return fmt.Errorf("delete instructions: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("DeleteRecipeByID", "recipe_id", recipeID)
	if err := s.searchRepo.DeleteByID(ctx, recipeID); err != nil {
		s.log.Warn("search index out of sync after recipe delete", "recipe_id", recipeID, "error", err)
	}
	return recipeID, nil
}

func (s *recipeService) SearchRecipes(ctx context.Context, searchText string) ([]documents.RecipeDoc, error) {
	return s.searchRepo.Search(ctx, searchText)
}

// mergeChildren loads both child lists concurrently and attaches them to
// the parent.
func (s *recipeService) mergeChildren(ctx context.Context, recipe *types.Recipe) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ingredients, err := s.ingredientRepo.GetByRecipeID(gctx, nil, recipe.RecipeID)
		if err != nil {
			return fmt.Errorf("load ingredients for recipe %d: %w", recipe.RecipeID, err)
		}
		recipe.Ingredients = ingredients
		return nil
	})
	g.Go(func() error {
		instructions, err := s.instructionRepo.GetByRecipeID(gctx, nil, recipe.RecipeID)
		if err != nil {
			return fmt.Errorf("load instructions for recipe %d: %w", recipe.RecipeID, err)
		}
		recipe.Instructions = instructions
		return nil
	})
	return g.Wait()
}

// insertChildren persists the child rows and their bridge rows for a
// freshly created recipe.
func (s *recipeService) insertChildren(ctx context.Context, tx *gorm.DB, recipeID int64, ingredients []*types.Ingredient, instructions []*types.Instruction) error {
	if _, err := s.ingredientRepo.CreateAll(ctx, tx, ingredients); err != nil {
		return fmt.Errorf("save ingredients: %w", err)
	}
	if err := s.ingredientRepo.LinkToRecipe(ctx, tx, recipeID, childIDs(ingredients, ingredientID)); err != nil {
		return fmt.Errorf("link ingredients: %w", err)
	}
	if _, err := s.instructionRepo.CreateAll(ctx, tx, instructions); err != nil {
		return fmt.Errorf("save instructions: %w", err)
	}
	if err := s.instructionRepo.LinkToRecipe(ctx, tx, recipeID, childIDs(instructions, instructionID)); err != nil {
		return fmt.Errorf("link instructions: %w", err)
	}
	return nil
}

// syncToIndex runs after the relational transaction has committed. The
// relational store stays the source of truth: an index failure here is
// reported as divergence, never as a failure of the write.
func (s *recipeService) syncToIndex(ctx context.Context, recipe *types.Recipe) {
	if err := s.searchRepo.Save(ctx, mapping.ToDoc(recipe)); err != nil {
		s.log.Warn("search index out of sync after relational write", "recipe_id", recipe.RecipeID, "error", err)
	}
}

func childIDs[T any](children []T, id func(T) int64) []int64 {
	ids := make([]int64, 0, len(children))
	for _, c := range children {
		ids = append(ids, id(c))
	}
	return ids
}
