package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/platewise/recipe-backend/internal/apperrors"
	"github.com/platewise/recipe-backend/internal/logger"
	"github.com/platewise/recipe-backend/internal/services"
	"github.com/platewise/recipe-backend/internal/types"
)

const defaultPageSize = 20

// RecipeHandler is the thin caller layer over the reconciliation engine:
// it validates request shape, invokes the service with plain aggregate
// values, and translates typed errors into status codes.
type RecipeHandler struct {
	log           *logger.Logger
	recipeService services.RecipeService
}

func NewRecipeHandler(baseLog *logger.Logger, recipeService services.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		log:           baseLog.With("handler", "RecipeHandler"),
		recipeService: recipeService,
	}
}

// GET /recipes/list
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	pageNumber, err := queryInt64(c, "page-number", 1)
	if err != nil || pageNumber < 1 {
		RespondError(c, http.StatusBadRequest, "invalid_page_number", errors.New("page-number must be a positive integer"))
		return
	}
	pageSize, err := queryInt(c, "page-size", defaultPageSize)
	if err != nil || pageSize < 1 {
		RespondError(c, http.StatusBadRequest, "invalid_page_size", errors.New("page-size must be a positive integer"))
		return
	}

	recipes, err := h.recipeService.GetAllRecipes(c.Request.Context(), pageNumber, pageSize)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "storage_failure", err)
		return
	}
	count, err := h.recipeService.GetRecipeCount(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "storage_failure", err)
		return
	}
	RespondOK(c, gin.H{"recipes": recipes, "total": count})
}

// GET /recipes/get/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipeID, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	recipe, err := h.recipeService.GetRecipeByID(c.Request.Context(), recipeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "storage_failure", err)
		return
	}
	RespondOK(c, recipe)
}

// PUT /recipes/add
func (h *RecipeHandler) AddRecipe(c *gin.Context) {
	var recipe types.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	// Identity is store-assigned on create, never client-supplied.
	recipe.RecipeID = 0

	saved, err := h.recipeService.AddRecipe(c.Request.Context(), &recipe)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			RespondError(c, http.StatusBadRequest, "validation_failure", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "storage_failure", err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// PATCH /recipes/update
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var recipe types.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	updated, err := h.recipeService.UpdateRecipe(c.Request.Context(), &recipe)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			RespondError(c, http.StatusNotFound, "not_found", err)
		case errors.Is(err, apperrors.ErrInvalidArgument):
			RespondError(c, http.StatusBadRequest, "validation_failure", err)
		default:
			RespondError(c, http.StatusInternalServerError, "storage_failure", err)
		}
		return
	}
	RespondOK(c, updated)
}

// DELETE /recipes/delete/:id
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	recipeID, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	deletedID, err := h.recipeService.DeleteRecipeByID(c.Request.Context(), recipeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "storage_failure", err)
		return
	}
	RespondOK(c, gin.H{"deletedId": deletedID})
}

// GET /recipes/search
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	searchText := c.Query("search-string")
	if searchText == "" {
		RespondError(c, http.StatusBadRequest, "missing_search_string", errors.New("search-string is required"))
		return
	}

	docs, err := h.recipeService.SearchRecipes(c.Request.Context(), searchText)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "search_failure", err)
		return
	}
	RespondOK(c, gin.H{"results": docs, "total": len(docs)})
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func queryInt64(c *gin.Context, name string, defaultVal int64) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultVal, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func queryInt(c *gin.Context, name string, defaultVal int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(raw)
}
