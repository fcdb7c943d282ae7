package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akshay-menon/recipe-flash-generator/internal/middleware"
	"github.com/akshay-menon/recipe-flash-generator/internal/models"
	"github.com/akshay-menon/recipe-flash-generator/internal/service"
	"github.com/akshay-menon/recipe-flash-generator/internal/types"
)

// RecipeHandler handles saved-recipe CRUD
type RecipeHandler struct {
	recipes     service.IRecipeService
	authService middleware.TokenValidator
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipes service.IRecipeService, authService middleware.TokenValidator) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		authService: authService,
	}
}

// RegisterRoutes registers the saved-recipe routes. Every route requires a
// signed-in user; an anonymous save never reaches the store.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes", middleware.AuthMiddleware(h.authService))
	{
		recipes.POST("", h.SaveRecipe)
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}

// SaveRecipe inserts a recipe row for the signed-in user.
func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
		return
	}

	var req types.SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := models.SavedRecipe{
		UserID:       userID,
		RecipeName:   req.RecipeName,
		CookingTime:  req.CookingTime,
		Serves:       req.Serves,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
	}
	if req.Nutrition != nil {
		recipe.HasNutrition = true
		recipe.Nutrition = models.Nutrition{
			Calories: req.Nutrition.Calories,
			Protein:  req.Nutrition.Protein,
			Carbs:    req.Nutrition.Carbs,
			Fat:      req.Nutrition.Fat,
		}
	}

	if err := h.recipes.SaveRecipe(c.Request.Context(), &recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// ListRecipes returns the user's saved recipes, newest first, optionally
// ranked by a search query.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
		return
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe returns a single saved recipe.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), userID, recipeID)
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe removes a saved recipe.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	err = h.recipes.DeleteRecipe(c.Request.Context(), userID, recipeID)
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
		"id":      recipeID.String(),
	})
}
