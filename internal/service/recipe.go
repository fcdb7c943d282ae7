package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/akshay-menon/recipe-flash-generator/internal/models"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeService owns the saved-recipes table. Rows are insert-and-delete
// only; there is no update path.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// SaveRecipe inserts a recipe for the user. The search embedding is
// computed from the name and ingredient list at insert time.
func (s *RecipeService) SaveRecipe(ctx context.Context, recipe *models.SavedRecipe) error {
	recipe.Embedding = GenerateEmbedding(recipe.RecipeName + " " + strings.Join(recipe.Ingredients, " "))
	return s.db.WithContext(ctx).Create(recipe).Error
}

// ListRecipes returns the user's saved recipes, newest first. When a search
// query is given, postgres orders by embedding distance instead; other
// dialects fall back to a LIKE filter.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID, search string) ([]models.SavedRecipe, error) {
	var recipes []models.SavedRecipe

	query := s.db.WithContext(ctx).Where("user_id = ?", userID)

	if search != "" {
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(search)
			query = query.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
		} else {
			like := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(recipe_name) LIKE ?", like).Order("created_at DESC")
		}
	} else {
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe returns one of the user's saved recipes by id.
func (s *RecipeService) GetRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*models.SavedRecipe, error) {
	var recipe models.SavedRecipe
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", recipeID, userID).First(&recipe).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes one of the user's saved recipes. Deleting a recipe
// that is not there (or not theirs) reports ErrRecipeNotFound.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", recipeID, userID).Delete(&models.SavedRecipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}
