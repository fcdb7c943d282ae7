package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/akshay-menon/recipe-flash-generator/internal/models"
	"github.com/akshay-menon/recipe-flash-generator/internal/types"
)

// Completer delivers a prompt to the completion endpoint and returns the
// raw response text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator produces a best-effort image reference for a recipe name.
// An empty string means no image; there is never an error to handle.
type ImageGenerator interface {
	GenerateRecipeImage(ctx context.Context, recipeName string) string
}

// IPreferenceService defines the preference store operations used by the
// handlers and the generate flow.
type IPreferenceService interface {
	GetPreferences(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error)
	UpsertPreferences(ctx context.Context, userID uuid.UUID, req *types.UpdatePreferencesRequest) (*models.UserPreferences, error)
}

// IRecipeService defines the saved-recipe store operations.
type IRecipeService interface {
	SaveRecipe(ctx context.Context, recipe *models.SavedRecipe) error
	ListRecipes(ctx context.Context, userID uuid.UUID, search string) ([]models.SavedRecipe, error)
	GetRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*models.SavedRecipe, error)
	DeleteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
}

// IDraftService defines the conversation draft cache operations.
type IDraftService interface {
	SaveDraft(ctx context.Context, draft *ConversationDraft) error
	GetDraft(ctx context.Context, id string) (*ConversationDraft, error)
	DeleteDraft(ctx context.Context, id string) error
}

var (
	_ Completer          = (*CompletionService)(nil)
	_ ImageGenerator     = (*ImageService)(nil)
	_ IPreferenceService = (*PreferenceService)(nil)
	_ IRecipeService     = (*RecipeService)(nil)
	_ IDraftService      = (*DraftService)(nil)
)
