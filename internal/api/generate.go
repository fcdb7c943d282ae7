package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akshay-menon/recipe-flash-generator/internal/models"
	"github.com/akshay-menon/recipe-flash-generator/internal/service"
	"github.com/akshay-menon/recipe-flash-generator/internal/types"
)

const (
	minPeople = 1
	maxPeople = 8
)

// GenerateHandler handles one-shot recipe generation requests
type GenerateHandler struct {
	completer   service.Completer
	images      service.ImageGenerator
	prompts     *service.PromptBuilder
	preferences service.IPreferenceService
}

// NewGenerateHandler creates a new GenerateHandler instance
func NewGenerateHandler(completer service.Completer, images service.ImageGenerator, prompts *service.PromptBuilder, preferences service.IPreferenceService) *GenerateHandler {
	return &GenerateHandler{
		completer:   completer,
		images:      images,
		prompts:     prompts,
		preferences: preferences,
	}
}

// RegisterRoutes registers the generation route
func (h *GenerateHandler) RegisterRoutes(router *gin.RouterGroup, extra ...gin.HandlerFunc) {
	handlers := append(extra, h.Generate)
	router.POST("/generate", handlers...)
}

// Generate builds the prompt, calls the completion endpoint and returns the
// raw recipe text plus an optional image URL. A completion failure aborts
// the whole operation; an image failure never does.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req types.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	people, err := strconv.Atoi(req.NumberOfPeople)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "numberOfPeople must be an integer"})
		return
	}
	// The UI clamps to [1,8]; clamp again here so a stale client can't
	// push absurd serving counts into the prompt.
	if people < minPeople {
		people = minPeople
	}
	if people > maxPeople {
		people = maxPeople
	}

	params := service.GenerateParams{
		DietaryPreference: req.DietaryPreference,
		NumberOfPeople:    people,
		SpecialRequest:    req.SpecialRequest,
	}

	prefs := h.loadPreferences(c, req.UserID)
	prompt := h.prompts.BuildGeneratePrompt(params, prefs)

	recipeText, err := h.completer.Complete(c.Request.Context(), prompt)
	if err != nil {
		log.Printf("[GenerateHandler] completion failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Recipe generation failed"})
		return
	}

	resp := gin.H{"recipe": recipeText}

	if h.images != nil && service.ContainsRecipe(recipeText) {
		name := service.ExtractRecipeName(recipeText)
		if imageURL := h.images.GenerateRecipeImage(c.Request.Context(), name); imageURL != "" {
			resp["imageUrl"] = imageURL
		}
	}

	c.JSON(http.StatusOK, resp)
}

// loadPreferences resolves stored preferences for an optional user id.
// Any lookup problem degrades to "no preferences" rather than failing the
// generation.
func (h *GenerateHandler) loadPreferences(c *gin.Context, userID string) *models.UserPreferences {
	if userID == "" || h.preferences == nil {
		return nil
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil
	}
	prefs, err := h.preferences.GetPreferences(c.Request.Context(), id)
	if err != nil {
		log.Printf("[GenerateHandler] preference lookup failed: %v", err)
		return nil
	}
	return prefs
}
