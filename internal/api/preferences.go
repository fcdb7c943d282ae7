package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshay-menon/recipe-flash-generator/internal/middleware"
	"github.com/akshay-menon/recipe-flash-generator/internal/service"
	"github.com/akshay-menon/recipe-flash-generator/internal/types"
)

// PreferenceHandler handles the user preference screens
type PreferenceHandler struct {
	preferences service.IPreferenceService
	authService middleware.TokenValidator
}

// NewPreferenceHandler creates a new PreferenceHandler instance
func NewPreferenceHandler(preferences service.IPreferenceService, authService middleware.TokenValidator) *PreferenceHandler {
	return &PreferenceHandler{
		preferences: preferences,
		authService: authService,
	}
}

// RegisterRoutes registers the preference routes
func (h *PreferenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	prefs := router.Group("/preferences", middleware.AuthMiddleware(h.authService))
	{
		prefs.GET("", h.GetPreferences)
		prefs.PUT("", h.UpdatePreferences)
	}
}

// GetPreferences returns the signed-in user's preferences. A user who has
// never saved any gets an empty object, not an error.
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
		return
	}

	prefs, err := h.preferences.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch preferences"})
		return
	}
	if prefs == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences upserts the signed-in user's preferences.
func (h *PreferenceHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
		return
	}

	var req types.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs, err := h.preferences.UpsertPreferences(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, prefs)
}
