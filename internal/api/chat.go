package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshay-menon/recipe-flash-generator/internal/service"
	"github.com/akshay-menon/recipe-flash-generator/internal/types"
)

// ChatHandler handles the conversational recipe flow
type ChatHandler struct {
	completer service.Completer
	images    service.ImageGenerator
	prompts   *service.PromptBuilder
	drafts    service.IDraftService
}

// NewChatHandler creates a new ChatHandler instance
func NewChatHandler(completer service.Completer, images service.ImageGenerator, prompts *service.PromptBuilder, drafts service.IDraftService) *ChatHandler {
	return &ChatHandler{
		completer: completer,
		images:    images,
		prompts:   prompts,
		drafts:    drafts,
	}
}

// RegisterRoutes registers the chat routes
func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup, extra ...gin.HandlerFunc) {
	handlers := append(extra, h.Chat)
	router.POST("/chat", handlers...)
	router.GET("/chat/drafts/:id", h.GetDraft)
	router.DELETE("/chat/drafts/:id", h.DeleteDraft)
}

// Chat frames the user input by exchange number, calls the completion
// endpoint and, when the response carries a recipe, attaches an image.
// The image call runs strictly after the completion call.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prompt := h.prompts.BuildChatPrompt(req.Messages, req.ExchangeNumber, req.UserInput)

	responseText, err := h.completer.Complete(c.Request.Context(), prompt)
	if err != nil {
		log.Printf("[ChatHandler] completion failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Chat failed"})
		return
	}

	resp := gin.H{
		"response":       responseText,
		"exchangeNumber": req.ExchangeNumber,
	}

	if h.images != nil && service.ContainsRecipe(responseText) {
		name := service.ExtractRecipeName(responseText)
		if imageURL := h.images.GenerateRecipeImage(c.Request.Context(), name); imageURL != "" {
			resp["imageUrl"] = imageURL
		}
	}

	// Best-effort draft snapshot so a reloaded client can resume.
	if h.drafts != nil {
		draft := &service.ConversationDraft{
			ID:             req.ConversationID,
			Messages:       append(req.Messages, types.ChatMessage{Role: "user", Content: req.UserInput}, types.ChatMessage{Role: "assistant", Content: responseText}),
			ExchangeNumber: req.ExchangeNumber,
		}
		if err := h.drafts.SaveDraft(c.Request.Context(), draft); err != nil {
			log.Printf("[ChatHandler] draft save failed: %v", err)
		} else {
			resp["conversationId"] = draft.ID
		}
	}

	c.JSON(http.StatusOK, resp)
}

// GetDraft returns a cached conversation draft by id.
func (h *ChatHandler) GetDraft(c *gin.Context) {
	if h.drafts == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}
	draft, err := h.drafts.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}
	c.JSON(http.StatusOK, draft)
}

// DeleteDraft clears a cached conversation; the client calls this on
// "start new conversation".
func (h *ChatHandler) DeleteDraft(c *gin.Context) {
	if h.drafts == nil {
		c.JSON(http.StatusOK, gin.H{"message": "conversation cleared"})
		return
	}
	if err := h.drafts.DeleteDraft(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear conversation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "conversation cleared"})
}
