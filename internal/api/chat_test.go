package api

import (
	"errors"
	"math/rand"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshay-menon/recipe-flash-generator/internal/service"
	"github.com/akshay-menon/recipe-flash-generator/internal/types"
)

func newChatRouter(completer service.Completer, images service.ImageGenerator, drafts service.IDraftService) *gin.Engine {
	router := gin.New()
	h := NewChatHandler(completer, images, service.NewPromptBuilderWithSource(rand.New(rand.NewSource(1))), drafts)
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestChat_ClarifyingQuestionHasNoImage(t *testing.T) {
	completer := &stubCompleter{response: "Baked or pan-fried salmon?"}
	images := &stubImages{url: "https://img.example/pic.png"}
	router := newChatRouter(completer, images, nil)

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/chat", types.ChatRequest{
		UserInput:      "something with salmon",
		ExchangeNumber: 1,
	}, nil)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Baked or pan-fried salmon?", resp["response"])
	assert.Equal(t, float64(1), resp["exchangeNumber"])
	assert.NotContains(t, resp, "imageUrl")
	assert.Empty(t, images.names)

	assert.Contains(t, completer.prompt, "Analyze this recipe request: something with salmon")
}

func TestChat_RecipeResponseGetsImage(t *testing.T) {
	completer := &stubCompleter{response: recipeResponse}
	images := &stubImages{url: "https://img.example/pic.png"}
	router := newChatRouter(completer, images, nil)

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/chat", types.ChatRequest{
		Messages: []types.ChatMessage{
			{Role: "user", Content: "something with chickpeas"},
			{Role: "assistant", Content: "Curry or salad?"},
		},
		UserInput:      "curry please",
		ExchangeNumber: 2,
	}, nil)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "https://img.example/pic.png", resp["imageUrl"])
	assert.Equal(t, float64(2), resp["exchangeNumber"])
	require.Len(t, images.names, 1)
	assert.Equal(t, "Spicy Chickpea Curry", images.names[0])

	assert.Contains(t, completer.prompt, "Now generate a complete recipe")
	assert.Contains(t, completer.prompt, "user: something with chickpeas")
}

func TestChat_SavesDraftAndReturnsConversationID(t *testing.T) {
	drafts := newStubDrafts()
	router := newChatRouter(&stubCompleter{response: recipeResponse}, nil, drafts)

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/chat", types.ChatRequest{
		UserInput:      "chickpea curry",
		ExchangeNumber: 1,
	}, nil)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "draft-1", resp["conversationId"])

	saved := drafts.saved["draft-1"]
	require.NotNil(t, saved)
	assert.Equal(t, 1, saved.ExchangeNumber)
	require.Len(t, saved.Messages, 2)
	assert.Equal(t, "user", saved.Messages[0].Role)
	assert.Equal(t, "chickpea curry", saved.Messages[0].Content)
	assert.Equal(t, "assistant", saved.Messages[1].Role)
}

func TestChat_DraftSaveFailureIsNonFatal(t *testing.T) {
	drafts := newStubDrafts()
	drafts.saveErr = errors.New("redis down")
	router := newChatRouter(&stubCompleter{response: recipeResponse}, nil, drafts)

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/chat", types.ChatRequest{
		UserInput:      "chickpea curry",
		ExchangeNumber: 1,
	}, nil)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, recipeResponse, resp["response"])
	assert.NotContains(t, resp, "conversationId")
}

func TestChat_CompletionFailureIs502(t *testing.T) {
	router := newChatRouter(&stubCompleter{err: errors.New("upstream down")}, nil, nil)

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/chat", types.ChatRequest{
		UserInput:      "chickpea curry",
		ExchangeNumber: 1,
	}, nil)

	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, "Chat failed", resp["error"])
}

func TestChat_RejectsMissingInput(t *testing.T) {
	router := newChatRouter(&stubCompleter{response: "ok"}, nil, nil)

	code, _ := doJSON(t, router, http.MethodPost, "/api/v1/chat", types.ChatRequest{
		ExchangeNumber: 1,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON(t, router, http.MethodPost, "/api/v1/chat", map[string]any{
		"userInput":      "curry",
		"exchangeNumber": 0,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestChat_DraftEndpoints(t *testing.T) {
	drafts := newStubDrafts()
	drafts.saved["abc"] = &service.ConversationDraft{
		ID:             "abc",
		ExchangeNumber: 2,
		Messages: []types.ChatMessage{
			{Role: "user", Content: "something with salmon"},
		},
	}
	router := newChatRouter(&stubCompleter{response: "ok"}, nil, drafts)

	code, resp := doJSON(t, router, http.MethodGet, "/api/v1/chat/drafts/abc", nil, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "abc", resp["id"])
	assert.Equal(t, float64(2), resp["exchange_number"])

	code, _ = doJSON(t, router, http.MethodDelete, "/api/v1/chat/drafts/abc", nil, nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, drafts.saved, "abc")

	code, _ = doJSON(t, router, http.MethodGet, "/api/v1/chat/drafts/abc", nil, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
