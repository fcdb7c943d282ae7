package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/akshay-menon/recipe-flash-generator/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubCompleter returns a canned response and records the prompt it was
// given.
type stubCompleter struct {
	response string
	err      error
	prompt   string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

// stubImages returns a canned image URL and records the recipe names it was
// asked about.
type stubImages struct {
	url   string
	names []string
}

func (s *stubImages) GenerateRecipeImage(_ context.Context, recipeName string) string {
	s.names = append(s.names, recipeName)
	return s.url
}

// stubDrafts is an in-memory draft store.
type stubDrafts struct {
	saved   map[string]*service.ConversationDraft
	saveErr error
}

func newStubDrafts() *stubDrafts {
	return &stubDrafts{saved: make(map[string]*service.ConversationDraft)}
}

func (s *stubDrafts) SaveDraft(_ context.Context, draft *service.ConversationDraft) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	if draft.ID == "" {
		draft.ID = "draft-1"
	}
	s.saved[draft.ID] = draft
	return nil
}

func (s *stubDrafts) GetDraft(_ context.Context, id string) (*service.ConversationDraft, error) {
	draft, ok := s.saved[id]
	if !ok {
		return nil, errors.New("draft not found")
	}
	return draft, nil
}

func (s *stubDrafts) DeleteDraft(_ context.Context, id string) error {
	delete(s.saved, id)
	return nil
}

// doJSON performs a JSON request against the router and decodes the
// response body into a map.
func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w.Code, resp
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
