package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestImageService(t *testing.T, handler http.HandlerFunc) *ImageService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("STABILITY_API_KEY", "test-key")
	t.Setenv("STABILITY_API_URL", srv.URL)

	svc, err := NewImageService(nil)
	require.NoError(t, err)
	return svc
}

func TestNewImageService_MissingKey(t *testing.T) {
	t.Setenv("STABILITY_API_KEY", "")
	t.Setenv("STABILITY_API_KEY_FILE", "")

	_, err := NewImageService(nil)
	assert.Error(t, err)
}

func TestGenerateRecipeImage_DataURIWithoutStorage(t *testing.T) {
	var captured imageGenerationRequest
	svc := newTestImageService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_, _ = w.Write([]byte(`{"artifacts":[{"base64":"aGVsbG8="}]}`))
	})

	got := svc.GenerateRecipeImage(context.Background(), "Honey Garlic Chicken")
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", got)

	require.Len(t, captured.TextPrompts, 1)
	assert.True(t, strings.Contains(captured.TextPrompts[0].Text, "Honey Garlic Chicken"))
	assert.Equal(t, 1024, captured.Width)
	assert.Equal(t, 1024, captured.Height)
}

func TestGenerateRecipeImage_FailuresAreSwallowed(t *testing.T) {
	svc := newTestImageService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	})

	assert.Equal(t, "", svc.GenerateRecipeImage(context.Background(), "Anything"))
}

func TestGenerateRecipeImage_EmptyArtifactsSwallowed(t *testing.T) {
	svc := newTestImageService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"artifacts":[]}`))
	})

	assert.Equal(t, "", svc.GenerateRecipeImage(context.Background(), "Anything"))
}

func TestGenerateRecipeImage_NilService(t *testing.T) {
	var svc *ImageService
	assert.Equal(t, "", svc.GenerateRecipeImage(context.Background(), "Anything"))
}
