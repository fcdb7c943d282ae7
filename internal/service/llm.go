package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultCompletionURL   = "https://api.anthropic.com/v1/messages"
	defaultCompletionModel = "claude-sonnet-4-20250514"
	anthropicVersion       = "2023-06-01"
	completionMaxTokens    = 1000

	// fallbackResponse is returned when the upstream answers 2xx but the
	// payload carries no extractable text.
	fallbackResponse = "Sorry, I could not generate a response."
)

// CompletionService delivers prompts to the hosted chat-completion API and
// returns the raw text of the first content block.
type CompletionService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewCompletionService creates a CompletionService from the environment.
// A missing API key is a fatal configuration error: the service must refuse
// to start rather than call out with no credential.
func NewCompletionService() (*CompletionService, error) {
	apiKey := os.Getenv("CLAUDE_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("CLAUDE_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("CLAUDE_API_KEY or CLAUDE_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("CLAUDE_API_URL")
	if apiURL == "" {
		apiURL = defaultCompletionURL
	}

	model := os.Getenv("CLAUDE_MODEL")
	if model == "" {
		model = defaultCompletionModel
	}

	return &CompletionService{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model     string              `json:"model"`
	MaxTokens int                 `json:"max_tokens"`
	Messages  []completionMessage `json:"messages"`
}

type completionResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Complete sends the prompt as a single user message and returns the
// response text. A non-2xx status is surfaced as an error; the request is
// never retried here, the user retries the action instead.
func (s *CompletionService) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := completionRequest{
		Model:     s.model,
		MaxTokens: completionMaxTokens,
		Messages: []completionMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[CompletionService] API request failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("completion API call failed with status %d", resp.StatusCode)
	}

	var result completionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	for _, block := range result.Content {
		if block.Text != "" {
			return block.Text, nil
		}
	}

	log.Printf("[CompletionService] 2xx response with no extractable text")
	return fallbackResponse, nil
}
