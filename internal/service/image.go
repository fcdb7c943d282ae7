package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/akshay-menon/recipe-flash-generator/config"
)

const defaultImageURL = "https://api.stability.ai/v1/generation/stable-diffusion-xl-1024-v1-0/text-to-image"

// ImageService generates a food photo for a recipe. It is best-effort
// enrichment: every failure is logged and swallowed so the recipe call
// still succeeds without an image.
type ImageService struct {
	apiKey   string
	apiURL   string
	s3Config *config.S3Config
	client   *http.Client
}

// NewImageService creates an ImageService from the environment. Unlike the
// completion credential, a missing image key is not fatal; the caller gets
// a nil service and recipes simply come back without photos.
func NewImageService(s3Config *config.S3Config) (*ImageService, error) {
	apiKey := os.Getenv("STABILITY_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("STABILITY_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("STABILITY_API_KEY or STABILITY_API_KEY_FILE must be set")
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

	apiURL := os.Getenv("STABILITY_API_URL")
	if apiURL == "" {
		apiURL = defaultImageURL
	}

	return &ImageService{
		apiKey:   apiKey,
		apiURL:   apiURL,
		s3Config: s3Config,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type imageTextPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type imageGenerationRequest struct {
	TextPrompts []imageTextPrompt `json:"text_prompts"`
	CfgScale    int               `json:"cfg_scale"`
	Height      int               `json:"height"`
	Width       int               `json:"width"`
	Steps       int               `json:"steps"`
	Samples     int               `json:"samples"`
}

type imageGenerationResponse struct {
	Artifacts []struct {
		Base64 string `json:"base64"`
	} `json:"artifacts"`
}

// GenerateRecipeImage returns an image reference for the recipe name, or ""
// when generation fails for any reason. It never returns an error the
// caller must handle.
func (s *ImageService) GenerateRecipeImage(ctx context.Context, recipeName string) string {
	if s == nil {
		return ""
	}

	imageURL, err := s.generateImage(ctx, recipeName)
	if err != nil {
		log.Printf("[ImageService] image generation for %q failed: %v", recipeName, err)
		return ""
	}
	return imageURL
}

func (s *ImageService) generateImage(ctx context.Context, recipeName string) (string, error) {
	prompt := fmt.Sprintf("Professional food photography of %s, appetizing, restaurant quality, well-lit, beautifully plated, high resolution", recipeName)

	reqBody := imageGenerationRequest{
		TextPrompts: []imageTextPrompt{{Text: prompt, Weight: 1}},
		CfgScale:    7,
		Height:      1024,
		Width:       1024,
		Steps:       30,
		Samples:     1,
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
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result imageGenerationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Artifacts) == 0 || result.Artifacts[0].Base64 == "" {
		return "", fmt.Errorf("no image data in API response")
	}

	encoded := result.Artifacts[0].Base64

	// Upload to S3 when storage is configured; otherwise hand the client a
	// data URI, which the original flow also supports.
	if s.s3Config != nil {
		if s3URL, err := s.uploadToS3(ctx, encoded); err == nil {
			return s3URL, nil
		} else {
			log.Printf("[ImageService] S3 upload failed, falling back to data URI: %v", err)
		}
	}

	return "data:image/png;base64," + encoded, nil
}

// uploadToS3 decodes the generated image and stores it under a fresh key.
func (s *ImageService) uploadToS3(ctx context.Context, encoded string) (string, error) {
	imageData, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode image data: %w", err)
	}

	key := fmt.Sprintf("recipe-images/%s.png", uuid.New().String())
	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key), nil
}
