package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akshay-menon/recipe-flash-generator/config"
	"github.com/akshay-menon/recipe-flash-generator/internal/api"
	"github.com/akshay-menon/recipe-flash-generator/internal/database"
	"github.com/akshay-menon/recipe-flash-generator/internal/middleware"
	"github.com/akshay-menon/recipe-flash-generator/internal/router"
	"github.com/akshay-menon/recipe-flash-generator/internal/server"
	"github.com/akshay-menon/recipe-flash-generator/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// A missing completion credential is fatal: the service must refuse to
	// start rather than accept requests it cannot serve.
	completionService, err := service.NewCompletionService()
	if err != nil {
		log.Fatalf("Failed to initialize completion service: %v", err)
	}

	// Image generation is best-effort; without a key recipes simply come
	// back without photos.
	s3Config, err := config.NewS3Config(context.Background(), cfg.S3Bucket)
	if err != nil {
		log.Printf("S3 storage unavailable, using inline images: %v", err)
	}
	imageService, err := service.NewImageService(s3Config)
	if err != nil {
		log.Printf("Image generation disabled: %v", err)
		imageService = nil
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	preferenceService := service.NewPreferenceService(db)
	recipeService := service.NewRecipeService(db)
	promptBuilder := service.NewPromptBuilder()

	var drafts service.IDraftService
	if redisClient != nil {
		drafts = service.NewDraftService(redisClient)
	}

	rateLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     10,
		KeyPrefix: "ratelimit:generate",
	})

	authHandler := api.NewAuthHandler(authService)
	generateHandler := api.NewGenerateHandler(completionService, imageService, promptBuilder, preferenceService)
	chatHandler := api.NewChatHandler(completionService, imageService, promptBuilder, drafts)
	recipeHandler := api.NewRecipeHandler(recipeService, authService)
	preferenceHandler := api.NewPreferenceHandler(preferenceService, authService)

	engine := router.SetupRouter(authHandler, generateHandler, chatHandler, recipeHandler, preferenceHandler, rateLimiter)
	srv := server.New(engine, cfg.ServerHost+":"+cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
