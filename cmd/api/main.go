package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plateshare/backend/config"
	"github.com/plateshare/backend/internal/api"
	"github.com/plateshare/backend/internal/database"
	"github.com/plateshare/backend/internal/middleware"
	"github.com/plateshare/backend/internal/router"
	"github.com/plateshare/backend/internal/server"
	"github.com/plateshare/backend/internal/service"
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

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// The identity verifier is constructed once and shared by every handler.
	verifier := service.NewJWTVerifier(cfg.JWTSecret)

	sessions := service.NewSessionService(db.Gorm)
	users := service.NewUserService(db.Gorm)
	recipes := service.NewRecipeService(db.Gorm)
	likes := service.NewLikeService(db.Gorm)
	social := service.NewSocialService(db.Gorm)

	// Photo storage is optional: without S3 credentials the upload endpoint
	// reports itself unavailable and everything else keeps working.
	var photos *service.PhotoService
	if s3Cfg, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("S3 unavailable, profile photo upload disabled: %v", err)
	} else {
		photos = service.NewPhotoService(s3Cfg)
	}

	deps := router.Deps{
		Verifier:      verifier,
		Sessions:      sessions,
		UserHandler:   api.NewUserHandler(verifier, users, social, likes, recipes, photos),
		RecipeHandler: api.NewRecipeHandler(recipes, likes),
		HealthHandler: api.NewHealthHandler(db, redisClient),
		RecipeLimiter: middleware.NewRecipeCreationRateLimiter(redisClient),
		SocialLimiter: middleware.NewSocialActionRateLimiter(redisClient),
		CORSOrigins:   cfg.CORSAllowedOrigins,
	}
	if config.IsDevelopment() {
		deps.DevIssuer = verifier
	}

	srv := server.New(router.Setup(deps))

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(cfg.ServerPort)
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
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
