package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/prepwise/backend/auth"
	"github.com/prepwise/backend/config"
	_ "github.com/prepwise/backend/docs"
	"github.com/prepwise/backend/flow"
	"github.com/prepwise/backend/handlers"
	"github.com/prepwise/backend/storage"
	"github.com/prepwise/backend/utils"
)

// @title PrepWise Auth API
// @version 1.0
// @description Authentication backend for the PrepWise mock-interview practice product.

// @contact.name API Support
// @contact.email support@prepwise.app

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api

func main() {
	// Load .env file if present (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Set Gin mode based on debug setting
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create context for initialization
	ctx := context.Background()

	// Initialize Firestore client
	log.Println("Initializing Firestore client...")
	firestoreClient, err := storage.NewFirestoreClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}
	defer firestoreClient.Close()
	log.Println("Firestore client initialized successfully")

	// Initialize Cloud Storage client
	log.Println("Initializing Cloud Storage client...")
	storageClient, err := storage.NewCloudStorageClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage client: %v", err)
	}
	defer storageClient.Close()
	log.Println("Cloud Storage client initialized successfully")

	// Initialize auth services
	tokenService := auth.NewTokenService(cfg)
	identityService := auth.NewIdentityService(firestoreClient, tokenService)
	sessionManager := auth.NewSessionManager(tokenService, firestoreClient)
	googleAuthService := auth.NewGoogleAuthService(cfg)

	// Wire the credential submission flow
	submissionFlow := flow.New(identityService, firestoreClient, sessionManager, utils.NewFileEncoder())

	// Create handlers
	authHandler := handlers.NewAuthHandler(
		submissionFlow,
		identityService,
		sessionManager,
		googleAuthService,
		firestoreClient,
		storageClient,
	)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Configure CORS for the Next.js frontend
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Register routes
	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Auth endpoints (public). Logout stays public on purpose: it clears
		// the cookie and reports the sign-in redirect even without a session.
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/sign-up", authHandler.SignUp)
			authGroup.POST("/sign-in", authHandler.SignIn)
			authGroup.POST("/google", authHandler.GoogleSignIn)
			authGroup.POST("/logout", authHandler.Logout)
		}

		// Protected endpoints (session gate)
		authProtected := api.Group("/auth")
		authProtected.Use(auth.SessionGate(sessionManager))
		{
			authProtected.GET("/me", authHandler.Me)
			authProtected.POST("/resume", authHandler.UploadResume)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
