package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthsetu/healthsetu-be/internal/api"
	"github.com/healthsetu/healthsetu-be/internal/api/middleware"
	"github.com/healthsetu/healthsetu-be/internal/catalog"
	"github.com/healthsetu/healthsetu-be/internal/checkup"
	"github.com/healthsetu/healthsetu-be/internal/environment"
	"github.com/healthsetu/healthsetu-be/internal/extract"
	"github.com/healthsetu/healthsetu-be/internal/language"
	"github.com/healthsetu/healthsetu-be/internal/store"
	"github.com/healthsetu/healthsetu-be/internal/ws"
	"github.com/healthsetu/healthsetu-be/pkg/deepseek"
	"github.com/healthsetu/healthsetu-be/pkg/gemini"
	"github.com/healthsetu/healthsetu-be/pkg/llm"
	"github.com/healthsetu/healthsetu-be/pkg/openfda"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	// Get configuration from environment
	port := getEnv("PORT", "8080")
	databaseURL := getEnv("DATABASE_URL", "")
	jwtSecret := getEnv("JWT_SECRET", "")
	catalogPath := getEnv("CATALOG_PATH", "data/diseases.json")
	extractorProvider := getEnv("EXTRACTOR_PROVIDER", "gemini")
	geminiAPIKey := getEnv("GEMINI_API_KEY", "")
	deepseekAPIKey := getEnv("DEEPSEEK_API_KEY", "")

	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Initialize database
	db, err := store.NewFromURL(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("✅ Database connected")

	// Initialize components
	catalogLoader := catalog.NewLoader(catalogPath)
	if _, err := catalogLoader.Load(); err != nil {
		log.Fatalf("Failed to load disease catalog from %s: %v", catalogPath, err)
	}
	log.Printf("✅ Disease catalog loaded from %s", catalogPath)

	envProvider := environment.NewStaticProvider()
	langMgr := language.NewManager()

	// Build the normalization pipeline. The AI strategy is optional and
	// only joins when a provider key is configured; the fuzzy strategy is
	// always the last resort.
	var strategies []extract.Strategy
	extractorClient := newExtractorClient(extractorProvider, geminiAPIKey, deepseekAPIKey)
	if extractorClient != nil {
		strategies = append(strategies, extract.NewAIStrategy(extractorClient))
		log.Printf("✅ AI extraction enabled (provider: %s)", extractorProvider)
	} else {
		log.Println("No extractor API key configured, using fuzzy matching only")
	}
	strategies = append(strategies, extract.NewFuzzyStrategy())
	pipeline := extract.NewPipeline(strategies...)

	// Initialize checkup engine (shared between REST and WebSocket)
	engine := checkup.NewEngine(db, catalogLoader, pipeline, envProvider, langMgr)

	openfdaClient := openfda.NewClient(openfda.Config{})

	// Initialize handlers
	authHandler := api.NewAuthHandler(db, jwtSecret)
	checkupHandler := api.NewCheckupHandler(engine)
	historyHandler := api.NewHistoryHandler(db)
	environmentHandler := api.NewEnvironmentHandler(envProvider)
	drugHandler := api.NewDrugHandler(openfdaClient)
	adminHandler := api.NewAdminHandler(catalogLoader)
	wsHandler := ws.NewCheckupHandler(engine, jwtSecret)

	// Setup Gin router
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	// Global rate limiting (100 req/min per IP, burst of 200)
	router.Use(middleware.PerIP(100.0/60.0, 200))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	// Auth routes (public)
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.JWTAuth(jwtSecret), authHandler.Me)
	}

	// Checkup routes (protected + per-user rate limiting)
	checkupGroup := router.Group("/api")
	checkupGroup.Use(middleware.JWTAuth(jwtSecret))
	checkupGroup.Use(middleware.PerUser(500.0/3600.0, 100)) // 500/hour per user
	{
		checkupGroup.POST("/checkup", checkupHandler.Submit)
		checkupGroup.GET("/history", historyHandler.GetHistory)
		checkupGroup.GET("/stats", historyHandler.GetStats)
		checkupGroup.GET("/drugs/:name", drugHandler.GetLabel)
	}

	// Environment lookup (public, read-only)
	router.GET("/api/environment", environmentHandler.Lookup)

	// Admin routes (protected + admin only)
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.JWTAuth(jwtSecret))
	adminGroup.Use(middleware.RequireAdmin())
	{
		adminGroup.GET("/catalog", adminHandler.GetCatalogSummary)
	}

	// WebSocket checkup route (protected via query param/header)
	router.GET("/ws/checkup", wsHandler.HandleCheckup)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%s", port)
		log.Printf("📝 API endpoints:")
		log.Printf("   POST   /api/auth/register")
		log.Printf("   POST   /api/auth/login")
		log.Printf("   GET    /api/auth/me")
		log.Printf("   POST   /api/checkup")
		log.Printf("   GET    /api/history")
		log.Printf("   GET    /api/stats")
		log.Printf("   GET    /api/drugs/:name")
		log.Printf("   GET    /api/environment")
		log.Printf("   GET    /api/admin/catalog")
		log.Printf("   WS     /ws/checkup")
		log.Printf("")
		log.Printf("Press Ctrl+C to stop")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// newExtractorClient picks the LLM provider for symptom extraction. Returns
// nil when no key is configured, which disables the AI strategy entirely.
func newExtractorClient(provider, geminiKey, deepseekKey string) llm.Client {
	switch provider {
	case "deepseek":
		if deepseekKey != "" {
			return deepseek.NewHTTPClient(deepseek.Config{APIKey: deepseekKey})
		}
	default:
		if geminiKey != "" {
			return gemini.NewHTTPClient(gemini.Config{APIKey: geminiKey})
		}
		// Fall back to DeepSeek if only that key is present
		if deepseekKey != "" {
			return deepseek.NewHTTPClient(deepseek.Config{APIKey: deepseekKey})
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
