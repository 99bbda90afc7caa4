// @title           RaceShot Backend API
// @version         1.0.0
// @description     Backend API for a race photo marketplace. Photographers upload event photos that are tagged with bib numbers by a vision model; racers search and buy photos through Stripe Checkout with a platform-fee split to the photographer's connected account.

// @contact.name   API Support
// @contact.email  support@example.com

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"log"
	"net/http"
	"net/url"

	"raceshot-backend/docs"
	"raceshot-backend/internal/bibdetect"
	"raceshot-backend/internal/config"
	"raceshot-backend/internal/database"
	"raceshot-backend/internal/handlers"
	"raceshot-backend/internal/middleware"
	"raceshot-backend/internal/payments"
	"raceshot-backend/internal/services"
	"raceshot-backend/internal/supabase"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load .env in development; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if baseURL, err := url.Parse(cfg.BaseURL); err == nil && baseURL.Host != "" {
		docs.SwaggerInfo.Host = baseURL.Host
		if baseURL.Scheme == "https" {
			docs.SwaggerInfo.Schemes = []string{"https", "http"}
		} else {
			docs.SwaggerInfo.Schemes = []string{"http", "https"}
		}
	}

	// Run migrations before anything touches the schema.
	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		log.Fatalf("Migration failed: %v", err)
	}
	migrator.Close()

	// Clients
	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)
	paymentsService := payments.NewService(cfg.StripeSecretKey, cfg.BaseURL)
	bibClient := bibdetect.NewClient(cfg.GoogleAIBaseURL, cfg.GoogleAIAPIKey, cfg.GoogleAIModel)
	photoService := services.NewPhotoService(bibClient, dbClient, storageClient)

	// Handlers
	checkoutHandler := handlers.NewCheckoutHandler(dbClient, paymentsService)
	connectHandler := handlers.NewConnectHandler(dbClient, paymentsService)
	webhookHandler := handlers.NewWebhookHandler(cfg, dbClient, realtimeClient)
	profilesHandler := handlers.NewProfilesHandler(dbClient)
	photosHandler := handlers.NewPhotosHandler(photoService, dbClient)
	purchasesHandler := handlers.NewPurchasesHandler(dbClient)
	priceTiersHandler := handlers.NewPriceTiersHandler(dbClient)
	clientConfigHandler := handlers.NewClientConfigHandler(cfg)

	// Router
	router := gin.Default()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// Public API
	public := router.Group("/api/v1")
	public.GET("/config", clientConfigHandler.GetClientConfig)
	public.GET("/photos", photosHandler.ListPhotos)
	public.GET("/photos/:photo_id", photosHandler.GetPhoto)
	public.GET("/price-tiers", priceTiersHandler.ListPriceTiers)

	// Authenticated API
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))
	api.POST("/checkout/session", checkoutHandler.CreateSession)
	api.POST("/connect/account", connectHandler.CreateAccount)
	api.GET("/profiles/me", profilesHandler.GetMyProfile)
	api.POST("/photos", photosHandler.Upload)
	api.GET("/purchases", purchasesHandler.ListMyPurchases)

	// Webhook (no auth, verified by Stripe signature)
	router.POST("/api/v1/webhooks/stripe", webhookHandler.HandleStripeWebhook)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
