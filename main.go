package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/craftlink/craftlink-api/config"
	"github.com/craftlink/craftlink-api/controllers"
	"github.com/craftlink/craftlink-api/middleware"
	"github.com/craftlink/craftlink-api/models"
	"github.com/craftlink/craftlink-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting CraftLink API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.User{}, &models.Artisan{}, &models.Booking{}, &models.Payment{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize document storage. Onboarding uploads fail without a bucket,
	// but the rest of the API keeps working.
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitDocumentService(s3Service)
	} else {
		log.Println("AWS_S3_BUCKET not set, document uploads are disabled")
	}

	router := setupRouter(cfg)

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter configures the Gin engine with all API routes
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck)
		api.GET("/health/db", databaseStatus)

		api.POST("/register", controllers.Register)
		api.POST("/login", controllers.Login)
		api.GET("/artisans", controllers.ListArtisans)
		api.POST("/payments/webhook", controllers.PaymentWebhook)

		// Booking and onboarding require a valid token
		api.POST("/book", middleware.EnsureValidToken(cfg), controllers.CreateBooking)
		api.POST("/artisan/onboard",
			middleware.EnsureValidToken(cfg),
			middleware.RequireRole(models.RoleArtisan),
			controllers.OnboardArtisan)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// databaseStatus checks database connectivity
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error"})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
