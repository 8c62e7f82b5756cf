package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/brandhub/campaign-ops-backend/internal/database"
	"github.com/brandhub/campaign-ops-backend/internal/router"
	"github.com/brandhub/campaign-ops-backend/internal/services"
	"github.com/brandhub/campaign-ops-backend/internal/utils"

	// Import Swagger docs
	_ "github.com/brandhub/campaign-ops-backend/docs"
)

// @title Campaign Operations API
// @version 1.0
// @description Multi-tenant campaign hierarchy backend: brands, umbrella campaigns, service sub-campaigns, channel assignments and budget rollups.

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Enter `ApiKey ` followed by a brand API key (e.g. "ApiKey bh_...")

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Configure logging
	configureLogging()

	// Initialize Sentry
	utils.InitSentry()

	// Initialize database connection
	db, err := database.InitDB()
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	// Seed the platform/channel/metric reference catalog
	catalogService := services.NewCatalogService(db)
	if err := catalogService.SeedDefaults(); err != nil {
		logrus.Warnf("Failed to seed catalog: %v", err)
	}

	// Initialize the lifecycle event publisher; the service runs without it
	events, err := services.NewEventService()
	if err != nil {
		logrus.Warnf("Failed to initialize event publisher: %v", err)
		events = nil
	} else {
		defer events.Close()
	}

	exportsDir := getEnv("EXPORTS_DIR", "./exports")

	// Initialize router
	r := router.SetupRouter(db, events, exportsDir)

	// Configure HTTP server
	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Server starting on port %s", port)
		logrus.Infof("API Health Check: http://localhost:%s/api/v1/health", port)
		logrus.Infof("Swagger UI: http://localhost:%s/swagger/index.html", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Create a deadline for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown the server
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited properly")
}

func configureLogging() {
	logLevel := getEnv("LOG_LEVEL", "info")
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
