package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/brandhub/campaign-ops-backend/internal/handlers"
	"github.com/brandhub/campaign-ops-backend/internal/middleware"
	"github.com/brandhub/campaign-ops-backend/internal/services"
	"github.com/brandhub/campaign-ops-backend/internal/services/apikey"
)

// SetupRouter configures the Gin router with the campaign hierarchy routes
func SetupRouter(db *gorm.DB, events *services.EventService, exportsDir string) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Create a new router
	r := gin.New()

	// Use middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Create services shared across handlers
	policy := services.TransitionPolicyFromEnv()
	apiKeyService := apikey.NewService(db)
	apiKeyMiddleware := middleware.NewAPIKeyMiddleware(apiKeyService)

	// Create handlers
	brandHandler := handlers.NewBrandHandler(db, events)
	campaignHandler := handlers.NewCampaignHandler(db, policy, events)
	channelHandler := handlers.NewChannelHandler(db)
	catalogHandler := handlers.NewCatalogHandler(db)
	integrationHandler := handlers.NewIntegrationHandler(db)
	apiKeyHandler := handlers.NewAPIKeyHandler(db)
	reportHandler := handlers.NewReportHandler(db, exportsDir)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	api := r.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		// Reference catalog (read-only, no auth)
		api.GET("/platforms", catalogHandler.GetPlatforms)
		api.GET("/channels", catalogHandler.GetChannels)
		api.GET("/metrics", catalogHandler.GetMetrics)

		// Everything below may require an API key (API_KEY_REQUIRED=true)
		protected := api.Group("")
		protected.Use(apiKeyMiddleware.Auth())

		brands := protected.Group("/brands")
		{
			brands.GET("", brandHandler.GetBrands)
			brands.POST("", brandHandler.CreateBrand)
			brands.GET("/:ref", brandHandler.GetBrand)
			brands.PUT("/:ref", brandHandler.UpdateBrand)
			brands.DELETE("/:ref", brandHandler.DeleteBrand)
			brands.POST("/:ref/restore", brandHandler.RestoreBrand)
			brands.GET("/:ref/campaigns", campaignHandler.ListBrandCampaigns)
			brands.GET("/:ref/integrations", integrationHandler.ListBrandIntegrations)
			brands.POST("/:ref/integrations", integrationHandler.ConnectIntegration)
			brands.POST("/:ref/api-keys", apiKeyHandler.CreateAPIKey)
			brands.GET("/:ref/report", reportHandler.ExportBrandBudgetReport)
		}

		campaigns := protected.Group("/campaigns")
		{
			campaigns.POST("", campaignHandler.CreateUmbrellaCampaign)
			campaigns.GET("/:ref", campaignHandler.GetCampaign)
			campaigns.PUT("/:ref", campaignHandler.UpdateCampaign)
			campaigns.DELETE("/:ref", campaignHandler.DeleteCampaign)
			campaigns.POST("/:ref/services", campaignHandler.CreateSubCampaign)
			campaigns.GET("/:ref/rollup", campaignHandler.GetCampaignRollup)
			campaigns.GET("/:ref/channels", channelHandler.GetCampaignChannels)
			campaigns.PUT("/:ref/channels", channelHandler.SetCampaignChannels)
			campaigns.POST("/:ref/channels/:channelId/toggle", channelHandler.ToggleCampaignChannel)
		}

		protected.DELETE("/integrations/:id", integrationHandler.DisconnectIntegration)
		protected.DELETE("/api-keys/:id", apiKeyHandler.RevokeAPIKey)
	}

	return r
}
