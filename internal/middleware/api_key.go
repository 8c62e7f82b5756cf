package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brandhub/campaign-ops-backend/internal/services/apikey"
)

// APIKeyMiddleware authenticates requests from external collaborators with
// brand-scoped API keys.
type APIKeyMiddleware struct {
	apiKeyService *apikey.Service
	required      bool
}

// NewAPIKeyMiddleware creates a new API key middleware. Enforcement is off
// unless API_KEY_REQUIRED=true, so local development works without keys.
func NewAPIKeyMiddleware(apiKeyService *apikey.Service) *APIKeyMiddleware {
	return &APIKeyMiddleware{
		apiKeyService: apiKeyService,
		required:      os.Getenv("API_KEY_REQUIRED") == "true",
	}
}

// Auth validates the "ApiKey <key>" Authorization header and sets the owning
// brand on the context.
func (m *APIKeyMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if m.required {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, "ApiKey ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must use the ApiKey scheme"})
			c.Abort()
			return
		}

		plaintext := strings.TrimPrefix(authHeader, "ApiKey ")
		key, err := m.apiKeyService.Validate(plaintext)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			c.Abort()
			return
		}

		c.Set("brand_id", key.BrandID)
		c.Set("api_key_id", key.ID)
		c.Next()
	}
}
