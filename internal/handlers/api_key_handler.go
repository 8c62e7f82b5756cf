package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brandhub/campaign-ops-backend/internal/models"
	"github.com/brandhub/campaign-ops-backend/internal/services/apikey"
)

type APIKeyHandler struct {
	apiKeyService *apikey.Service
}

func NewAPIKeyHandler(db *gorm.DB) *APIKeyHandler {
	return &APIKeyHandler{
		apiKeyService: apikey.NewService(db),
	}
}

// CreateAPIKey godoc
// @Summary Issue an API key for a brand
// @Description The plaintext key is returned once and never stored
// @Tags api-keys
// @Accept json
// @Produce json
// @Param ref path string true "Brand id or slug"
// @Param request body models.CreateAPIKeyRequest true "Create API key request"
// @Success 201 {object} models.APIKeyResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/brands/{ref}/api-keys [post]
func (h *APIKeyHandler) CreateAPIKey(c *gin.Context) {
	var req models.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.apiKeyService.Generate(c.Param("ref"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// RevokeAPIKey godoc
// @Summary Revoke an API key
// @Tags api-keys
// @Produce json
// @Param id path string true "API key id"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/api-keys/{id} [delete]
func (h *APIKeyHandler) RevokeAPIKey(c *gin.Context) {
	if err := h.apiKeyService.Revoke(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "API key revoked"})
}
