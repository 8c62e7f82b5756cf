package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brandhub/campaign-ops-backend/internal/models"
	"github.com/brandhub/campaign-ops-backend/internal/services"
)

type IntegrationHandler struct {
	integrationService *services.IntegrationService
}

func NewIntegrationHandler(db *gorm.DB) *IntegrationHandler {
	return &IntegrationHandler{
		integrationService: services.NewIntegrationService(db),
	}
}

// ListBrandIntegrations godoc
// @Summary List a brand's ad-platform integrations
// @Tags integrations
// @Produce json
// @Param ref path string true "Brand id or slug"
// @Success 200 {array} models.Integration
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/brands/{ref}/integrations [get]
func (h *IntegrationHandler) ListBrandIntegrations(c *gin.Context) {
	integrations, err := h.integrationService.ListByBrand(c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, integrations)
}

// ConnectIntegration godoc
// @Summary Record an ad-platform connection for a brand
// @Tags integrations
// @Accept json
// @Produce json
// @Param ref path string true "Brand id or slug"
// @Param request body models.Integration true "Integration record"
// @Success 201 {object} models.Integration
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/brands/{ref}/integrations [post]
func (h *IntegrationHandler) ConnectIntegration(c *gin.Context) {
	var integration models.Integration
	if err := c.ShouldBindJSON(&integration); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	created, err := h.integrationService.Connect(c.Param("ref"), &integration)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// DisconnectIntegration godoc
// @Summary Remove an integration record
// @Tags integrations
// @Produce json
// @Param id path string true "Integration id"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/integrations/{id} [delete]
func (h *IntegrationHandler) DisconnectIntegration(c *gin.Context) {
	if err := h.integrationService.Disconnect(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Integration removed"})
}
