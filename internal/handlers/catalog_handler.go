package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brandhub/campaign-ops-backend/internal/services"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{
		catalogService: services.NewCatalogService(db),
	}
}

// GetPlatforms godoc
// @Summary List platforms with their channels
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Platform
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/platforms [get]
func (h *CatalogHandler) GetPlatforms(c *gin.Context) {
	platforms, err := h.catalogService.GetPlatforms()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, platforms)
}

// GetChannels godoc
// @Summary List the channel catalog
// @Tags catalog
// @Produce json
// @Success 200 {array} models.ChannelResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/channels [get]
func (h *CatalogHandler) GetChannels(c *gin.Context) {
	channels, err := h.catalogService.GetChannels()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, channels)
}

// GetMetrics godoc
// @Summary List the metric catalog
// @Description Optionally narrowed to metrics usable with one channel; cross-platform metrics are always included
// @Tags catalog
// @Produce json
// @Param channel_id query string false "Channel id"
// @Success 200 {array} models.MetricResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/metrics [get]
func (h *CatalogHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.catalogService.GetMetrics(c.Query("channel_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}
