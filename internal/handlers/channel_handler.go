package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brandhub/campaign-ops-backend/internal/models"
	"github.com/brandhub/campaign-ops-backend/internal/services"
)

type ChannelHandler struct {
	channelService *services.ChannelService
}

func NewChannelHandler(db *gorm.DB) *ChannelHandler {
	return &ChannelHandler{
		channelService: services.NewChannelService(db),
	}
}

// GetCampaignChannels godoc
// @Summary Get the channels linked to a campaign
// @Tags channels
// @Produce json
// @Param ref path string true "Campaign id or slug"
// @Success 200 {array} models.ChannelResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{ref}/channels [get]
func (h *ChannelHandler) GetCampaignChannels(c *gin.Context) {
	channels, err := h.channelService.GetChannels(c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, channels)
}

// SetCampaignChannels godoc
// @Summary Replace the channel set of a campaign
// @Description Full-replace semantics: links are diffed against the request and added/removed atomically; removed channels trigger configuration cleanup unless disabled
// @Tags channels
// @Accept json
// @Produce json
// @Param ref path string true "Campaign id or slug"
// @Param request body models.SetChannelsRequest true "Channel ids"
// @Success 200 {array} models.ChannelResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{ref}/channels [put]
func (h *ChannelHandler) SetCampaignChannels(c *gin.Context) {
	var req models.SetChannelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	ref := c.Param("ref")
	if err := h.channelService.SetChannels(ref, req.ChannelIDs); err != nil {
		respondError(c, err)
		return
	}

	channels, err := h.channelService.GetChannels(ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, channels)
}

// ToggleCampaignChannel godoc
// @Summary Toggle one channel on a campaign
// @Description Adds the channel when absent, removes it when present; toggling twice is a no-op
// @Tags channels
// @Produce json
// @Param ref path string true "Campaign id or slug"
// @Param channelId path string true "Channel id"
// @Success 200 {array} models.ChannelResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{ref}/channels/{channelId}/toggle [post]
func (h *ChannelHandler) ToggleCampaignChannel(c *gin.Context) {
	ref := c.Param("ref")
	if err := h.channelService.Toggle(ref, c.Param("channelId")); err != nil {
		respondError(c, err)
		return
	}

	channels, err := h.channelService.GetChannels(ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, channels)
}
