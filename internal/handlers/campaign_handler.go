package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brandhub/campaign-ops-backend/internal/database/repository"
	"github.com/brandhub/campaign-ops-backend/internal/models"
	"github.com/brandhub/campaign-ops-backend/internal/services"
	"github.com/brandhub/campaign-ops-backend/internal/utils"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	rollupService   *services.RollupService
}

func NewCampaignHandler(db *gorm.DB, policy services.TransitionPolicy, events *services.EventService) *CampaignHandler {
	campaignRepo := repository.NewCampaignRepository(db)
	metricRepo := repository.NewMetricRepository(db)

	return &CampaignHandler{
		campaignService: services.NewCampaignService(db, policy, events),
		rollupService:   services.NewRollupService(campaignRepo, metricRepo),
	}
}

// CreateUmbrellaCampaign godoc
// @Summary Create an umbrella campaign
// @Description Create a top-level campaign under a brand
// @Tags campaigns
// @Accept json
// @Produce json
// @Param request body models.CreateUmbrellaCampaignRequest true "Create campaign request"
// @Success 201 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns [post]
func (h *CampaignHandler) CreateUmbrellaCampaign(c *gin.Context) {
	var req models.CreateUmbrellaCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.CreateUmbrella(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// CreateSubCampaign godoc
// @Summary Create a service sub-campaign
// @Description Create a sub-campaign under an umbrella campaign; the name is composed from the parent name and the service labels
// @Tags campaigns
// @Accept json
// @Produce json
// @Param ref path string true "Parent campaign id or slug"
// @Param request body models.CreateSubCampaignRequest true "Create sub-campaign request"
// @Success 201 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /api/v1/campaigns/{ref}/services [post]
func (h *CampaignHandler) CreateSubCampaign(c *gin.Context) {
	var req models.CreateSubCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.CreateSubCampaign(c.Param("ref"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetCampaign godoc
// @Summary Get campaign by id or slug
// @Tags campaigns
// @Produce json
// @Param ref path string true "Campaign id or slug"
// @Success 200 {object} models.CampaignResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{ref} [get]
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	response, err := h.campaignService.Get(c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateCampaign godoc
// @Summary Update a campaign
// @Description Partial update over the mutable field whitelist; a name change regenerates the slug; configuration documents are validated against the linked channels
// @Tags campaigns
// @Accept json
// @Produce json
// @Param ref path string true "Campaign id or slug"
// @Param request body models.UpdateCampaignRequest true "Update campaign request"
// @Success 200 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{ref} [put]
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	var req models.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.Update(c.Param("ref"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteCampaign godoc
// @Summary Delete a campaign
// @Description Deleting an umbrella campaign cascades to its sub-campaigns and their channel links in one transaction
// @Tags campaigns
// @Produce json
// @Param ref path string true "Campaign id or slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{ref} [delete]
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	if err := h.campaignService.Delete(c.Param("ref")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}

// ListBrandCampaigns godoc
// @Summary List campaigns of a brand
// @Description Flat list of umbrella and sub-campaign nodes; clients rebuild the tree by grouping on parent_id
// @Tags campaigns
// @Produce json
// @Param ref path string true "Brand id or slug"
// @Param status query string false "Filter by status"
// @Param umbrella_only query bool false "Only umbrella nodes"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/brands/{ref}/campaigns [get]
func (h *CampaignHandler) ListBrandCampaigns(c *gin.Context) {
	var filter models.CampaignListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))

	campaigns, pagination, err := h.campaignService.ListByBrand(c.Param("ref"), filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"campaigns":  campaigns,
		"pagination": pagination,
	})
}

// GetCampaignRollup godoc
// @Summary Get the budget rollup for a campaign node
// @Description Umbrella nodes aggregate planned and spent budget over their sub-campaigns; spent comes from the metrics feed and defaults to 0
// @Tags campaigns
// @Produce json
// @Param ref path string true "Campaign id or slug"
// @Success 200 {object} models.RollupResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{ref}/rollup [get]
func (h *CampaignHandler) GetCampaignRollup(c *gin.Context) {
	response, err := h.rollupService.RollupForRef(c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
