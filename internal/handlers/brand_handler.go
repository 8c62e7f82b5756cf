package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brandhub/campaign-ops-backend/internal/models"
	"github.com/brandhub/campaign-ops-backend/internal/services"
)

type BrandHandler struct {
	brandService *services.BrandService
}

func NewBrandHandler(db *gorm.DB, events *services.EventService) *BrandHandler {
	return &BrandHandler{
		brandService: services.NewBrandService(db, events),
	}
}

// CreateBrand godoc
// @Summary Create a new brand
// @Description Create a brand with a globally unique slug derived from its name
// @Tags brands
// @Accept json
// @Produce json
// @Param request body models.CreateBrandRequest true "Create brand request"
// @Success 201 {object} models.BrandResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/brands [post]
func (h *BrandHandler) CreateBrand(c *gin.Context) {
	var req models.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.brandService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetBrands godoc
// @Summary List brands
// @Description List all brands with their campaign counts
// @Tags brands
// @Produce json
// @Success 200 {array} models.BrandResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/brands [get]
func (h *BrandHandler) GetBrands(c *gin.Context) {
	brands, err := h.brandService.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, brands)
}

// GetBrand godoc
// @Summary Get brand by id or slug
// @Tags brands
// @Produce json
// @Param ref path string true "Brand id or slug"
// @Success 200 {object} models.BrandResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/brands/{ref} [get]
func (h *BrandHandler) GetBrand(c *gin.Context) {
	response, err := h.brandService.Get(c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateBrand godoc
// @Summary Update a brand
// @Description Partial update; setting status to "archive"/"active" archives or restores the brand
// @Tags brands
// @Accept json
// @Produce json
// @Param ref path string true "Brand id or slug"
// @Param request body models.UpdateBrandRequest true "Update brand request"
// @Success 200 {object} models.BrandResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/brands/{ref} [put]
func (h *BrandHandler) UpdateBrand(c *gin.Context) {
	var req models.UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.brandService.Update(c.Param("ref"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteBrand godoc
// @Summary Archive or permanently delete a brand
// @Description Without the permanent flag the brand is archived (soft). With permanent=true the brand and everything referencing it are removed in one transaction; brands with active campaigns are refused.
// @Tags brands
// @Produce json
// @Param ref path string true "Brand id or slug"
// @Param permanent query bool false "Permanently delete instead of archiving"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/brands/{ref} [delete]
func (h *BrandHandler) DeleteBrand(c *gin.Context) {
	ref := c.Param("ref")

	if c.Query("permanent") != "true" {
		response, err := h.brandService.Archive(ref)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Brand archived", "brand": response})
		return
	}

	if err := h.brandService.PermanentDelete(ref); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Brand permanently deleted"})
}

// RestoreBrand godoc
// @Summary Restore an archived brand
// @Tags brands
// @Produce json
// @Param ref path string true "Brand id or slug"
// @Success 200 {object} models.BrandResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/brands/{ref}/restore [post]
func (h *BrandHandler) RestoreBrand(c *gin.Context) {
	response, err := h.brandService.Restore(c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
