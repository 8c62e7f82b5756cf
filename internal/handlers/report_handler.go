package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brandhub/campaign-ops-backend/internal/services/excel"
)

type ReportHandler struct {
	excelService *excel.Service
}

func NewReportHandler(db *gorm.DB, exportsDir string) *ReportHandler {
	return &ReportHandler{
		excelService: excel.NewService(db, exportsDir),
	}
}

// ExportBrandBudgetReport godoc
// @Summary Download a brand budget report as an Excel file
// @Description One row per campaign node; umbrella rows carry their subtree rollup
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param ref path string true "Brand id or slug"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/brands/{ref}/report [get]
func (h *ReportHandler) ExportBrandBudgetReport(c *gin.Context) {
	result, err := h.excelService.ExportBrandBudgetReport(c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.FileAttachment(result.FilePath, result.Filename)
}
