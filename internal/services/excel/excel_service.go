package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/brandhub/campaign-ops-backend/internal/apperrors"
	"github.com/brandhub/campaign-ops-backend/internal/database/repository"
	"github.com/brandhub/campaign-ops-backend/internal/models"
	"github.com/brandhub/campaign-ops-backend/internal/services"
)

// Service exports brand budget reports to Excel files.
type Service struct {
	brandRepo    *repository.BrandRepository
	campaignRepo *repository.CampaignRepository
	metricRepo   *repository.MetricRepository
	exportsDir   string
}

// NewService creates a new Excel export service instance
func NewService(db *gorm.DB, exportsDir string) *Service {
	if _, err := os.Stat(exportsDir); os.IsNotExist(err) {
		os.MkdirAll(exportsDir, 0755)
	}

	return &Service{
		brandRepo:    repository.NewBrandRepository(db),
		campaignRepo: repository.NewCampaignRepository(db),
		metricRepo:   repository.NewMetricRepository(db),
		exportsDir:   exportsDir,
	}
}

// ExportResult contains the result of an export operation
type ExportResult struct {
	Filename string
	FilePath string
}

// ExportBrandBudgetReport writes one row per campaign node of the brand,
// umbrella rows carrying their subtree rollup, and returns the file location.
func (s *Service) ExportBrandBudgetReport(brandRef string) (*ExportResult, error) {
	brand, err := s.brandRepo.FindByRef(brandRef)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("brand %q not found", brandRef)
		}
		return nil, fmt.Errorf("failed to load brand: %w", err)
	}

	campaigns, _, err := s.campaignRepo.ListByBrand(brand.ID, models.CampaignListFilter{}, 0, 10000)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	ids := make([]string, len(campaigns))
	childrenByParent := make(map[string][]*models.Campaign)
	for i, campaign := range campaigns {
		ids[i] = campaign.ID
		if campaign.ParentID != nil {
			childrenByParent[*campaign.ParentID] = append(childrenByParent[*campaign.ParentID], campaign)
		}
	}
	spend, err := s.metricRepo.SpendByCampaign(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load spend feed: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Budget Report"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Campaign", "Type", "Status", "Currency", "Planned", "Spent", "Progress %"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetRowStyle(sheet, 1, 1, headerStyle)

	row := 2
	for _, campaign := range campaigns {
		nodeType := "umbrella"
		var rollup models.RollupResponse
		if campaign.IsUmbrella() {
			rollup = services.ComputeRollup(campaign, childrenByParent[campaign.ID], spend)
		} else {
			nodeType = "service"
			rollup = services.ComputeRollup(campaign, nil, spend)
		}

		values := []interface{}{
			campaign.Name,
			nodeType,
			campaign.Status,
			brand.DefaultCurrency,
			rollup.BudgetPlanned,
			rollup.BudgetSpent,
			rollup.ProgressPercent,
		}
		for i, value := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, value)
		}
		row++
	}

	filename := fmt.Sprintf("budget_report_%s_%d.xlsx", brand.Slug, time.Now().Unix())
	filePath := filepath.Join(s.exportsDir, filename)
	if err := f.SaveAs(filePath); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	return &ExportResult{Filename: filename, FilePath: filePath}, nil
}
