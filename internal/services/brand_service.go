package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/brandhub/campaign-ops-backend/internal/apperrors"
	"github.com/brandhub/campaign-ops-backend/internal/database/repository"
	"github.com/brandhub/campaign-ops-backend/internal/models"
	"github.com/brandhub/campaign-ops-backend/internal/utils"
)

// BrandService owns the brand lifecycle: creation, archive/restore, and the
// permanent cascading delete.
type BrandService struct {
	db           *gorm.DB
	brandRepo    *repository.BrandRepository
	campaignRepo *repository.CampaignRepository
	events       *EventService
}

func NewBrandService(db *gorm.DB, events *EventService) *BrandService {
	return &BrandService{
		db:           db,
		brandRepo:    repository.NewBrandRepository(db),
		campaignRepo: repository.NewCampaignRepository(db),
		events:       events,
	}
}

// Create creates a new brand with a globally unique slug.
func (s *BrandService) Create(req *models.CreateBrandRequest) (*models.BrandResponse, error) {
	slug, err := utils.UniqueSlug(req.Name, s.brandRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.DefaultCurrency))
	if currency == "" {
		currency = "EUR"
	}

	brand := &models.Brand{
		Name:            strings.TrimSpace(req.Name),
		Slug:            slug,
		Industry:        req.Industry,
		Status:          models.BrandStatusActive,
		PrimaryColor:    req.PrimaryColor,
		SecondaryColor:  req.SecondaryColor,
		LogoURL:         req.LogoURL,
		DefaultCurrency: currency,
	}
	if err := s.brandRepo.Create(brand); err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}
	return s.toResponse(brand, 0), nil
}

// Get resolves one brand by id or slug.
func (s *BrandService) Get(ref string) (*models.BrandResponse, error) {
	brand, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	count, err := s.campaignCount(brand.ID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(brand, count), nil
}

// GetAll lists every brand.
func (s *BrandService) GetAll() ([]*models.BrandResponse, error) {
	brands, err := s.brandRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	responses := make([]*models.BrandResponse, len(brands))
	for i, brand := range brands {
		count, err := s.campaignCount(brand.ID)
		if err != nil {
			return nil, err
		}
		responses[i] = s.toResponse(brand, count)
	}
	return responses, nil
}

// Update applies a partial brand update. A status change to "archive" or
// "active" is the archive/restore operation; a rename regenerates the slug.
func (s *BrandService) Update(ref string, req *models.UpdateBrandRequest) (*models.BrandResponse, error) {
	brand, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		switch *req.Status {
		case models.BrandStatusActive, models.BrandStatusArchive:
		default:
			return nil, apperrors.Validation("unknown brand status %q", *req.Status)
		}
	}

	previousStatus := brand.Status

	if req.Name != nil && strings.TrimSpace(*req.Name) != brand.Name {
		slug, err := utils.UniqueSlug(*req.Name, func(candidate string) (bool, error) {
			if candidate == brand.Slug {
				return false, nil
			}
			return s.brandRepo.SlugExists(candidate)
		})
		if err != nil {
			return nil, err
		}
		brand.Name = strings.TrimSpace(*req.Name)
		brand.Slug = slug
	}
	if req.Status != nil {
		brand.Status = *req.Status
	}
	if req.Industry != nil {
		brand.Industry = *req.Industry
	}
	if req.PrimaryColor != nil {
		brand.PrimaryColor = *req.PrimaryColor
	}
	if req.SecondaryColor != nil {
		brand.SecondaryColor = *req.SecondaryColor
	}
	if req.LogoURL != nil {
		brand.LogoURL = *req.LogoURL
	}
	if req.DefaultCurrency != nil {
		brand.DefaultCurrency = strings.ToUpper(strings.TrimSpace(*req.DefaultCurrency))
	}

	if err := s.brandRepo.Update(brand); err != nil {
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}

	if req.Status != nil && previousStatus != brand.Status {
		event := EventBrandRestored
		if brand.Status == models.BrandStatusArchive {
			event = EventBrandArchived
		}
		s.events.Publish(event, map[string]interface{}{"brand_id": brand.ID})
	}

	count, err := s.campaignCount(brand.ID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(brand, count), nil
}

// Archive soft-deletes a brand by flipping its status. Campaigns under it
// are untouched.
func (s *BrandService) Archive(ref string) (*models.BrandResponse, error) {
	status := models.BrandStatusArchive
	return s.Update(ref, &models.UpdateBrandRequest{Status: &status})
}

// Restore reverses an archive.
func (s *BrandService) Restore(ref string) (*models.BrandResponse, error) {
	status := models.BrandStatusActive
	return s.Update(ref, &models.UpdateBrandRequest{Status: &status})
}

// PermanentDelete removes a brand and everything that references it, in one
// transaction. Brands with active campaigns are refused with DeletionBlocked;
// those campaigns must be completed or inactivated first.
func (s *BrandService) PermanentDelete(ref string) error {
	brand, err := s.resolve(ref)
	if err != nil {
		return err
	}

	activeCount, err := s.campaignRepo.CountActiveByBrand(brand.ID)
	if err != nil {
		return fmt.Errorf("failed to count active campaigns: %w", err)
	}
	if activeCount > 0 {
		return apperrors.DeletionBlocked(
			"brand %q has %d active campaign(s); complete or inactivate them before deleting the brand permanently",
			brand.Name, activeCount)
	}

	// Dependency-ordered cascade: feed rows, integrations, channel links of
	// sub then umbrella nodes, sub-campaigns, umbrella campaigns, the brand.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("brand_id = ?", brand.ID).Delete(&models.CampaignMetric{}).Error; err != nil {
			return err
		}
		if err := tx.Where("brand_id = ?", brand.ID).Delete(&models.Integration{}).Error; err != nil {
			return err
		}
		if err := tx.Where("brand_id = ?", brand.ID).Delete(&models.APIKey{}).Error; err != nil {
			return err
		}

		subCampaigns := tx.Model(&models.Campaign{}).Select("id").
			Where("brand_id = ? AND parent_id IS NOT NULL", brand.ID)
		if err := tx.Where("campaign_id IN (?)", subCampaigns).Delete(&models.CampaignChannel{}).Error; err != nil {
			return err
		}

		umbrellas := tx.Model(&models.Campaign{}).Select("id").
			Where("brand_id = ? AND parent_id IS NULL", brand.ID)
		if err := tx.Where("campaign_id IN (?)", umbrellas).Delete(&models.CampaignChannel{}).Error; err != nil {
			return err
		}

		if err := tx.Where("brand_id = ? AND parent_id IS NOT NULL", brand.ID).Delete(&models.Campaign{}).Error; err != nil {
			return err
		}
		if err := tx.Where("brand_id = ? AND parent_id IS NULL", brand.ID).Delete(&models.Campaign{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Brand{}, "id = ?", brand.ID).Error
	})
	if err != nil {
		utils.CaptureError(err)
		return apperrors.TransactionFailure(err, "brand deletion did not complete; no changes were applied")
	}

	logrus.Infof("Permanently deleted brand %s (%s)", brand.Name, brand.ID)
	s.events.Publish(EventBrandDeleted, map[string]interface{}{
		"brand_id": brand.ID,
		"name":     brand.Name,
	})
	return nil
}

func (s *BrandService) resolve(ref string) (*models.Brand, error) {
	brand, err := s.brandRepo.FindByRef(ref)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("brand %q not found", ref)
		}
		return nil, fmt.Errorf("failed to load brand: %w", err)
	}
	return brand, nil
}

func (s *BrandService) campaignCount(brandID string) (int, error) {
	total, err := s.campaignRepo.CountByBrand(brandID)
	if err != nil {
		return 0, fmt.Errorf("failed to count campaigns: %w", err)
	}
	return int(total), nil
}

// toResponse converts a Brand model to its response DTO
func (s *BrandService) toResponse(brand *models.Brand, campaignCount int) *models.BrandResponse {
	return &models.BrandResponse{
		ID:              brand.ID,
		Name:            brand.Name,
		Slug:            brand.Slug,
		Industry:        brand.Industry,
		Status:          brand.Status,
		PrimaryColor:    brand.PrimaryColor,
		SecondaryColor:  brand.SecondaryColor,
		LogoURL:         brand.LogoURL,
		DefaultCurrency: brand.DefaultCurrency,
		CampaignCount:   campaignCount,
		CreatedAt:       brand.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       brand.UpdatedAt.Format(time.RFC3339),
	}
}
