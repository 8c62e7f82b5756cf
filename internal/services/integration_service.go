package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/brandhub/campaign-ops-backend/internal/apperrors"
	"github.com/brandhub/campaign-ops-backend/internal/database/repository"
	"github.com/brandhub/campaign-ops-backend/internal/models"
)

// IntegrationService manages the brand-scoped ad-platform connection
// records. The actual OAuth handshake happens in an external collaborator;
// this service only keeps the records the brand cascade must clear.
type IntegrationService struct {
	integrationRepo *repository.IntegrationRepository
	brandRepo       *repository.BrandRepository
}

func NewIntegrationService(db *gorm.DB) *IntegrationService {
	return &IntegrationService{
		integrationRepo: repository.NewIntegrationRepository(db),
		brandRepo:       repository.NewBrandRepository(db),
	}
}

// ListByBrand returns a brand's integration records.
func (s *IntegrationService) ListByBrand(brandRef string) ([]*models.Integration, error) {
	brand, err := s.brandRepo.FindByRef(brandRef)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("brand %q not found", brandRef)
		}
		return nil, fmt.Errorf("failed to load brand: %w", err)
	}

	integrations, err := s.integrationRepo.GetByBrandID(brand.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list integrations: %w", err)
	}
	return integrations, nil
}

// Connect records a new platform connection for a brand.
func (s *IntegrationService) Connect(brandRef string, integration *models.Integration) (*models.Integration, error) {
	brand, err := s.brandRepo.FindByRef(brandRef)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("brand %q not found", brandRef)
		}
		return nil, fmt.Errorf("failed to load brand: %w", err)
	}
	if integration.PlatformID == "" {
		return nil, apperrors.Validation("platform_id is required")
	}

	integration.BrandID = brand.ID
	if integration.Status == "" {
		integration.Status = "connected"
	}
	if err := s.integrationRepo.Create(integration); err != nil {
		return nil, fmt.Errorf("failed to create integration: %w", err)
	}
	return integration, nil
}

// Disconnect removes one integration record.
func (s *IntegrationService) Disconnect(id string) error {
	if err := s.integrationRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete integration: %w", err)
	}
	return nil
}
