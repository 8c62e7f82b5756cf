package repository

import (
	"github.com/brandhub/campaign-ops-backend/internal/models"

	"gorm.io/gorm"
)

type IntegrationRepository struct {
	db *gorm.DB
}

func NewIntegrationRepository(db *gorm.DB) *IntegrationRepository {
	return &IntegrationRepository{db: db}
}

// Create creates a new integration record
func (r *IntegrationRepository) Create(integration *models.Integration) error {
	return r.db.Create(integration).Error
}

// GetByBrandID retrieves all integration records of a brand
func (r *IntegrationRepository) GetByBrandID(brandID string) ([]*models.Integration, error) {
	var integrations []*models.Integration
	err := r.db.Where("brand_id = ?", brandID).Order("created_at ASC").Find(&integrations).Error
	return integrations, err
}

// Delete deletes an integration record
func (r *IntegrationRepository) Delete(id string) error {
	return r.db.Delete(&models.Integration{}, "id = ?", id).Error
}
