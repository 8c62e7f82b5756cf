package repository

import (
	"time"

	"github.com/brandhub/campaign-ops-backend/internal/models"

	"gorm.io/gorm"
)

type APIKeyRepository struct {
	db *gorm.DB
}

func NewAPIKeyRepository(db *gorm.DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Create creates a new API key record
func (r *APIKeyRepository) Create(key *models.APIKey) error {
	return r.db.Create(key).Error
}

// GetByPrefix retrieves candidate keys sharing a prefix; the caller compares
// digests to find the match.
func (r *APIKeyRepository) GetByPrefix(prefix string) ([]*models.APIKey, error) {
	var keys []*models.APIKey
	err := r.db.Where("key_prefix = ?", prefix).Find(&keys).Error
	return keys, err
}

// Delete deletes an API key
func (r *APIKeyRepository) Delete(id string) error {
	return r.db.Delete(&models.APIKey{}, "id = ?", id).Error
}

// TouchLastUsed stamps the key's last successful use
func (r *APIKeyRepository) TouchLastUsed(id string) error {
	now := time.Now()
	return r.db.Model(&models.APIKey{}).Where("id = ?", id).Update("last_used_at", &now).Error
}
