package repository

import (
	"errors"

	"github.com/brandhub/campaign-ops-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrAmbiguousSlug is returned when a slug-only lookup matches campaigns in
// more than one brand; callers must use the campaign id instead.
var ErrAmbiguousSlug = errors.New("slug matches campaigns in multiple brands")

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create creates a new campaign node
func (r *CampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// FindByRef resolves a campaign by primary id first, slug second. Slugs are
// unique per brand, not globally, so a bare slug held by several brands is
// ambiguous and reported as such.
func (r *CampaignRepository) FindByRef(ref string) (*models.Campaign, error) {
	var campaign models.Campaign
	if _, err := uuid.Parse(ref); err == nil {
		err := r.db.Preload("Channels").First(&campaign, "id = ?", ref).Error
		if err == nil {
			return &campaign, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}
	var matches []models.Campaign
	if err := r.db.Preload("Channels").Where("slug = ?", ref).Limit(2).Find(&matches).Error; err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, gorm.ErrRecordNotFound
	case 1:
		return &matches[0], nil
	}
	return nil, ErrAmbiguousSlug
}

// GetByID retrieves a campaign by ID with its channels preloaded
func (r *CampaignRepository) GetByID(id string) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.Preload("Channels").First(&campaign, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

// GetChildren retrieves the sub-campaigns of an umbrella node
func (r *CampaignRepository) GetChildren(parentID string) ([]*models.Campaign, error) {
	var children []*models.Campaign
	err := r.db.Where("parent_id = ?", parentID).Find(&children).Error
	return children, err
}

// ListByBrand retrieves the flat campaign list of a brand (umbrella and sub
// nodes alike); callers rebuild the tree by grouping on parent_id.
func (r *CampaignRepository) ListByBrand(brandID string, filter models.CampaignListFilter, offset, limit int) ([]*models.Campaign, int64, error) {
	query := r.db.Model(&models.Campaign{}).Where("brand_id = ?", brandID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.UmbrellaOnly {
		query = query.Where("parent_id IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var campaigns []*models.Campaign
	err := query.Preload("Channels").
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&campaigns).Error
	return campaigns, total, err
}

// SlugExistsInBrand reports whether a campaign slug is taken within a brand,
// ignoring the campaign identified by excludeID (used on rename).
func (r *CampaignRepository) SlugExistsInBrand(brandID, slug, excludeID string) (bool, error) {
	query := r.db.Model(&models.Campaign{}).
		Where("brand_id = ? AND slug = ?", brandID, slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// CountByBrand counts all campaign nodes of a brand
func (r *CampaignRepository) CountByBrand(brandID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Campaign{}).Where("brand_id = ?", brandID).Count(&count).Error
	return count, err
}

// CountActiveByBrand counts campaigns blocking a permanent brand delete
func (r *CampaignRepository) CountActiveByBrand(brandID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Campaign{}).
		Where("brand_id = ? AND status = ?", brandID, models.CampaignStatusActive).
		Count(&count).Error
	return count, err
}

// Update updates a campaign
func (r *CampaignRepository) Update(campaign *models.Campaign) error {
	return r.db.Save(campaign).Error
}
