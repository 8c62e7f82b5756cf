package repository

import (
	"github.com/brandhub/campaign-ops-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BrandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) *BrandRepository {
	return &BrandRepository{db: db}
}

// Create creates a new brand
func (r *BrandRepository) Create(brand *models.Brand) error {
	return r.db.Create(brand).Error
}

// FindByRef resolves a brand by primary id first, slug second. Refs that are
// not valid UUIDs skip straight to the slug lookup.
func (r *BrandRepository) FindByRef(ref string) (*models.Brand, error) {
	var brand models.Brand
	if _, err := uuid.Parse(ref); err == nil {
		err := r.db.First(&brand, "id = ?", ref).Error
		if err == nil {
			return &brand, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}
	if err := r.db.First(&brand, "slug = ?", ref).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// GetByID retrieves a brand by ID
func (r *BrandRepository) GetByID(id string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.First(&brand, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// GetAll retrieves all brands ordered by name
func (r *BrandRepository) GetAll() ([]*models.Brand, error) {
	var brands []*models.Brand
	err := r.db.Order("name ASC").Find(&brands).Error
	return brands, err
}

// SlugExists reports whether a brand slug is already taken (global scope)
func (r *BrandRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Brand{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// Update updates a brand
func (r *BrandRepository) Update(brand *models.Brand) error {
	return r.db.Save(brand).Error
}
