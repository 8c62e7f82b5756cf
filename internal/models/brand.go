package models

import (
	"time"
)

// Brand status values.
const (
	BrandStatusActive  = "active"
	BrandStatusArchive = "archive"
)

// Brand is the tenant-scoped root of the campaign hierarchy.
type Brand struct {
	ID       string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name     string `json:"name" gorm:"type:varchar(255);not null"`
	Slug     string `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	Industry string `json:"industry" gorm:"type:varchar(100)"`
	Status   string `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`

	// Visual identity
	PrimaryColor   string `json:"primary_color" gorm:"type:varchar(20)"`
	SecondaryColor string `json:"secondary_color" gorm:"type:varchar(20)"`
	LogoURL        string `json:"logo_url" gorm:"type:text"`

	DefaultCurrency string `json:"default_currency" gorm:"type:varchar(3);default:'EUR'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Campaigns    []Campaign    `json:"campaigns,omitempty" gorm:"foreignKey:BrandID;references:ID"`
	Integrations []Integration `json:"integrations,omitempty" gorm:"foreignKey:BrandID;references:ID"`
}

// TableName specifies the table name for the Brand model
func (Brand) TableName() string {
	return "brands"
}

// CreateBrandRequest represents the request to create a new brand
type CreateBrandRequest struct {
	Name            string `json:"name" binding:"required" example:"Acme"`
	Industry        string `json:"industry" example:"consumer_goods"`
	PrimaryColor    string `json:"primary_color" example:"#1a1a2e"`
	SecondaryColor  string `json:"secondary_color" example:"#e94560"`
	LogoURL         string `json:"logo_url" example:"https://cdn.example.com/acme.png"`
	DefaultCurrency string `json:"default_currency" example:"EUR"`
}

// UpdateBrandRequest represents a partial brand update. Nil fields are left
// untouched; Status accepts "active" or "archive" (archive/restore).
type UpdateBrandRequest struct {
	Name            *string `json:"name" example:"Acme Corp"`
	Industry        *string `json:"industry" example:"consumer_goods"`
	Status          *string `json:"status" example:"archive"`
	PrimaryColor    *string `json:"primary_color" example:"#1a1a2e"`
	SecondaryColor  *string `json:"secondary_color" example:"#e94560"`
	LogoURL         *string `json:"logo_url" example:"https://cdn.example.com/acme.png"`
	DefaultCurrency *string `json:"default_currency" example:"USD"`
}

// BrandResponse represents the response for brand operations
type BrandResponse struct {
	ID              string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name            string `json:"name" example:"Acme"`
	Slug            string `json:"slug" example:"acme"`
	Industry        string `json:"industry" example:"consumer_goods"`
	Status          string `json:"status" example:"active"`
	PrimaryColor    string `json:"primary_color" example:"#1a1a2e"`
	SecondaryColor  string `json:"secondary_color" example:"#e94560"`
	LogoURL         string `json:"logo_url" example:"https://cdn.example.com/acme.png"`
	DefaultCurrency string `json:"default_currency" example:"EUR"`
	CampaignCount   int    `json:"campaign_count" example:"4"`
	CreatedAt       string `json:"created_at" example:"2025-01-09T10:30:00Z"`
	UpdatedAt       string `json:"updated_at" example:"2025-01-09T10:30:00Z"`
}
