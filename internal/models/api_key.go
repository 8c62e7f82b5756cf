package models

import (
	"time"
)

// APIKey is a brand-scoped credential for external collaborators. Only a
// bcrypt digest is stored; the prefix narrows the lookup on validation.
type APIKey struct {
	ID        string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BrandID   string `json:"brand_id" gorm:"not null;index;type:uuid"`
	Label     string `json:"label" gorm:"type:varchar(255)"`
	KeyPrefix string `json:"key_prefix" gorm:"type:varchar(16);not null;index"`
	KeyHash   string `json:"-" gorm:"type:varchar(255);not null"`

	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}

// TableName specifies the table name for the APIKey model
func (APIKey) TableName() string {
	return "api_keys"
}

// CreateAPIKeyRequest represents the request to issue a brand API key
type CreateAPIKeyRequest struct {
	Label string `json:"label" example:"reporting-dashboard"`
}

// APIKeyResponse is returned once on creation; Key is the only time the
// plaintext key is visible.
type APIKeyResponse struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440020"`
	BrandID   string `json:"brand_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Label     string `json:"label" example:"reporting-dashboard"`
	Key       string `json:"key,omitempty" example:"bh_1f2e3d4c..."`
	KeyPrefix string `json:"key_prefix" example:"bh_1f2e3d"`
	CreatedAt string `json:"created_at" example:"2025-01-09T10:30:00Z"`
}
