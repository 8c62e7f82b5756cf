package models

import (
	"time"
)

// Integration is a brand-scoped connection record to an external ad platform.
// The OAuth handshake itself happens outside this service; the record exists
// so brand deletion can clear everything the brand owns in one transaction.
type Integration struct {
	ID                string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BrandID           string `json:"brand_id" gorm:"not null;index;type:uuid"`
	PlatformID        string `json:"platform_id" gorm:"type:varchar(100);not null"`
	ExternalAccountID string `json:"external_account_id" gorm:"type:varchar(255)"`
	DisplayName       string `json:"display_name" gorm:"type:varchar(255)"`
	Status            string `json:"status" gorm:"type:varchar(20);not null;default:'connected'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Integration model
func (Integration) TableName() string {
	return "integrations"
}
