package models

import (
	"time"
)

// Campaign status values. The transition table lives in
// services.TransitionPolicy; the column itself accepts any of these.
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
)

// Campaign represents one node of the two-level campaign tree. An umbrella
// campaign has a nil ParentID; a service sub-campaign points at its umbrella.
type Campaign struct {
	ID       string  `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BrandID  string  `json:"brand_id" gorm:"not null;type:uuid;index:idx_campaigns_brand_slug,unique,priority:1"`
	ParentID *string `json:"parent_id" gorm:"index;type:uuid"`
	Name     string  `json:"name" gorm:"type:varchar(255);not null"`
	Slug     string  `json:"slug" gorm:"type:varchar(255);not null;index:idx_campaigns_brand_slug,unique,priority:2"`

	// Catalog references (service/sub-service/objective are sub-campaign only)
	MarketID         string `json:"market_id" gorm:"type:varchar(100)"`
	ServiceTypeID    string `json:"service_type_id" gorm:"type:varchar(100)"`
	SubServiceTypeID string `json:"sub_service_type_id" gorm:"type:varchar(100)"`
	ObjectiveID      string `json:"objective_id" gorm:"type:varchar(100)"`

	Description   string     `json:"description" gorm:"type:text"`
	StartDate     *time.Time `json:"start_date" gorm:"index"`
	EndDate       *time.Time `json:"end_date" gorm:"index"`
	BudgetPlanned float64    `json:"budget_planned" gorm:"not null;default:0"`
	Status        string     `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`

	// Configuration document, stored verbatim (see models.ConfigDocument)
	Config string `json:"config" gorm:"type:jsonb;default:'{}'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Brand    Brand      `json:"brand,omitempty" gorm:"foreignKey:BrandID;references:ID;constraint:OnDelete:CASCADE"`
	Parent   *Campaign  `json:"parent,omitempty" gorm:"foreignKey:ParentID;references:ID"`
	Children []Campaign `json:"children,omitempty" gorm:"foreignKey:ParentID;references:ID"`
	Channels []Channel  `json:"channels,omitempty" gorm:"many2many:campaign_channels"`
}

// TableName specifies the table name for the Campaign model
func (Campaign) TableName() string {
	return "campaigns"
}

// IsUmbrella reports whether the node is a top-level umbrella campaign.
func (c *Campaign) IsUmbrella() bool {
	return c.ParentID == nil
}

// CreateUmbrellaCampaignRequest represents the request to create a new
// top-level campaign under a brand.
type CreateUmbrellaCampaignRequest struct {
	BrandID     string     `json:"brand_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name        string     `json:"name" binding:"required" example:"Q1 Launch"`
	MarketID    string     `json:"market_id" example:"de"`
	Description string     `json:"description" example:"Spring product launch"`
	StartDate   *time.Time `json:"start_date" example:"2025-01-01T00:00:00Z"`
	EndDate     *time.Time `json:"end_date" example:"2025-03-31T23:59:59Z"`
}

// CreateSubCampaignRequest represents the request to create a service
// sub-campaign under an umbrella campaign. The name is composed server-side
// from the parent name and the service labels.
type CreateSubCampaignRequest struct {
	ServiceTypeID    string  `json:"service_type_id" binding:"required" example:"influencer-marketing"`
	SubServiceTypeID string  `json:"sub_service_type_id" example:"seeding"`
	ObjectiveID      string  `json:"objective_id" binding:"required" example:"awareness"`
	BudgetPlanned    float64 `json:"budget_planned" example:"25000"`
}

// UpdateCampaignRequest represents a partial campaign update. Only the
// whitelisted fields below are mutable; a name change regenerates the slug.
type UpdateCampaignRequest struct {
	Name          *string         `json:"name" example:"Q1 Launch (revised)"`
	Status        *string         `json:"status" example:"paused"`
	Description   *string         `json:"description" example:"Updated scope"`
	MarketID      *string         `json:"market_id" example:"at"`
	ObjectiveID   *string         `json:"objective_id" example:"conversion"`
	StartDate     *time.Time      `json:"start_date" example:"2025-02-01T00:00:00Z"`
	EndDate       *time.Time      `json:"end_date" example:"2025-04-30T23:59:59Z"`
	BudgetPlanned *float64        `json:"budget_planned" example:"30000"`
	Config        *ConfigDocument `json:"config"`
}

// CampaignResponse represents the response for campaign operations
type CampaignResponse struct {
	ID               string          `json:"id" example:"550e8400-e29b-41d4-a716-446655440010"`
	BrandID          string          `json:"brand_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ParentID         *string         `json:"parent_id"`
	Name             string          `json:"name" example:"Q1 Launch"`
	Slug             string          `json:"slug" example:"q1-launch"`
	MarketID         string          `json:"market_id" example:"de"`
	ServiceTypeID    string          `json:"service_type_id" example:"influencer-marketing"`
	SubServiceTypeID string          `json:"sub_service_type_id" example:"seeding"`
	ObjectiveID      string          `json:"objective_id" example:"awareness"`
	Description      string          `json:"description" example:"Spring product launch"`
	StartDate        *time.Time      `json:"start_date"`
	EndDate          *time.Time      `json:"end_date"`
	BudgetPlanned    float64         `json:"budget_planned" example:"25000"`
	Status           string          `json:"status" example:"active"`
	Config           *ConfigDocument `json:"config,omitempty"`
	ChannelIDs       []string        `json:"channel_ids"`
	CreatedAt        string          `json:"created_at" example:"2025-01-09T10:30:00Z"`
	UpdatedAt        string          `json:"updated_at" example:"2025-01-09T10:30:00Z"`
}

// CampaignListFilter narrows ListByBrand results.
type CampaignListFilter struct {
	Status       string `form:"status" example:"active"`
	UmbrellaOnly bool   `form:"umbrella_only"`
}

// RollupResponse is the derived budget aggregate for one node. Umbrella
// nodes aggregate over their whole subtree.
type RollupResponse struct {
	CampaignID      string  `json:"campaign_id" example:"550e8400-e29b-41d4-a716-446655440010"`
	BudgetPlanned   float64 `json:"budget_planned" example:"60000"`
	BudgetSpent     float64 `json:"budget_spent" example:"15000"`
	ProgressPercent float64 `json:"progress_percent" example:"25"`
}
