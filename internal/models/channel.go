package models

import (
	"time"
)

// Platform groups distribution channels (e.g. Meta owns Instagram/Facebook).
type Platform struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(100)"`
	Name string `json:"name" gorm:"type:varchar(255);not null"`
	Slug string `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Channels []Channel `json:"channels,omitempty" gorm:"foreignKey:PlatformID;references:ID"`
}

// TableName specifies the table name for the Platform model
func (Platform) TableName() string {
	return "platforms"
}

// Channel is a reference-catalog entry: one distribution channel under a
// platform. Read-heavy; mutated only by the catalog seed.
type Channel struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(100)"`
	PlatformID string `json:"platform_id" gorm:"not null;index;type:varchar(100)"`
	Name       string `json:"name" gorm:"type:varchar(255);not null"`
	Slug       string `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	IconURL    string `json:"icon_url" gorm:"type:text"`
	Color      string `json:"color" gorm:"type:varchar(20)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Platform Platform `json:"platform,omitempty" gorm:"foreignKey:PlatformID;references:ID"`
}

// TableName specifies the table name for the Channel model
func (Channel) TableName() string {
	return "channels"
}

// CampaignChannel is the join record between a campaign node and a channel.
// The composite primary key keeps the pair unique, which is what makes
// toggle idempotent.
type CampaignChannel struct {
	CampaignID string    `json:"campaign_id" gorm:"primaryKey;type:uuid"`
	ChannelID  string    `json:"channel_id" gorm:"primaryKey;type:varchar(100)"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for the CampaignChannel model
func (CampaignChannel) TableName() string {
	return "campaign_channels"
}

// SetChannelsRequest replaces a campaign's channel set in full.
type SetChannelsRequest struct {
	ChannelIDs []string `json:"channel_ids" binding:"required" example:"instagram,tiktok"`
}

// ChannelResponse represents the response for channel reads
type ChannelResponse struct {
	ID         string `json:"id" example:"instagram"`
	PlatformID string `json:"platform_id" example:"meta"`
	Name       string `json:"name" example:"Instagram"`
	Slug       string `json:"slug" example:"instagram"`
	IconURL    string `json:"icon_url" example:"https://cdn.example.com/ig.svg"`
	Color      string `json:"color" example:"#E1306C"`
}
