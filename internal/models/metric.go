package models

import (
	"time"
)

// Metric value types and input modes.
const (
	MetricTypeNumber = "number"
	MetricTypeText   = "text"

	MetricInputModeInput    = "input"
	MetricInputModeComputed = "computed"

	// MetricScopeCrossPlatform marks a metric valid for every channel.
	MetricScopeCrossPlatform = ""
)

// Metric is a reference-catalog entry describing one reportable KPI. A metric
// is either cross-platform (empty ChannelID) or scoped to a single channel.
type Metric struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(100)"`
	Label     string `json:"label" gorm:"type:varchar(255);not null"`
	Type      string `json:"type" gorm:"type:varchar(20);not null;default:'number'"`
	ChannelID string `json:"channel_id" gorm:"type:varchar(100);index"`
	InputMode string `json:"input_mode" gorm:"type:varchar(20);not null;default:'input'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Metric model
func (Metric) TableName() string {
	return "metrics"
}

// IsCrossPlatform reports whether the metric applies to every channel.
func (m *Metric) IsCrossPlatform() bool {
	return m.ChannelID == MetricScopeCrossPlatform
}

// CampaignMetric is one row of the external metrics feed: a recorded value
// for a campaign, scoped to the brand so the brand cascade can clear them.
// The rollup reads the "spend" key from here.
type CampaignMetric struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BrandID    string    `json:"brand_id" gorm:"not null;index;type:uuid"`
	CampaignID string    `json:"campaign_id" gorm:"not null;index;type:uuid"`
	Key        string    `json:"key" gorm:"type:varchar(100);not null;index"`
	Value      float64   `json:"value" gorm:"not null;default:0"`
	RecordedAt time.Time `json:"recorded_at" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the CampaignMetric model
func (CampaignMetric) TableName() string {
	return "campaign_metrics"
}

// MetricKeySpend is the feed key the budget rollup sources "spent" from.
const MetricKeySpend = "spend"

// MetricResponse represents the response for metric catalog reads
type MetricResponse struct {
	ID        string `json:"id" example:"ig-reach"`
	Label     string `json:"label" example:"Reach"`
	Type      string `json:"type" example:"number"`
	ChannelID string `json:"channel_id" example:"instagram"`
	InputMode string `json:"input_mode" example:"input"`
}
