package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brandhub/campaign-ops-backend/internal/database/repository"
	"github.com/brandhub/campaign-ops-backend/internal/models"
)

// CatalogService serves the read-mostly reference data: platforms, channels
// and the metric catalog. The catalog is safe to share across requests.
type CatalogService struct {
	db          *gorm.DB
	channelRepo *repository.ChannelRepository
	metricRepo  *repository.MetricRepository
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		db:          db,
		channelRepo: repository.NewChannelRepository(db),
		metricRepo:  repository.NewMetricRepository(db),
	}
}

// GetPlatforms returns the platform catalog with channels
func (s *CatalogService) GetPlatforms() ([]*models.Platform, error) {
	platforms, err := s.channelRepo.GetAllPlatforms()
	if err != nil {
		return nil, fmt.Errorf("failed to get platforms: %w", err)
	}
	return platforms, nil
}

// GetChannels returns the flat channel catalog
func (s *CatalogService) GetChannels() ([]*models.ChannelResponse, error) {
	channels, err := s.channelRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get channels: %w", err)
	}

	responses := make([]*models.ChannelResponse, len(channels))
	for i, channel := range channels {
		responses[i] = toChannelResponse(channel)
	}
	return responses, nil
}

// GetMetrics returns the metric catalog; channelID narrows it to metrics
// usable with that channel (cross-platform metrics always included).
func (s *CatalogService) GetMetrics(channelID string) ([]*models.MetricResponse, error) {
	metrics, err := s.metricRepo.GetAll(channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics: %w", err)
	}

	responses := make([]*models.MetricResponse, len(metrics))
	for i, metric := range metrics {
		responses[i] = &models.MetricResponse{
			ID:        metric.ID,
			Label:     metric.Label,
			Type:      metric.Type,
			ChannelID: metric.ChannelID,
			InputMode: metric.InputMode,
		}
	}
	return responses, nil
}

func toChannelResponse(channel *models.Channel) *models.ChannelResponse {
	return &models.ChannelResponse{
		ID:         channel.ID,
		PlatformID: channel.PlatformID,
		Name:       channel.Name,
		Slug:       channel.Slug,
		IconURL:    channel.IconURL,
		Color:      channel.Color,
	}
}

// SeedDefaults upserts the built-in platform/channel/metric catalog. Run at
// startup; existing rows keep any manual edits to non-key columns untouched
// except name/label refreshes.
func (s *CatalogService) SeedDefaults() error {
	platforms := []models.Platform{
		{ID: "meta", Name: "Meta", Slug: "meta"},
		{ID: "google", Name: "Google", Slug: "google"},
		{ID: "tiktok", Name: "TikTok", Slug: "tiktok"},
		{ID: "linkedin", Name: "LinkedIn", Slug: "linkedin"},
	}
	channels := []models.Channel{
		{ID: "instagram", PlatformID: "meta", Name: "Instagram", Slug: "instagram", Color: "#E1306C"},
		{ID: "facebook", PlatformID: "meta", Name: "Facebook", Slug: "facebook", Color: "#1877F2"},
		{ID: "youtube", PlatformID: "google", Name: "YouTube", Slug: "youtube", Color: "#FF0000"},
		{ID: "google-ads", PlatformID: "google", Name: "Google Ads", Slug: "google-ads", Color: "#4285F4"},
		{ID: "tiktok", PlatformID: "tiktok", Name: "TikTok", Slug: "tiktok", Color: "#010101"},
		{ID: "linkedin", PlatformID: "linkedin", Name: "LinkedIn", Slug: "linkedin", Color: "#0A66C2"},
	}
	metrics := []models.Metric{
		{ID: "impressions", Label: "Impressions", Type: models.MetricTypeNumber, InputMode: models.MetricInputModeInput},
		{ID: "engagement-rate", Label: "Engagement Rate", Type: models.MetricTypeNumber, InputMode: models.MetricInputModeComputed},
		{ID: "clicks", Label: "Clicks", Type: models.MetricTypeNumber, InputMode: models.MetricInputModeInput},
		{ID: "sentiment", Label: "Sentiment", Type: models.MetricTypeText, InputMode: models.MetricInputModeInput},
		{ID: "ig-reach", Label: "Reach", Type: models.MetricTypeNumber, ChannelID: "instagram", InputMode: models.MetricInputModeInput},
		{ID: "ig-story-views", Label: "Story Views", Type: models.MetricTypeNumber, ChannelID: "instagram", InputMode: models.MetricInputModeInput},
		{ID: "tt-video-views", Label: "Video Views", Type: models.MetricTypeNumber, ChannelID: "tiktok", InputMode: models.MetricInputModeInput},
		{ID: "yt-watch-time", Label: "Watch Time", Type: models.MetricTypeNumber, ChannelID: "youtube", InputMode: models.MetricInputModeInput},
	}

	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}
	if err := s.db.Clauses(upsert).Create(&platforms).Error; err != nil {
		return fmt.Errorf("failed to seed platforms: %w", err)
	}
	if err := s.db.Clauses(upsert).Create(&channels).Error; err != nil {
		return fmt.Errorf("failed to seed channels: %w", err)
	}
	metricUpsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"label"}),
	}
	if err := s.db.Clauses(metricUpsert).Create(&metrics).Error; err != nil {
		return fmt.Errorf("failed to seed metrics: %w", err)
	}

	logrus.Infof("Catalog seeded: %d platforms, %d channels, %d metrics", len(platforms), len(channels), len(metrics))
	return nil
}
