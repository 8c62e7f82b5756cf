package repository

import (
	"github.com/brandhub/campaign-ops-backend/internal/models"

	"gorm.io/gorm"
)

type MetricRepository struct {
	db *gorm.DB
}

func NewMetricRepository(db *gorm.DB) *MetricRepository {
	return &MetricRepository{db: db}
}

// GetAll retrieves the metric catalog, optionally narrowed to metrics usable
// with a channel (its own plus cross-platform ones).
func (r *MetricRepository) GetAll(channelID string) ([]*models.Metric, error) {
	query := r.db.Order("label ASC")
	if channelID != "" {
		query = query.Where("channel_id = ? OR channel_id = ''", channelID)
	}
	var metrics []*models.Metric
	err := query.Find(&metrics).Error
	return metrics, err
}

// GetByIDs retrieves metrics keyed by id for validation lookups
func (r *MetricRepository) GetByIDs(ids []string) (map[string]models.Metric, error) {
	result := make(map[string]models.Metric, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var metrics []models.Metric
	if err := r.db.Where("id IN ?", ids).Find(&metrics).Error; err != nil {
		return nil, err
	}
	for _, metric := range metrics {
		result[metric.ID] = metric
	}
	return result, nil
}

// GetCatalog retrieves the whole metric catalog keyed by id
func (r *MetricRepository) GetCatalog() (map[string]models.Metric, error) {
	var metrics []models.Metric
	if err := r.db.Find(&metrics).Error; err != nil {
		return nil, err
	}
	result := make(map[string]models.Metric, len(metrics))
	for _, metric := range metrics {
		result[metric.ID] = metric
	}
	return result, nil
}

// SpendByCampaign sums the spend feed rows for the given campaigns
func (r *MetricRepository) SpendByCampaign(campaignIDs []string) (map[string]float64, error) {
	result := make(map[string]float64, len(campaignIDs))
	if len(campaignIDs) == 0 {
		return result, nil
	}

	type row struct {
		CampaignID string
		Total      float64
	}
	var rows []row
	err := r.db.Model(&models.CampaignMetric{}).
		Select("campaign_id, SUM(value) AS total").
		Where("campaign_id IN ? AND key = ?", campaignIDs, models.MetricKeySpend).
		Group("campaign_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.CampaignID] = row.Total
	}
	return result, nil
}

// RecordCampaignMetric appends one feed row
func (r *MetricRepository) RecordCampaignMetric(metric *models.CampaignMetric) error {
	return r.db.Create(metric).Error
}
