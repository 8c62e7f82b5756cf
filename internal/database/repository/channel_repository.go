package repository

import (
	"github.com/brandhub/campaign-ops-backend/internal/models"

	"gorm.io/gorm"
)

type ChannelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

// GetAll retrieves the full channel catalog
func (r *ChannelRepository) GetAll() ([]*models.Channel, error) {
	var channels []*models.Channel
	err := r.db.Order("platform_id ASC, name ASC").Find(&channels).Error
	return channels, err
}

// GetAllPlatforms retrieves the platform catalog with channels preloaded
func (r *ChannelRepository) GetAllPlatforms() ([]*models.Platform, error) {
	var platforms []*models.Platform
	err := r.db.Preload("Channels").Order("name ASC").Find(&platforms).Error
	return platforms, err
}

// GetByIDs retrieves channels by id; callers compare lengths to detect
// unknown ids.
func (r *ChannelRepository) GetByIDs(ids []string) ([]*models.Channel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var channels []*models.Channel
	err := r.db.Where("id IN ?", ids).Find(&channels).Error
	return channels, err
}

// GetForCampaign retrieves the channels linked to a campaign
func (r *ChannelRepository) GetForCampaign(campaignID string) ([]*models.Channel, error) {
	var channels []*models.Channel
	err := r.db.
		Joins("JOIN campaign_channels cc ON cc.channel_id = channels.id").
		Where("cc.campaign_id = ?", campaignID).
		Order("channels.name ASC").
		Find(&channels).Error
	return channels, err
}

// GetLinkedIDs retrieves only the linked channel ids for a campaign
func (r *ChannelRepository) GetLinkedIDs(campaignID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.CampaignChannel{}).
		Where("campaign_id = ?", campaignID).
		Pluck("channel_id", &ids).Error
	return ids, err
}

// ReplaceLinks swaps a campaign's channel set for the requested one inside
// the supplied transaction handle (delete-all then bulk-insert).
func (r *ChannelRepository) ReplaceLinks(tx *gorm.DB, campaignID string, channelIDs []string) error {
	if err := tx.Where("campaign_id = ?", campaignID).Delete(&models.CampaignChannel{}).Error; err != nil {
		return err
	}
	if len(channelIDs) == 0 {
		return nil
	}
	links := make([]models.CampaignChannel, 0, len(channelIDs))
	for _, channelID := range channelIDs {
		links = append(links, models.CampaignChannel{CampaignID: campaignID, ChannelID: channelID})
	}
	return tx.Create(&links).Error
}
