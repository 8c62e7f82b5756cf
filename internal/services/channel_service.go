package services

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/brandhub/campaign-ops-backend/internal/apperrors"
	"github.com/brandhub/campaign-ops-backend/internal/database/repository"
	"github.com/brandhub/campaign-ops-backend/internal/models"
	"github.com/brandhub/campaign-ops-backend/internal/utils"
)

// ChannelService maintains the campaign-channel association set. Removing a
// link also scrubs the campaign's configuration document of references that
// only that channel held, unless CONFIG_CLEANUP_ON_UNLINK=false restores the
// legacy leave-stale behavior.
type ChannelService struct {
	db              *gorm.DB
	campaignRepo    *repository.CampaignRepository
	channelRepo     *repository.ChannelRepository
	metricRepo      *repository.MetricRepository
	cleanupOnUnlink bool
}

func NewChannelService(db *gorm.DB) *ChannelService {
	return &ChannelService{
		db:              db,
		campaignRepo:    repository.NewCampaignRepository(db),
		channelRepo:     repository.NewChannelRepository(db),
		metricRepo:      repository.NewMetricRepository(db),
		cleanupOnUnlink: os.Getenv("CONFIG_CLEANUP_ON_UNLINK") != "false",
	}
}

// GetChannels returns the channels linked to a campaign.
func (s *ChannelService) GetChannels(campaignRef string) ([]*models.ChannelResponse, error) {
	campaign, err := s.resolveCampaign(campaignRef)
	if err != nil {
		return nil, err
	}

	channels, err := s.channelRepo.GetForCampaign(campaign.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign channels: %w", err)
	}

	responses := make([]*models.ChannelResponse, len(channels))
	for i, channel := range channels {
		responses[i] = toChannelResponse(channel)
	}
	return responses, nil
}

// SetChannels replaces the campaign's channel set in full. The replace and
// any configuration cleanup commit atomically.
func (s *ChannelService) SetChannels(campaignRef string, channelIDs []string) error {
	campaign, err := s.resolveCampaign(campaignRef)
	if err != nil {
		return err
	}

	requested := dedupe(channelIDs)
	channels, err := s.channelRepo.GetByIDs(requested)
	if err != nil {
		return fmt.Errorf("failed to load channels: %w", err)
	}
	if len(channels) != len(requested) {
		return apperrors.Validation("one or more channel ids are unknown")
	}

	current, err := s.channelRepo.GetLinkedIDs(campaign.ID)
	if err != nil {
		return fmt.Errorf("failed to load current channel links: %w", err)
	}
	removed := difference(current, requested)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.channelRepo.ReplaceLinks(tx, campaign.ID, requested); err != nil {
			return err
		}
		return s.cleanupConfig(tx, campaign, removed)
	})
	if err != nil {
		utils.CaptureError(err)
		return apperrors.TransactionFailure(err, "channel replacement did not complete; no changes were applied")
	}
	return nil
}

// Toggle flips a single channel's membership in the campaign's channel set.
// Toggling twice restores the original set.
func (s *ChannelService) Toggle(campaignRef, channelID string) error {
	campaign, err := s.resolveCampaign(campaignRef)
	if err != nil {
		return err
	}

	channels, err := s.channelRepo.GetByIDs([]string{channelID})
	if err != nil {
		return fmt.Errorf("failed to load channel: %w", err)
	}
	if len(channels) == 0 {
		return apperrors.NotFound("channel %q not found", channelID)
	}

	current, err := s.channelRepo.GetLinkedIDs(campaign.ID)
	if err != nil {
		return fmt.Errorf("failed to load current channel links: %w", err)
	}

	next := make([]string, 0, len(current)+1)
	linked := false
	for _, id := range current {
		if id == channelID {
			linked = true
			continue
		}
		next = append(next, id)
	}
	if !linked {
		next = append(next, channelID)
	}

	var removed []string
	if linked {
		removed = []string{channelID}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.channelRepo.ReplaceLinks(tx, campaign.ID, next); err != nil {
			return err
		}
		return s.cleanupConfig(tx, campaign, removed)
	})
	if err != nil {
		utils.CaptureError(err)
		return apperrors.TransactionFailure(err, "channel toggle did not complete; no changes were applied")
	}
	return nil
}

// cleanupConfig scrubs deliverables and channel-scoped metrics referencing
// the removed channels from the campaign's configuration document.
func (s *ChannelService) cleanupConfig(tx *gorm.DB, campaign *models.Campaign, removed []string) error {
	if len(removed) == 0 {
		return nil
	}
	if !s.cleanupOnUnlink {
		logrus.Debugf("Config cleanup disabled; campaign %s keeps references to %v", campaign.ID, removed)
		return nil
	}

	doc, err := models.ParseConfigDocument(campaign.Config)
	if err != nil {
		// An unreadable document is left as-is rather than failing the unlink.
		logrus.Warnf("Skipping config cleanup for campaign %s: %v", campaign.ID, err)
		return nil
	}

	catalog, err := s.metricRepo.GetCatalog()
	if err != nil {
		return fmt.Errorf("failed to load metric catalog: %w", err)
	}
	if !doc.RemoveChannelReferences(removed, catalog) {
		return nil
	}

	serialized, err := doc.Serialize()
	if err != nil {
		return fmt.Errorf("failed to serialize cleaned configuration: %w", err)
	}
	return tx.Model(&models.Campaign{}).Where("id = ?", campaign.ID).Update("config", serialized).Error
}

func (s *ChannelService) resolveCampaign(ref string) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.FindByRef(ref)
	if err != nil {
		return nil, campaignLookupError(ref, err)
	}
	return campaign, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// difference returns the elements of a not present in b.
func difference(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, id := range b {
		inB[id] = true
	}
	var out []string
	for _, id := range a {
		if !inB[id] {
			out = append(out, id)
		}
	}
	return out
}
