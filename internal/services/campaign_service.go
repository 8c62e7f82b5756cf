package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/brandhub/campaign-ops-backend/internal/apperrors"
	"github.com/brandhub/campaign-ops-backend/internal/database/repository"
	"github.com/brandhub/campaign-ops-backend/internal/models"
	"github.com/brandhub/campaign-ops-backend/internal/utils"
)

// CampaignService owns the campaign tree: umbrella and sub-campaign
// creation, partial updates, deletion (with the umbrella cascade) and brand
// listings.
type CampaignService struct {
	db           *gorm.DB
	campaignRepo *repository.CampaignRepository
	brandRepo    *repository.BrandRepository
	channelRepo  *repository.ChannelRepository
	metricRepo   *repository.MetricRepository
	policy       TransitionPolicy
	events       *EventService
}

func NewCampaignService(db *gorm.DB, policy TransitionPolicy, events *EventService) *CampaignService {
	return &CampaignService{
		db:           db,
		campaignRepo: repository.NewCampaignRepository(db),
		brandRepo:    repository.NewBrandRepository(db),
		channelRepo:  repository.NewChannelRepository(db),
		metricRepo:   repository.NewMetricRepository(db),
		policy:       policy,
		events:       events,
	}
}

// campaignLookupError maps campaign lookup failures onto the error taxonomy.
// Slugs are only unique per brand, so a bare slug shared across brands cannot
// be resolved and the caller is told to use the id.
func campaignLookupError(ref string, err error) error {
	switch err {
	case gorm.ErrRecordNotFound:
		return apperrors.NotFound("campaign %q not found", ref)
	case repository.ErrAmbiguousSlug:
		return apperrors.Validation("campaign slug %q exists in more than one brand; refer to the campaign by id", ref)
	}
	return fmt.Errorf("failed to load campaign: %w", err)
}

// CreateUmbrella creates a top-level campaign under a brand.
func (s *CampaignService) CreateUmbrella(req *models.CreateUmbrellaCampaignRequest) (*models.CampaignResponse, error) {
	brand, err := s.brandRepo.FindByRef(req.BrandID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("brand %q not found", req.BrandID)
		}
		return nil, fmt.Errorf("failed to load brand: %w", err)
	}
	if brand.Status == models.BrandStatusArchive {
		return nil, apperrors.Validation("brand %q is archived; restore it before adding campaigns", brand.Name)
	}

	slug, err := s.campaignSlug(brand.ID, req.Name, "")
	if err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		BrandID:     brand.ID,
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		MarketID:    req.MarketID,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      models.CampaignStatusActive,
		Config:      "{}",
	}
	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	s.events.Publish(EventCampaignCreated, map[string]interface{}{
		"campaign_id": campaign.ID,
		"brand_id":    campaign.BrandID,
		"name":        campaign.Name,
	})
	return s.toResponse(campaign), nil
}

// CreateSubCampaign creates a service sub-campaign under an umbrella node.
// The name is composed as "{parent} - {service} ({subService})" and the slug
// derived from it.
func (s *CampaignService) CreateSubCampaign(parentRef string, req *models.CreateSubCampaignRequest) (*models.CampaignResponse, error) {
	parent, err := s.campaignRepo.FindByRef(parentRef)
	if err != nil {
		return nil, campaignLookupError(parentRef, err)
	}
	if !parent.IsUmbrella() {
		return nil, apperrors.HierarchyViolation("campaign %q is a sub-campaign; services can only be added to umbrella campaigns", parent.Name)
	}
	if req.BudgetPlanned < 0 {
		return nil, apperrors.Validation("planned budget must not be negative")
	}

	name := ComposeSubCampaignName(parent.Name, req.ServiceTypeID, req.SubServiceTypeID)
	slug, err := s.campaignSlug(parent.BrandID, name, "")
	if err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		BrandID:          parent.BrandID,
		ParentID:         &parent.ID,
		Name:             name,
		Slug:             slug,
		MarketID:         parent.MarketID,
		ServiceTypeID:    req.ServiceTypeID,
		SubServiceTypeID: req.SubServiceTypeID,
		ObjectiveID:      req.ObjectiveID,
		BudgetPlanned:    req.BudgetPlanned,
		Status:           models.CampaignStatusActive,
		Config:           "{}",
	}
	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create sub-campaign: %w", err)
	}

	s.events.Publish(EventCampaignCreated, map[string]interface{}{
		"campaign_id": campaign.ID,
		"brand_id":    campaign.BrandID,
		"parent_id":   parent.ID,
		"name":        campaign.Name,
	})
	return s.toResponse(campaign), nil
}

// Get resolves one campaign by id or slug.
func (s *CampaignService) Get(ref string) (*models.CampaignResponse, error) {
	campaign, err := s.campaignRepo.FindByRef(ref)
	if err != nil {
		return nil, campaignLookupError(ref, err)
	}
	return s.toResponse(campaign), nil
}

// Update applies a partial update. Only whitelisted fields mutate; a name
// change regenerates the slug; a configuration document is validated against
// the linked channels before it is stored.
func (s *CampaignService) Update(ref string, req *models.UpdateCampaignRequest) (*models.CampaignResponse, error) {
	campaign, err := s.campaignRepo.FindByRef(ref)
	if err != nil {
		return nil, campaignLookupError(ref, err)
	}

	// Validate everything before mutating anything.
	if req.Status != nil {
		if !IsValidStatus(*req.Status) {
			return nil, apperrors.Validation("unknown status %q", *req.Status)
		}
		if err := s.policy.Check(campaign.Status, *req.Status); err != nil {
			return nil, err
		}
	}
	if req.BudgetPlanned != nil && *req.BudgetPlanned < 0 {
		return nil, apperrors.Validation("planned budget must not be negative")
	}

	var serializedConfig string
	if req.Config != nil {
		linked := make([]string, len(campaign.Channels))
		for i, channel := range campaign.Channels {
			linked[i] = channel.ID
		}
		catalog, err := s.metricRepo.GetCatalog()
		if err != nil {
			return nil, fmt.Errorf("failed to load metric catalog: %w", err)
		}
		if err := req.Config.Validate(linked, catalog); err != nil {
			return nil, err
		}
		serializedConfig, err = req.Config.Serialize()
		if err != nil {
			return nil, fmt.Errorf("failed to serialize configuration: %w", err)
		}
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != campaign.Name {
		slug, err := s.campaignSlug(campaign.BrandID, *req.Name, campaign.ID)
		if err != nil {
			return nil, err
		}
		campaign.Name = strings.TrimSpace(*req.Name)
		campaign.Slug = slug
	}
	if req.Status != nil {
		campaign.Status = *req.Status
	}
	if req.Description != nil {
		campaign.Description = *req.Description
	}
	if req.MarketID != nil {
		campaign.MarketID = *req.MarketID
	}
	if req.ObjectiveID != nil {
		campaign.ObjectiveID = *req.ObjectiveID
	}
	if req.StartDate != nil {
		campaign.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		campaign.EndDate = req.EndDate
	}
	if req.BudgetPlanned != nil {
		campaign.BudgetPlanned = *req.BudgetPlanned
	}
	if req.Config != nil {
		campaign.Config = serializedConfig
	}

	if err := s.campaignRepo.Update(campaign); err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}

	s.events.Publish(EventCampaignUpdated, map[string]interface{}{
		"campaign_id": campaign.ID,
		"brand_id":    campaign.BrandID,
	})
	return s.toResponse(campaign), nil
}

// Delete removes a campaign node. Leaves are removed directly; an umbrella
// node takes its sub-campaigns and all channel links with it, in one
// transaction.
func (s *CampaignService) Delete(ref string) error {
	campaign, err := s.campaignRepo.FindByRef(ref)
	if err != nil {
		return campaignLookupError(ref, err)
	}

	children, err := s.campaignRepo.GetChildren(campaign.ID)
	if err != nil {
		return fmt.Errorf("failed to load sub-campaigns: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		childIDs := make([]string, len(children))
		for i, child := range children {
			childIDs[i] = child.ID
		}
		if len(childIDs) > 0 {
			if err := tx.Where("campaign_id IN ?", childIDs).Delete(&models.CampaignChannel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", childIDs).Delete(&models.Campaign{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("campaign_id = ?", campaign.ID).Delete(&models.CampaignChannel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Campaign{}, "id = ?", campaign.ID).Error
	})
	if err != nil {
		utils.CaptureError(err)
		return apperrors.TransactionFailure(err, "campaign deletion did not complete; no changes were applied")
	}

	logrus.Infof("Deleted campaign %s (%d sub-campaigns)", campaign.ID, len(children))
	s.events.Publish(EventCampaignDeleted, map[string]interface{}{
		"campaign_id": campaign.ID,
		"brand_id":    campaign.BrandID,
	})
	return nil
}

// ListByBrand returns the flat campaign list of a brand.
func (s *CampaignService) ListByBrand(brandRef string, filter models.CampaignListFilter, page, pageSize int) ([]*models.CampaignResponse, *utils.PaginationResponse, error) {
	brand, err := s.brandRepo.FindByRef(brandRef)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, apperrors.NotFound("brand %q not found", brandRef)
		}
		return nil, nil, fmt.Errorf("failed to load brand: %w", err)
	}

	offset := utils.CalculateOffset(page, pageSize)
	campaigns, total, err := s.campaignRepo.ListByBrand(brand.ID, filter, offset, pageSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	responses := make([]*models.CampaignResponse, len(campaigns))
	for i, campaign := range campaigns {
		responses[i] = s.toResponse(campaign)
	}
	pagination := utils.CalculatePaginationInfo(int(total), page, pageSize)
	return responses, &pagination, nil
}

// campaignSlug derives a brand-unique slug for a campaign name.
func (s *CampaignService) campaignSlug(brandID, name, excludeID string) (string, error) {
	return utils.UniqueSlug(name, func(candidate string) (bool, error) {
		return s.campaignRepo.SlugExistsInBrand(brandID, candidate, excludeID)
	})
}

// ComposeSubCampaignName builds the generated sub-campaign name from the
// parent name and the service labels, e.g.
// "Q1 Launch - Influencer Marketing (Seeding)".
func ComposeSubCampaignName(parentName, serviceType, subServiceType string) string {
	name := parentName + " - " + labelFromRef(serviceType)
	if subServiceType != "" {
		name += " (" + labelFromRef(subServiceType) + ")"
	}
	return name
}

// labelFromRef turns a catalog ref into a display label: slugs like
// "influencer-marketing" become "Influencer Marketing"; refs that already
// look like labels pass through unchanged.
func labelFromRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if strings.ContainsAny(ref, " (") || ref != strings.ToLower(ref) {
		return ref
	}
	words := strings.Split(ref, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// toResponse converts a Campaign model to its response DTO
func (s *CampaignService) toResponse(campaign *models.Campaign) *models.CampaignResponse {
	channelIDs := make([]string, len(campaign.Channels))
	for i, channel := range campaign.Channels {
		channelIDs[i] = channel.ID
	}

	var config *models.ConfigDocument
	if doc, err := models.ParseConfigDocument(campaign.Config); err == nil {
		config = doc
	} else {
		logrus.Warnf("Campaign %s has an unreadable configuration document: %v", campaign.ID, err)
	}

	return &models.CampaignResponse{
		ID:               campaign.ID,
		BrandID:          campaign.BrandID,
		ParentID:         campaign.ParentID,
		Name:             campaign.Name,
		Slug:             campaign.Slug,
		MarketID:         campaign.MarketID,
		ServiceTypeID:    campaign.ServiceTypeID,
		SubServiceTypeID: campaign.SubServiceTypeID,
		ObjectiveID:      campaign.ObjectiveID,
		Description:      campaign.Description,
		StartDate:        campaign.StartDate,
		EndDate:          campaign.EndDate,
		BudgetPlanned:    campaign.BudgetPlanned,
		Status:           campaign.Status,
		Config:           config,
		ChannelIDs:       channelIDs,
		CreatedAt:        campaign.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        campaign.UpdatedAt.Format(time.RFC3339),
	}
}
