package services

import (
	"fmt"

	"github.com/brandhub/campaign-ops-backend/internal/database/repository"
	"github.com/brandhub/campaign-ops-backend/internal/models"
)

// RollupService computes derived budget aggregates. Nothing here is
// persisted; every call recomputes from the stored rows.
type RollupService struct {
	campaignRepo *repository.CampaignRepository
	metricRepo   *repository.MetricRepository
}

func NewRollupService(campaignRepo *repository.CampaignRepository, metricRepo *repository.MetricRepository) *RollupService {
	return &RollupService{
		campaignRepo: campaignRepo,
		metricRepo:   metricRepo,
	}
}

// RollupForRef loads a node (by id or slug) and computes its budget rollup.
// Umbrella nodes aggregate their children; leaves roll up alone.
func (s *RollupService) RollupForRef(ref string) (*models.RollupResponse, error) {
	campaign, err := s.campaignRepo.FindByRef(ref)
	if err != nil {
		return nil, campaignLookupError(ref, err)
	}

	var children []*models.Campaign
	if campaign.IsUmbrella() {
		children, err = s.campaignRepo.GetChildren(campaign.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load sub-campaigns: %w", err)
		}
	}

	ids := make([]string, 0, len(children)+1)
	ids = append(ids, campaign.ID)
	for _, child := range children {
		ids = append(ids, child.ID)
	}
	spend, err := s.metricRepo.SpendByCampaign(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load spend feed: %w", err)
	}

	rollup := ComputeRollup(campaign, children, spend)
	return &rollup, nil
}

// ComputeRollup aggregates planned and spent budget over a node and its
// children. Summation makes the result independent of child order; campaigns
// absent from the spend feed contribute 0.
func ComputeRollup(node *models.Campaign, children []*models.Campaign, spendByCampaign map[string]float64) models.RollupResponse {
	planned := node.BudgetPlanned
	spent := spendByCampaign[node.ID]
	for _, child := range children {
		planned += child.BudgetPlanned
		spent += spendByCampaign[child.ID]
	}

	return models.RollupResponse{
		CampaignID:      node.ID,
		BudgetPlanned:   planned,
		BudgetSpent:     spent,
		ProgressPercent: ProgressPercent(planned, spent),
	}
}

// ProgressPercent returns spent/planned as a percentage clamped to [0, 100].
// A zero planned budget yields 0, never NaN or Inf.
func ProgressPercent(planned, spent float64) float64 {
	if planned <= 0 {
		return 0
	}
	pct := spent / planned * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
