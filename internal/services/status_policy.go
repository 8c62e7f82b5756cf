package services

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/brandhub/campaign-ops-backend/internal/apperrors"
	"github.com/brandhub/campaign-ops-backend/internal/models"
)

// allowedTransitions is the campaign status transition table:
// draft -> active -> {paused, completed}, paused -> active; completed is
// terminal. Same-status writes are always allowed.
var allowedTransitions = map[string][]string{
	models.CampaignStatusDraft:     {models.CampaignStatusActive},
	models.CampaignStatusActive:    {models.CampaignStatusPaused, models.CampaignStatusCompleted},
	models.CampaignStatusPaused:    {models.CampaignStatusActive},
	models.CampaignStatusCompleted: {},
}

// ValidateTransition reports whether from -> to is a legal status move.
func ValidateTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is one of the known campaign statuses.
func IsValidStatus(s string) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// TransitionPolicy decides what happens on an illegal status move. The
// historical behavior is lenient (log and accept); strict enforcement is
// opt-in via STATUS_POLICY=strict.
type TransitionPolicy interface {
	Check(from, to string) error
}

// StrictPolicy rejects illegal transitions with a ValidationError.
type StrictPolicy struct{}

func (StrictPolicy) Check(from, to string) error {
	if !ValidateTransition(from, to) {
		return apperrors.Validation("illegal status transition %q -> %q", from, to)
	}
	return nil
}

// LenientPolicy accepts every transition, logging the illegal ones.
type LenientPolicy struct{}

func (LenientPolicy) Check(from, to string) error {
	if !ValidateTransition(from, to) {
		logrus.Warnf("accepting illegal status transition %q -> %q (lenient policy)", from, to)
	}
	return nil
}

// TransitionPolicyFromEnv selects the policy from STATUS_POLICY.
func TransitionPolicyFromEnv() TransitionPolicy {
	if os.Getenv("STATUS_POLICY") == "strict" {
		return StrictPolicy{}
	}
	return LenientPolicy{}
}
