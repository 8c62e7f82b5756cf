package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandhub/campaign-ops-backend/internal/apperrors"
	"github.com/brandhub/campaign-ops-backend/internal/models"
)

func TestValidateTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.CampaignStatusDraft, models.CampaignStatusActive, true},
		{models.CampaignStatusActive, models.CampaignStatusPaused, true},
		{models.CampaignStatusActive, models.CampaignStatusCompleted, true},
		{models.CampaignStatusPaused, models.CampaignStatusActive, true},

		// Same-status writes are always allowed.
		{models.CampaignStatusDraft, models.CampaignStatusDraft, true},
		{models.CampaignStatusCompleted, models.CampaignStatusCompleted, true},

		// Completed is terminal; no skipping draft straight to paused.
		{models.CampaignStatusCompleted, models.CampaignStatusActive, false},
		{models.CampaignStatusCompleted, models.CampaignStatusDraft, false},
		{models.CampaignStatusDraft, models.CampaignStatusPaused, false},
		{models.CampaignStatusDraft, models.CampaignStatusCompleted, false},
		{models.CampaignStatusPaused, models.CampaignStatusCompleted, false},
		{models.CampaignStatusActive, models.CampaignStatusDraft, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidateTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{
		models.CampaignStatusDraft,
		models.CampaignStatusActive,
		models.CampaignStatusPaused,
		models.CampaignStatusCompleted,
	} {
		assert.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus("archived"))
	assert.False(t, IsValidStatus(""))
}

func TestStrictPolicyRejectsIllegalMoves(t *testing.T) {
	policy := StrictPolicy{}

	require.NoError(t, policy.Check(models.CampaignStatusDraft, models.CampaignStatusActive))

	err := policy.Check(models.CampaignStatusCompleted, models.CampaignStatusActive)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestLenientPolicyAcceptsEverything(t *testing.T) {
	policy := LenientPolicy{}

	require.NoError(t, policy.Check(models.CampaignStatusDraft, models.CampaignStatusActive))
	require.NoError(t, policy.Check(models.CampaignStatusCompleted, models.CampaignStatusActive))
}

func TestTransitionPolicyFromEnv(t *testing.T) {
	t.Setenv("STATUS_POLICY", "strict")
	assert.IsType(t, StrictPolicy{}, TransitionPolicyFromEnv())

	t.Setenv("STATUS_POLICY", "")
	assert.IsType(t, LenientPolicy{}, TransitionPolicyFromEnv())

	t.Setenv("STATUS_POLICY", "whatever")
	assert.IsType(t, LenientPolicy{}, TransitionPolicyFromEnv())
}
