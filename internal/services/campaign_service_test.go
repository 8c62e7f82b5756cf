package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/brandhub/campaign-ops-backend/internal/apperrors"
	"github.com/brandhub/campaign-ops-backend/internal/database/repository"
)

func TestComposeSubCampaignName(t *testing.T) {
	cases := []struct {
		name                             string
		parent, serviceType, subService  string
		want                             string
	}{
		{
			name:        "slug refs are humanized",
			parent:      "Q1 Launch",
			serviceType: "influencer-marketing",
			subService:  "seeding",
			want:        "Q1 Launch - Influencer Marketing (Seeding)",
		},
		{
			name:        "no sub-service type",
			parent:      "Q1 Launch",
			serviceType: "paid-social",
			want:        "Q1 Launch - Paid Social",
		},
		{
			name:        "labels pass through unchanged",
			parent:      "Spring Push",
			serviceType: "Influencer Marketing",
			subService:  "UGC Production",
			want:        "Spring Push - Influencer Marketing (UGC Production)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComposeSubCampaignName(tc.parent, tc.serviceType, tc.subService)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLabelFromRef(t *testing.T) {
	cases := map[string]string{
		"seeding":              "Seeding",
		"influencer-marketing": "Influencer Marketing",
		"paid-social":          "Paid Social",
		"UGC Production":       "UGC Production",
		"Already A Label":      "Already A Label",
	}

	for input, want := range cases {
		assert.Equal(t, want, labelFromRef(input), "input %q", input)
	}
}

func TestCampaignLookupError(t *testing.T) {
	err := campaignLookupError("q1-launch", gorm.ErrRecordNotFound)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	err = campaignLookupError("q1-launch", repository.ErrAmbiguousSlug)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	cause := errors.New("connection refused")
	err = campaignLookupError("q1-launch", cause)
	assert.Equal(t, apperrors.Kind(""), apperrors.KindOf(err))
	assert.ErrorIs(t, err, cause)
}

func TestDedupePreservesOrder(t *testing.T) {
	got := dedupe([]string{"instagram", "tiktok", "instagram", "youtube", "tiktok"})
	assert.Equal(t, []string{"instagram", "tiktok", "youtube"}, got)
}

func TestDifference(t *testing.T) {
	got := difference([]string{"instagram", "tiktok", "youtube"}, []string{"tiktok"})
	assert.ElementsMatch(t, []string{"instagram", "youtube"}, got)

	assert.Empty(t, difference([]string{"instagram"}, []string{"instagram"}))
	assert.Empty(t, difference(nil, []string{"instagram"}))
}
