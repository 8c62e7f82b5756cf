package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandhub/campaign-ops-backend/internal/apperrors"
)

func TestSlugifyNormalizes(t *testing.T) {
	cases := map[string]string{
		"Acme":                                  "acme",
		"Q1 Launch":                             "q1-launch",
		"  Trimmed  Name  ":                     "trimmed-name",
		"Q1 Launch - Influencer Marketing (Seeding)": "q1-launch-influencer-marketing-seeding",
	}

	for input, want := range cases {
		got, err := Slugify(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestSlugifyIsDeterministic(t *testing.T) {
	first, err := Slugify("Spring Launch 2025")
	require.NoError(t, err)
	second, err := Slugify("Spring Launch 2025")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSlugifyRejectsEmptyNames(t *testing.T) {
	for _, input := range []string{"", "   ", "!!!"} {
		_, err := Slugify(input)
		require.Error(t, err, "input %q", input)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	}
}

func TestUniqueSlugWithoutCollision(t *testing.T) {
	slug, err := UniqueSlug("Q1 Launch", func(string) (bool, error) { return false, nil })
	require.NoError(t, err)
	assert.Equal(t, "q1-launch", slug)
}

func TestUniqueSlugAppendsSuffixOnCollision(t *testing.T) {
	taken := map[string]bool{"q1-launch": true}
	slug, err := UniqueSlug("Q1 Launch", func(candidate string) (bool, error) {
		return taken[candidate], nil
	})
	require.NoError(t, err)
	assert.NotEqual(t, "q1-launch", slug)
	assert.Regexp(t, `^q1-launch-[0-9a-f-]+$`, slug)
}

func TestUniqueSlugRetriesUntilFree(t *testing.T) {
	calls := 0
	slug, err := UniqueSlug("Acme", func(candidate string) (bool, error) {
		calls++
		// Base and the first suffixed candidate are taken.
		return calls <= 2, nil
	})
	require.NoError(t, err)
	assert.Regexp(t, `^acme-`, slug)
	assert.Equal(t, 3, calls)
}
