package utils

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/brandhub/campaign-ops-backend/internal/apperrors"
)

// Slugify normalizes free text into a lowercase hyphenated token. It is
// deterministic for identical inputs; collision handling is the caller's
// concern via UniqueSlug.
func Slugify(name string) (string, error) {
	s := slug.Make(strings.TrimSpace(name))
	if s == "" {
		return "", apperrors.Validation("name %q produces an empty slug", name)
	}
	return s, nil
}

// UniqueSlug derives a slug from name and, when taken within the caller's
// scope, appends a short random suffix instead of failing. The exists
// callback answers whether a candidate is already used in that scope.
func UniqueSlug(name string, exists func(candidate string) (bool, error)) (string, error) {
	base, err := Slugify(name)
	if err != nil {
		return "", err
	}

	taken, err := exists(base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	// Collision: disambiguate with short random suffixes. Bounded retries
	// keep a pathological exists callback from looping forever.
	for attempt := 0; attempt < 5; attempt++ {
		candidate := base + "-" + shortToken()
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return base + "-" + uuid.NewString(), nil
}

func shortToken() string {
	return uuid.NewString()[:8]
}
