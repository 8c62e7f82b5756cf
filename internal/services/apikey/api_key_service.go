package apikey

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/brandhub/campaign-ops-backend/internal/apperrors"
	"github.com/brandhub/campaign-ops-backend/internal/database/repository"
	"github.com/brandhub/campaign-ops-backend/internal/models"
)

const keyPrefixLen = 9 // "bh_" + 6 hex chars

// Service issues and validates brand-scoped API keys. Keys are shown once on
// creation and stored only as bcrypt digests.
type Service struct {
	apiKeyRepo *repository.APIKeyRepository
	brandRepo  *repository.BrandRepository
}

// NewService creates a new API key service
func NewService(db *gorm.DB) *Service {
	return &Service{
		apiKeyRepo: repository.NewAPIKeyRepository(db),
		brandRepo:  repository.NewBrandRepository(db),
	}
}

// Generate issues a new API key for a brand. The plaintext key appears only
// in the returned response.
func (s *Service) Generate(brandRef string, req *models.CreateAPIKeyRequest) (*models.APIKeyResponse, error) {
	brand, err := s.brandRepo.FindByRef(brandRef)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("brand %q not found", brandRef)
		}
		return nil, fmt.Errorf("failed to load brand: %w", err)
	}

	plaintext, err := generateRandomKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash API key: %w", err)
	}

	key := &models.APIKey{
		BrandID:   brand.ID,
		Label:     req.Label,
		KeyPrefix: plaintext[:keyPrefixLen],
		KeyHash:   string(hash),
	}
	if err := s.apiKeyRepo.Create(key); err != nil {
		return nil, fmt.Errorf("failed to store API key: %w", err)
	}

	return &models.APIKeyResponse{
		ID:        key.ID,
		BrandID:   key.BrandID,
		Label:     key.Label,
		Key:       plaintext,
		KeyPrefix: key.KeyPrefix,
		CreatedAt: key.CreatedAt.Format(time.RFC3339),
	}, nil
}

// Validate checks a presented key and returns the owning record.
func (s *Service) Validate(plaintext string) (*models.APIKey, error) {
	if len(plaintext) < keyPrefixLen {
		return nil, apperrors.Validation("malformed API key")
	}

	candidates, err := s.apiKeyRepo.GetByPrefix(plaintext[:keyPrefixLen])
	if err != nil {
		return nil, fmt.Errorf("failed to look up API key: %w", err)
	}
	for _, candidate := range candidates {
		if bcrypt.CompareHashAndPassword([]byte(candidate.KeyHash), []byte(plaintext)) == nil {
			if err := s.apiKeyRepo.TouchLastUsed(candidate.ID); err != nil {
				return nil, fmt.Errorf("failed to stamp API key use: %w", err)
			}
			return candidate, nil
		}
	}
	return nil, apperrors.NotFound("invalid API key")
}

// Revoke deletes an API key.
func (s *Service) Revoke(id string) error {
	return s.apiKeyRepo.Delete(id)
}

// generateRandomKey generates a "bh_"-prefixed random 32-byte hex key
func generateRandomKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return "bh_" + hex.EncodeToString(bytes), nil
}
