package services

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/brandhub/campaign-ops-backend/internal/apperrors"
	"github.com/brandhub/campaign-ops-backend/internal/database"
	"github.com/brandhub/campaign-ops-backend/internal/database/repository"
	"github.com/brandhub/campaign-ops-backend/internal/models"
)

// setupTestDB connects to the database named by TEST_DATABASE_URL and runs
// migrations plus the catalog seed. Tests that need it skip when the variable
// is unset, so the unit suite stays runnable without Postgres.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "failed to connect to test database")

	require.NoError(t, database.Migrate(db), "failed to migrate test database")
	require.NoError(t, NewCatalogService(db).SeedDefaults(), "failed to seed catalog")

	return db
}

func createTestBrand(t *testing.T, db *gorm.DB, name string) *models.BrandResponse {
	t.Helper()
	brand, err := NewBrandService(db, nil).Create(&models.CreateBrandRequest{Name: name})
	require.NoError(t, err)
	return brand
}

func TestHierarchyIsLimitedToTwoLevels(t *testing.T) {
	db := setupTestDB(t)
	brand := createTestBrand(t, db, "Depth Limit Co")

	campaignService := NewCampaignService(db, StrictPolicy{}, nil)

	umbrella, err := campaignService.CreateUmbrella(&models.CreateUmbrellaCampaignRequest{
		BrandID: brand.ID,
		Name:    "Q1 Launch",
	})
	require.NoError(t, err)
	assert.Nil(t, umbrella.ParentID)

	sub, err := campaignService.CreateSubCampaign(umbrella.ID, &models.CreateSubCampaignRequest{
		ServiceTypeID:    "influencer-marketing",
		SubServiceTypeID: "seeding",
		BudgetPlanned:    1000,
	})
	require.NoError(t, err)
	require.NotNil(t, sub.ParentID)
	assert.Equal(t, umbrella.ID, *sub.ParentID)
	assert.Equal(t, "Q1 Launch - Influencer Marketing (Seeding)", sub.Name)

	// A sub-campaign cannot parent another one.
	_, err = campaignService.CreateSubCampaign(sub.ID, &models.CreateSubCampaignRequest{
		ServiceTypeID: "paid-social",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindHierarchyViolation, apperrors.KindOf(err))
}

func TestChannelToggleIsReversible(t *testing.T) {
	db := setupTestDB(t)
	brand := createTestBrand(t, db, "Toggle Co")

	campaignService := NewCampaignService(db, StrictPolicy{}, nil)
	channelService := NewChannelService(db)

	umbrella, err := campaignService.CreateUmbrella(&models.CreateUmbrellaCampaignRequest{
		BrandID: brand.ID,
		Name:    "Toggle Test",
	})
	require.NoError(t, err)

	require.NoError(t, channelService.SetChannels(umbrella.ID, []string{"instagram", "tiktok"}))

	linkedIDs := func() []string {
		channels, err := channelService.GetChannels(umbrella.ID)
		require.NoError(t, err)
		ids := make([]string, len(channels))
		for i, ch := range channels {
			ids[i] = ch.ID
		}
		return ids
	}

	require.NoError(t, channelService.Toggle(umbrella.ID, "instagram"))
	assert.ElementsMatch(t, []string{"tiktok"}, linkedIDs())

	require.NoError(t, channelService.Toggle(umbrella.ID, "instagram"))
	assert.ElementsMatch(t, []string{"instagram", "tiktok"}, linkedIDs())
}

func TestUnlinkScrubsConfigReferences(t *testing.T) {
	db := setupTestDB(t)
	brand := createTestBrand(t, db, "Cleanup Co")

	campaignService := NewCampaignService(db, StrictPolicy{}, nil)
	channelService := NewChannelService(db)

	umbrella, err := campaignService.CreateUmbrella(&models.CreateUmbrellaCampaignRequest{
		BrandID: brand.ID,
		Name:    "Cleanup Test",
	})
	require.NoError(t, err)
	require.NoError(t, channelService.SetChannels(umbrella.ID, []string{"instagram", "tiktok"}))

	config := &models.ConfigDocument{
		SchemaVersion:     models.ConfigSchemaVersion,
		SelectedMetricIDs: []string{"impressions", "ig-reach"},
		Deliverables: []models.Deliverable{
			{ChannelID: "instagram", PostURL: "https://example.com/p/1"},
			{ChannelID: "tiktok", PostURL: "https://example.com/p/2"},
		},
	}
	_, err = campaignService.Update(umbrella.ID, &models.UpdateCampaignRequest{Config: config})
	require.NoError(t, err)

	require.NoError(t, channelService.Toggle(umbrella.ID, "instagram"))

	updated, err := campaignService.Get(umbrella.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Config)
	assert.NotContains(t, updated.Config.SelectedMetricIDs, "ig-reach")
	assert.Contains(t, updated.Config.SelectedMetricIDs, "impressions")
	for _, d := range updated.Config.Deliverables {
		assert.NotEqual(t, "instagram", d.ChannelID)
	}
}

func TestBrandArchiveAndRestore(t *testing.T) {
	db := setupTestDB(t)
	brandService := NewBrandService(db, nil)

	brand := createTestBrand(t, db, "Archive Co")

	archived, err := brandService.Archive(brand.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BrandStatusArchive, archived.Status)

	// Archived brands refuse new campaigns.
	_, err = NewCampaignService(db, StrictPolicy{}, nil).CreateUmbrella(&models.CreateUmbrellaCampaignRequest{
		BrandID: brand.ID,
		Name:    "Should Fail",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	restored, err := brandService.Restore(brand.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BrandStatusActive, restored.Status)
}

func TestPermanentDeleteBlockedByActiveCampaigns(t *testing.T) {
	db := setupTestDB(t)
	brandService := NewBrandService(db, nil)
	campaignService := NewCampaignService(db, StrictPolicy{}, nil)
	channelService := NewChannelService(db)

	brand := createTestBrand(t, db, "Doomed Co")

	umbrella, err := campaignService.CreateUmbrella(&models.CreateUmbrellaCampaignRequest{
		BrandID: brand.ID,
		Name:    "Last Hurrah",
	})
	require.NoError(t, err)

	sub, err := campaignService.CreateSubCampaign(umbrella.ID, &models.CreateSubCampaignRequest{
		ServiceTypeID: "paid-social",
		BudgetPlanned: 250,
	})
	require.NoError(t, err)
	require.NoError(t, channelService.SetChannels(sub.ID, []string{"instagram"}))

	// Both nodes are active, so the delete is refused.
	err = brandService.PermanentDelete(brand.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindDeletionBlocked, apperrors.KindOf(err))

	// Complete both campaigns and try again.
	completed := models.CampaignStatusCompleted
	_, err = campaignService.Update(umbrella.ID, &models.UpdateCampaignRequest{Status: &completed})
	require.NoError(t, err)
	_, err = campaignService.Update(sub.ID, &models.UpdateCampaignRequest{Status: &completed})
	require.NoError(t, err)

	require.NoError(t, brandService.PermanentDelete(brand.ID))

	// Nothing referencing the brand survives the cascade.
	var campaignCount, linkCount int64
	require.NoError(t, db.Model(&models.Campaign{}).Where("brand_id = ?", brand.ID).Count(&campaignCount).Error)
	assert.Zero(t, campaignCount)
	require.NoError(t, db.Model(&models.CampaignChannel{}).Where("campaign_id IN ?", []string{umbrella.ID, sub.ID}).Count(&linkCount).Error)
	assert.Zero(t, linkCount)

	_, err = brandService.Get(brand.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCampaignSlugsAreScopedToBrand(t *testing.T) {
	db := setupTestDB(t)
	campaignService := NewCampaignService(db, StrictPolicy{}, nil)

	brandA := createTestBrand(t, db, "Slug Scope A")
	brandB := createTestBrand(t, db, "Slug Scope B")

	first, err := campaignService.CreateUmbrella(&models.CreateUmbrellaCampaignRequest{
		BrandID: brandA.ID,
		Name:    "Winter Push",
	})
	require.NoError(t, err)

	// The same name under another brand gets the same slug, not a suffix.
	second, err := campaignService.CreateUmbrella(&models.CreateUmbrellaCampaignRequest{
		BrandID: brandB.ID,
		Name:    "Winter Push",
	})
	require.NoError(t, err)
	assert.Equal(t, first.Slug, second.Slug)

	// The bare slug is now ambiguous; ids still resolve.
	_, err = campaignService.Get(first.Slug)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	got, err := campaignService.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, brandA.ID, got.BrandID)
}

func TestPermanentDeleteRollsBackOnFailure(t *testing.T) {
	db := setupTestDB(t)
	brandService := NewBrandService(db, nil)
	campaignService := NewCampaignService(db, StrictPolicy{}, nil)
	channelService := NewChannelService(db)

	brand := createTestBrand(t, db, "Rollback Co")

	umbrella, err := campaignService.CreateUmbrella(&models.CreateUmbrellaCampaignRequest{
		BrandID: brand.ID,
		Name:    "Rollback Root",
	})
	require.NoError(t, err)
	sub, err := campaignService.CreateSubCampaign(umbrella.ID, &models.CreateSubCampaignRequest{
		ServiceTypeID: "paid-social",
		BudgetPlanned: 100,
	})
	require.NoError(t, err)
	require.NoError(t, channelService.SetChannels(sub.ID, []string{"instagram"}))

	metricRepo := repository.NewMetricRepository(db)
	require.NoError(t, metricRepo.RecordCampaignMetric(&models.CampaignMetric{
		BrandID:    brand.ID,
		CampaignID: sub.ID,
		Key:        models.MetricKeySpend,
		Value:      40,
		RecordedAt: time.Now(),
	}))

	completed := models.CampaignStatusCompleted
	_, err = campaignService.Update(umbrella.ID, &models.UpdateCampaignRequest{Status: &completed})
	require.NoError(t, err)
	_, err = campaignService.Update(sub.ID, &models.UpdateCampaignRequest{Status: &completed})
	require.NoError(t, err)

	// Fail the final step of the cascade so the whole transaction rolls back.
	require.NoError(t, db.Exec(`
		CREATE OR REPLACE FUNCTION refuse_brand_delete() RETURNS trigger AS $$
		BEGIN
			RAISE EXCEPTION 'brand deletes are refused';
		END;
		$$ LANGUAGE plpgsql`).Error)
	require.NoError(t, db.Exec(`DROP TRIGGER IF EXISTS refuse_brand_delete ON brands`).Error)
	require.NoError(t, db.Exec(`
		CREATE TRIGGER refuse_brand_delete BEFORE DELETE ON brands
		FOR EACH ROW EXECUTE FUNCTION refuse_brand_delete()`).Error)
	t.Cleanup(func() {
		db.Exec(`DROP TRIGGER IF EXISTS refuse_brand_delete ON brands`)
	})

	err = brandService.PermanentDelete(brand.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindTransactionFailure, apperrors.KindOf(err))

	// Everything the cascade had already touched must be back in place.
	var campaignCount, linkCount, metricCount int64
	require.NoError(t, db.Model(&models.Campaign{}).Where("brand_id = ?", brand.ID).Count(&campaignCount).Error)
	assert.EqualValues(t, 2, campaignCount)
	require.NoError(t, db.Model(&models.CampaignChannel{}).Where("campaign_id = ?", sub.ID).Count(&linkCount).Error)
	assert.EqualValues(t, 1, linkCount)
	require.NoError(t, db.Model(&models.CampaignMetric{}).Where("brand_id = ?", brand.ID).Count(&metricCount).Error)
	assert.EqualValues(t, 1, metricCount)

	_, err = brandService.Get(brand.ID)
	require.NoError(t, err)

	// With the failure injection gone the same delete completes.
	require.NoError(t, db.Exec(`DROP TRIGGER IF EXISTS refuse_brand_delete ON brands`).Error)
	require.NoError(t, brandService.PermanentDelete(brand.ID))
}

func TestUmbrellaDeleteCascadesToChildren(t *testing.T) {
	db := setupTestDB(t)
	brand := createTestBrand(t, db, "Cascade Co")

	campaignService := NewCampaignService(db, StrictPolicy{}, nil)
	channelService := NewChannelService(db)

	umbrella, err := campaignService.CreateUmbrella(&models.CreateUmbrellaCampaignRequest{
		BrandID: brand.ID,
		Name:    "Cascade Root",
	})
	require.NoError(t, err)

	sub, err := campaignService.CreateSubCampaign(umbrella.ID, &models.CreateSubCampaignRequest{
		ServiceTypeID: "influencer-marketing",
		BudgetPlanned: 500,
	})
	require.NoError(t, err)
	require.NoError(t, channelService.SetChannels(sub.ID, []string{"youtube"}))

	require.NoError(t, campaignService.Delete(umbrella.ID))

	_, err = campaignService.Get(sub.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	var linkCount int64
	require.NoError(t, db.Model(&models.CampaignChannel{}).Where("campaign_id = ?", sub.ID).Count(&linkCount).Error)
	assert.Zero(t, linkCount)
}
