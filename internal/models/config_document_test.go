package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricCatalog() map[string]Metric {
	return map[string]Metric{
		"impressions":    {ID: "impressions", Label: "Impressions"},
		"ig-reach":       {ID: "ig-reach", Label: "Reach", ChannelID: "instagram"},
		"tt-video-views": {ID: "tt-video-views", Label: "Video Views", ChannelID: "tiktok"},
	}
}

func TestParseConfigDocumentEmpty(t *testing.T) {
	doc, err := ParseConfigDocument("")
	require.NoError(t, err)
	assert.Equal(t, ConfigSchemaVersion, doc.SchemaVersion)
	assert.Empty(t, doc.SelectedMetricIDs)

	doc, err = ParseConfigDocument("null")
	require.NoError(t, err)
	assert.Equal(t, ConfigSchemaVersion, doc.SchemaVersion)
}

func TestParseConfigDocumentRejectsGarbage(t *testing.T) {
	_, err := ParseConfigDocument("{not json")
	require.Error(t, err)
}

func TestParseConfigDocumentDefaultsVersion(t *testing.T) {
	doc, err := ParseConfigDocument(`{"campaignTypeId":"ct-1"}`)
	require.NoError(t, err)
	assert.Equal(t, ConfigSchemaVersion, doc.SchemaVersion)
	assert.Equal(t, "ct-1", doc.CampaignTypeID)
}

func TestConfigDocumentUnknownKeysSurviveRoundTrip(t *testing.T) {
	raw := `{"schemaVersion":1,"campaignTypeId":"ct-1","futureFeature":{"nested":true},"vendorNote":"keep me"}`

	doc, err := ParseConfigDocument(raw)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"futureFeature", "vendorNote"}, doc.ExtraKeys())

	doc.MockupID = "mock-7"
	out, err := doc.Serialize()
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "futureFeature")
	assert.Contains(t, decoded, "vendorNote")
	assert.Contains(t, decoded, "mockupId")
}

func TestConfigDocumentValidate(t *testing.T) {
	doc := &ConfigDocument{
		SchemaVersion:     ConfigSchemaVersion,
		SelectedMetricIDs: []string{"impressions", "ig-reach"},
		Deliverables:      []Deliverable{{ChannelID: "instagram", PostURL: "https://example.com/p/1"}},
	}

	// Instagram linked: everything is compatible.
	require.NoError(t, doc.Validate([]string{"instagram"}, metricCatalog()))

	// Without instagram the channel-scoped metric and the deliverable fail.
	err := doc.Validate([]string{"tiktok"}, metricCatalog())
	require.Error(t, err)

	// Cross-platform metrics alone need no channels at all.
	crossOnly := &ConfigDocument{SchemaVersion: ConfigSchemaVersion, SelectedMetricIDs: []string{"impressions"}}
	require.NoError(t, crossOnly.Validate(nil, metricCatalog()))
}

func TestConfigDocumentValidateUnknownMetric(t *testing.T) {
	doc := &ConfigDocument{SchemaVersion: ConfigSchemaVersion, SelectedMetricIDs: []string{"bogus"}}
	require.Error(t, doc.Validate([]string{"instagram"}, metricCatalog()))
}

func TestConfigDocumentValidateUnsupportedVersion(t *testing.T) {
	doc := &ConfigDocument{SchemaVersion: 99}
	require.Error(t, doc.Validate(nil, metricCatalog()))
}

func TestRemoveChannelReferences(t *testing.T) {
	doc := &ConfigDocument{
		SchemaVersion:     ConfigSchemaVersion,
		SelectedMetricIDs: []string{"impressions", "ig-reach", "tt-video-views"},
		MetricValues: map[string]interface{}{
			"impressions": 1000,
			"ig-reach":    400,
		},
		Deliverables: []Deliverable{
			{ChannelID: "instagram", PostURL: "https://example.com/p/1"},
			{ChannelID: "tiktok", PostURL: "https://example.com/p/2"},
		},
	}

	changed := doc.RemoveChannelReferences([]string{"instagram"}, metricCatalog())
	assert.True(t, changed)

	// Instagram-scoped references are gone, everything else stays.
	assert.ElementsMatch(t, []string{"impressions", "tt-video-views"}, doc.SelectedMetricIDs)
	assert.NotContains(t, doc.MetricValues, "ig-reach")
	assert.Contains(t, doc.MetricValues, "impressions")
	require.Len(t, doc.Deliverables, 1)
	assert.Equal(t, "tiktok", doc.Deliverables[0].ChannelID)
}

func TestRemoveChannelReferencesNoop(t *testing.T) {
	doc := &ConfigDocument{
		SchemaVersion:     ConfigSchemaVersion,
		SelectedMetricIDs: []string{"impressions"},
	}
	changed := doc.RemoveChannelReferences([]string{"instagram"}, metricCatalog())
	assert.False(t, changed)
	assert.Equal(t, []string{"impressions"}, doc.SelectedMetricIDs)
}
