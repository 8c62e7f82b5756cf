package models

import (
	"encoding/json"

	"github.com/brandhub/campaign-ops-backend/internal/apperrors"
)

// ConfigSchemaVersion is the version written to new documents.
const ConfigSchemaVersion = 1

// ConfigDocument is the configuration payload attached 1:1 to a campaign
// node. The storage column holds it verbatim; this type is the read/write
// edge. Unknown keys survive a parse/serialize round trip so that documents
// written by newer collaborators are never truncated.
type ConfigDocument struct {
	SchemaVersion     int                    `json:"schemaVersion"`
	CampaignTypeID    string                 `json:"campaignTypeId,omitempty"`
	SelectedMetricIDs []string               `json:"selectedMetricIds,omitempty"`
	MetricValues      map[string]interface{} `json:"metricValues,omitempty"`
	MockupID          string                 `json:"mockupId,omitempty"`
	Deliverables      []Deliverable          `json:"deliverables,omitempty"`

	extra map[string]json.RawMessage
}

// Deliverable is one creative output tied to a channel.
type Deliverable struct {
	ChannelID    string                 `json:"channelId"`
	ThumbnailURL string                 `json:"thumbnailUrl,omitempty"`
	PostURL      string                 `json:"postUrl,omitempty"`
	Metrics      map[string]interface{} `json:"metrics,omitempty"`
}

// knownConfigKeys are the keys owned by this contract; everything else is
// carried through untouched.
var knownConfigKeys = map[string]bool{
	"schemaVersion":     true,
	"campaignTypeId":    true,
	"selectedMetricIds": true,
	"metricValues":      true,
	"mockupId":          true,
	"deliverables":      true,
}

// ParseConfigDocument decodes a stored document. An empty or null column
// yields an empty current-version document.
func ParseConfigDocument(raw string) (*ConfigDocument, error) {
	doc := &ConfigDocument{SchemaVersion: ConfigSchemaVersion}
	if raw == "" || raw == "null" {
		return doc, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err, "configuration document is not valid JSON")
	}

	type alias ConfigDocument
	var known alias
	if err := json.Unmarshal([]byte(raw), &known); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err, "configuration document has malformed fields")
	}
	*doc = ConfigDocument(known)
	if doc.SchemaVersion == 0 {
		// Pre-versioning documents carry no schemaVersion field.
		doc.SchemaVersion = ConfigSchemaVersion
	}

	for key, val := range fields {
		if !knownConfigKeys[key] {
			if doc.extra == nil {
				doc.extra = map[string]json.RawMessage{}
			}
			doc.extra[key] = val
		}
	}
	return doc, nil
}

// Serialize encodes the document for storage, re-attaching passed-through
// unknown keys.
func (d *ConfigDocument) Serialize() (string, error) {
	type alias ConfigDocument
	known, err := json.Marshal((*alias)(d))
	if err != nil {
		return "", err
	}

	if len(d.extra) == 0 {
		return string(known), nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return "", err
	}
	for key, val := range d.extra {
		if _, owned := merged[key]; !owned {
			merged[key] = val
		}
	}
	out, err := json.Marshal(merged)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ExtraKeys lists the passed-through unknown keys, for diagnostics.
func (d *ConfigDocument) ExtraKeys() []string {
	keys := make([]string, 0, len(d.extra))
	for key := range d.extra {
		keys = append(keys, key)
	}
	return keys
}

// Validate checks the document against the campaign's currently linked
// channels and the metric catalog. Selected metrics must be cross-platform
// or scoped to a linked channel; deliverables must reference linked channels.
func (d *ConfigDocument) Validate(linkedChannelIDs []string, metricsByID map[string]Metric) error {
	if d.SchemaVersion != ConfigSchemaVersion {
		return apperrors.Validation("unsupported configuration schema version %d", d.SchemaVersion)
	}

	linked := make(map[string]bool, len(linkedChannelIDs))
	for _, id := range linkedChannelIDs {
		linked[id] = true
	}

	for _, metricID := range d.SelectedMetricIDs {
		metric, ok := metricsByID[metricID]
		if !ok {
			return apperrors.Validation("selected metric %q does not exist", metricID)
		}
		if !metric.IsCrossPlatform() && !linked[metric.ChannelID] {
			return apperrors.Validation("metric %q requires channel %q, which is not linked to the campaign", metricID, metric.ChannelID)
		}
	}

	for _, deliverable := range d.Deliverables {
		if deliverable.ChannelID == "" {
			return apperrors.Validation("deliverable is missing a channel reference")
		}
		if !linked[deliverable.ChannelID] {
			return apperrors.Validation("deliverable references channel %q, which is not linked to the campaign", deliverable.ChannelID)
		}
	}

	return nil
}

// RemoveChannelReferences drops deliverables bound to the removed channels
// and selected metrics (plus their values) that are scoped only to those
// channels. Cross-platform metrics are never touched. Returns true when the
// document changed.
func (d *ConfigDocument) RemoveChannelReferences(removedChannelIDs []string, metricsByID map[string]Metric) bool {
	removed := make(map[string]bool, len(removedChannelIDs))
	for _, id := range removedChannelIDs {
		removed[id] = true
	}

	changed := false

	kept := d.Deliverables[:0]
	for _, deliverable := range d.Deliverables {
		if removed[deliverable.ChannelID] {
			changed = true
			continue
		}
		kept = append(kept, deliverable)
	}
	d.Deliverables = kept

	keptMetrics := d.SelectedMetricIDs[:0]
	for _, metricID := range d.SelectedMetricIDs {
		metric, ok := metricsByID[metricID]
		if ok && !metric.IsCrossPlatform() && removed[metric.ChannelID] {
			changed = true
			delete(d.MetricValues, metricID)
			continue
		}
		keptMetrics = append(keptMetrics, metricID)
	}
	d.SelectedMetricIDs = keptMetrics

	return changed
}
