package events

import (
	"encoding/json"
	"time"
)

// OccurrenceGenerated announces that the recurrence pass materialized one
// record from a template. Downstream consumers (notification senders,
// sync workers) decide what to do with it; HomeShare only publishes.
type OccurrenceGenerated struct {
	TemplateID  string `json:"template_id"`
	HouseholdID string `json:"household_id"`
	Kind        string `json:"kind"` // task or expense
	RecordID    string `json:"record_id"`
	Occurrence  string `json:"occurrence"` // ISO calendar day
	PublishedAt int64  `json:"published_at"`
}

// NewOccurrenceGenerated builds a message stamped with the current time.
func NewOccurrenceGenerated(templateID, householdID, kind, recordID, occurrence string) OccurrenceGenerated {
	return OccurrenceGenerated{
		TemplateID:  templateID,
		HouseholdID: householdID,
		Kind:        kind,
		RecordID:    recordID,
		Occurrence:  occurrence,
		PublishedAt: time.Now().Unix(),
	}
}

// ToJSON serializes the message for the wire.
func (m OccurrenceGenerated) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
