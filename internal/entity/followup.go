package entity

import (
	"time"

	"github.com/google/uuid"
)

// FollowUp is one logged interaction with a lead. Records are append-only:
// once written they are never edited or removed, so the sequence per lead
// is a faithful contact history.
type FollowUp struct {
	FollowUpID       string    `json:"followUpId"`
	LeadID           string    `json:"leadId"`
	FollowUpDate     time.Time `json:"followUpDate"`
	Status           string    `json:"status"`
	Notes            string    `json:"notes,omitempty"`
	NextFollowUpDate *Date     `json:"nextFollowUpDate,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// NewFollowUp builds a follow-up with generated id; followUpDate falls back
// to now when the caller did not supply one.
func NewFollowUp(leadID, status, notes string, followUpDate time.Time, next *Date) *FollowUp {
	now := time.Now()
	if followUpDate.IsZero() {
		followUpDate = now
	}
	return &FollowUp{
		FollowUpID:       uuid.New().String(),
		LeadID:           leadID,
		FollowUpDate:     followUpDate,
		Status:           status,
		Notes:            notes,
		NextFollowUpDate: next,
		CreatedAt:        now,
	}
}
