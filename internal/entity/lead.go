package entity

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrLeadNotFound = errors.New("lead not found")

// Interaction outcomes. Status tracks what happened on the last contact,
// Stage tracks sales temperature; the two axes are independent.
const (
	StatusNew             = "New"
	StatusCallNotPickedUp = "Call not picked up"
	StatusSentWhatsApp    = "Sent details on WhatsApp"
	StatusFollowUp        = "Follow up"
	StatusOnGoing         = "On going"
	StatusConverted       = "Converted"
	StatusFakeLead        = "Fake lead"
	StatusNotInterested   = "Not Interested"
	StatusReject          = "Reject"
)

const (
	StageCold   = "Cold"
	StageWarm   = "Warm"
	StageHot    = "Hot"
	StageClosed = "Closed"
)

const (
	SourceManual   = "Manual"
	SourceWhatsApp = "WhatsApp"
	SourceReferral = "Referral"
)

var validStatuses = map[string]bool{
	StatusNew:             true,
	StatusCallNotPickedUp: true,
	StatusSentWhatsApp:    true,
	StatusFollowUp:        true,
	StatusOnGoing:         true,
	StatusConverted:       true,
	StatusFakeLead:        true,
	StatusNotInterested:   true,
	StatusReject:          true,
}

var validStages = map[string]bool{
	StageCold:   true,
	StageWarm:   true,
	StageHot:    true,
	StageClosed: true,
}

func IsValidStatus(s string) bool { return validStatuses[s] }
func IsValidStage(s string) bool  { return validStages[s] }

// IsTerminalStatus reports whether the pipeline is finished for a lead:
// terminal leads never show up in the due-today queue.
func IsTerminalStatus(s string) bool {
	return s == StatusConverted || s == StatusNotInterested
}

type Lead struct {
	LeadID           string     `json:"leadId"`
	RestaurantName   string     `json:"restaurantName"`
	ContactPerson    string     `json:"contactPerson,omitempty"`
	Phone            string     `json:"phone"`
	City             string     `json:"city"`
	Source           string     `json:"source,omitempty"`
	CurrentStatus    string     `json:"currentStatus"`
	LeadStage        string     `json:"leadStage"`
	NextFollowUpDate *Date      `json:"nextFollowUpDate,omitempty"`
	LastFollowUpDate *time.Time `json:"lastFollowUpDate,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// NewLead builds a lead with generated id, defaults and timestamps.
// Required strings must already be trimmed and non-empty.
func NewLead(restaurantName, phone, city string) *Lead {
	now := time.Now()
	return &Lead{
		LeadID:         uuid.New().String(),
		RestaurantName: restaurantName,
		Phone:          phone,
		City:           city,
		Source:         SourceManual,
		CurrentStatus:  StatusNew,
		LeadStage:      StageCold,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (l *Lead) Validate() error {
	if l.RestaurantName == "" {
		return errors.New("restaurantName is required")
	}
	if l.Phone == "" {
		return errors.New("phone is required")
	}
	if l.City == "" {
		return errors.New("city is required")
	}
	return nil
}

// DueBy reports whether the lead needs a call on or before the given day.
// Overdue leads count as due; finished leads never do.
func (l *Lead) DueBy(today Date) bool {
	if l.NextFollowUpDate == nil || l.NextFollowUpDate.IsZero() {
		return false
	}
	if IsTerminalStatus(l.CurrentStatus) {
		return false
	}
	return !l.NextFollowUpDate.After(today)
}

type LeadFilter struct {
	Status string
	Stage  string
	Query  string
}

// FilterLeads is a pure filter over a caller-owned slice; list views pass
// their own snapshot instead of sharing a module-level cache.
func FilterLeads(leads []Lead, f LeadFilter) []Lead {
	result := make([]Lead, 0, len(leads))
	q := strings.ToLower(strings.TrimSpace(f.Query))
	for _, l := range leads {
		if f.Status != "" && l.CurrentStatus != f.Status {
			continue
		}
		if f.Stage != "" && l.LeadStage != f.Stage {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(l.RestaurantName), q) &&
			!strings.Contains(l.Phone, q) &&
			!strings.Contains(strings.ToLower(l.City), q) {
			continue
		}
		result = append(result, l)
	}
	return result
}

// SortByNextFollowUp orders soonest first, unscheduled leads last.
func SortByNextFollowUp(leads []Lead) {
	sort.SliceStable(leads, func(i, j int) bool {
		a, b := leads[i].NextFollowUpDate, leads[j].NextFollowUpDate
		if a == nil || a.IsZero() {
			return false
		}
		if b == nil || b.IsZero() {
			return true
		}
		return b.After(*a)
	})
}

var stagePriority = map[string]int{
	StageHot:    3,
	StageWarm:   2,
	StageCold:   1,
	StageClosed: 0,
}

// DueToday selects the call queue for the given day, hottest leads first.
func DueToday(leads []Lead, today Date) []Lead {
	due := make([]Lead, 0)
	for _, l := range leads {
		if l.DueBy(today) {
			due = append(due, l)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return stagePriority[due[i].LeadStage] > stagePriority[due[j].LeadStage]
	})
	return due
}
