package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/restroiq/crm-api/internal/entity"
)

// UpdateLeadInput is a partial patch: nil pointers mean "leave unchanged".
type UpdateLeadInput struct {
	RestaurantName   *string `json:"restaurantName"`
	ContactPerson    *string `json:"contactPerson"`
	Phone            *string `json:"phone"`
	City             *string `json:"city"`
	Source           *string `json:"source"`
	CurrentStatus    *string `json:"currentStatus"`
	LeadStage        *string `json:"leadStage"`
	NextFollowUpDate *string `json:"nextFollowUpDate"`
	LastFollowUpDate *string `json:"lastFollowUpDate"`
}

type UpdateLeadUseCase struct {
	Leads LeadRepository
}

func NewUpdateLeadUseCase(leads LeadRepository) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{Leads: leads}
}

func (uc *UpdateLeadUseCase) Execute(ctx context.Context, leadID string, input UpdateLeadInput) (*entity.Lead, error) {
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, newNotFoundError()
		}
		return nil, newStorageError(err)
	}

	changed := 0

	// Required strings: a provided value that trims to empty is ignored
	// rather than wiping the field.
	if input.RestaurantName != nil {
		if v := trimOrEmpty(*input.RestaurantName); v != "" {
			lead.RestaurantName = v
			changed++
		}
	}
	if input.Phone != nil {
		if v := trimOrEmpty(*input.Phone); v != "" {
			lead.Phone = v
			changed++
		}
	}
	if input.City != nil {
		if v := trimOrEmpty(*input.City); v != "" {
			lead.City = v
			changed++
		}
	}
	if input.ContactPerson != nil {
		lead.ContactPerson = trimOrEmpty(*input.ContactPerson)
		changed++
	}
	if input.Source != nil {
		lead.Source = trimOrEmpty(*input.Source)
		changed++
	}
	if input.CurrentStatus != nil {
		s := trimOrEmpty(*input.CurrentStatus)
		if !entity.IsValidStatus(s) {
			return nil, newValidationError("currentStatus: is not a known status")
		}
		lead.CurrentStatus = s
		changed++
	}
	if input.LeadStage != nil {
		s := trimOrEmpty(*input.LeadStage)
		if !entity.IsValidStage(s) {
			return nil, newValidationError("leadStage: must be Cold, Warm, Hot or Closed")
		}
		lead.LeadStage = s
		changed++
	}
	if input.NextFollowUpDate != nil {
		if *input.NextFollowUpDate == "" {
			lead.NextFollowUpDate = nil
		} else {
			d, err := entity.ParseDate(*input.NextFollowUpDate)
			if err != nil {
				return nil, newValidationError("nextFollowUpDate: " + err.Error())
			}
			lead.NextFollowUpDate = &d
		}
		changed++
	}
	if input.LastFollowUpDate != nil {
		if *input.LastFollowUpDate == "" {
			lead.LastFollowUpDate = nil
		} else {
			t, err := parseTimestamp(*input.LastFollowUpDate)
			if err != nil {
				return nil, newValidationError("lastFollowUpDate: " + err.Error())
			}
			lead.LastFollowUpDate = &t
		}
		changed++
	}

	if changed == 0 {
		return nil, newValidationError("no valid fields to update")
	}

	lead.UpdatedAt = time.Now()
	if err := uc.Leads.Update(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, newNotFoundError()
		}
		return nil, newStorageError(err)
	}
	return lead, nil
}
