package usecase

import (
	"context"

	"github.com/restroiq/crm-api/internal/entity"
	"github.com/restroiq/crm-api/internal/infra/logger"
	"github.com/restroiq/crm-api/internal/infra/queue"
)

type CreateLeadInput struct {
	RestaurantName   string `json:"restaurantName"`
	ContactPerson    string `json:"contactPerson"`
	Phone            string `json:"phone"`
	City             string `json:"city"`
	Source           string `json:"source"`
	CurrentStatus    string `json:"currentStatus"`
	LeadStage        string `json:"leadStage"`
	NextFollowUpDate string `json:"nextFollowUpDate"`
}

type CreateLeadUseCase struct {
	Leads  LeadRepository
	Events EventProducer
}

func NewCreateLeadUseCase(leads LeadRepository, events EventProducer) *CreateLeadUseCase {
	return &CreateLeadUseCase{Leads: leads, Events: events}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, joinValidationErrors(errs)
	}

	lead := entity.NewLead(
		trimOrEmpty(input.RestaurantName),
		trimOrEmpty(input.Phone),
		trimOrEmpty(input.City),
	)
	lead.ContactPerson = trimOrEmpty(input.ContactPerson)
	if s := trimOrEmpty(input.Source); s != "" {
		lead.Source = s
	}
	if s := trimOrEmpty(input.CurrentStatus); s != "" {
		lead.CurrentStatus = s
	}
	if s := trimOrEmpty(input.LeadStage); s != "" {
		lead.LeadStage = s
	}
	if input.NextFollowUpDate != "" {
		d, err := entity.ParseDate(input.NextFollowUpDate)
		if err != nil {
			return nil, newValidationError("nextFollowUpDate: " + err.Error())
		}
		lead.NextFollowUpDate = &d
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, newStorageError(err)
	}

	if uc.Events != nil {
		payload := queue.LeadEventPayload{
			Event:          queue.EventLeadCreated,
			LeadID:         lead.LeadID,
			RestaurantName: lead.RestaurantName,
			City:           lead.City,
			Status:         lead.CurrentStatus,
			Stage:          lead.LeadStage,
			OccurredAt:     lead.CreatedAt,
		}
		if err := uc.Events.PublishLeadEvent(ctx, payload); err != nil {
			logger.Log.WithError(err).WithField("lead_id", lead.LeadID).
				Warn("lead.created event not published")
		}
	}

	return lead, nil
}
