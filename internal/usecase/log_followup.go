package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/restroiq/crm-api/internal/entity"
	"github.com/restroiq/crm-api/internal/infra/logger"
	"github.com/restroiq/crm-api/internal/infra/queue"
)

type LogFollowUpInput struct {
	LeadID           string `json:"leadId"`
	Status           string `json:"status"`
	Notes            string `json:"notes"`
	FollowUpDate     string `json:"followUpDate"`
	NextFollowUpDate string `json:"nextFollowUpDate"`
	LeadStage        string `json:"leadStage"`
}

// LogFollowUpUseCase records one interaction as a single logical operation
// over both entities: append the immutable FollowUp, then sync the lead's
// denormalized snapshot (currentStatus, lastFollowUpDate, and
// nextFollowUpDate/leadStage only when supplied).
//
// The follow-up is written first. If the lead sync fails afterwards the
// interaction record is kept and returned as success; the inconsistency is
// logged for operators instead of being thrown back at the caller. Stores
// that implement AtomicFollowUpStore get both writes in one transaction
// and never hit that path.
type LogFollowUpUseCase struct {
	Leads     LeadRepository
	FollowUps FollowUpRepository
	Events    EventProducer
	Mailer    AlertMailer
	AlertTo   string
}

func NewLogFollowUpUseCase(
	leads LeadRepository,
	followUps FollowUpRepository,
	events EventProducer,
	mailer AlertMailer,
	alertTo string,
) *LogFollowUpUseCase {
	return &LogFollowUpUseCase{
		Leads:     leads,
		FollowUps: followUps,
		Events:    events,
		Mailer:    mailer,
		AlertTo:   alertTo,
	}
}

func (uc *LogFollowUpUseCase) Execute(ctx context.Context, input LogFollowUpInput) (*entity.FollowUp, error) {
	if errs := ValidateLogFollowUpInput(input); len(errs) > 0 {
		return nil, joinValidationErrors(errs)
	}
	status := trimOrEmpty(input.Status)

	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, newNotFoundError()
		}
		return nil, newStorageError(err)
	}

	var followUpDate time.Time
	if input.FollowUpDate != "" {
		followUpDate, err = parseTimestamp(input.FollowUpDate)
		if err != nil {
			return nil, newValidationError("followUpDate: " + err.Error())
		}
	}

	next, err := uc.resolveNextDate(ctx, input, status)
	if err != nil {
		return nil, err
	}

	fu := entity.NewFollowUp(lead.LeadID, status, trimOrEmpty(input.Notes), followUpDate, next)

	lead.CurrentStatus = status
	lead.LastFollowUpDate = &fu.FollowUpDate
	if next != nil {
		lead.NextFollowUpDate = next
	}
	if stage := trimOrEmpty(input.LeadStage); stage != "" {
		lead.LeadStage = stage
	}
	lead.UpdatedAt = time.Now()

	if atomic, ok := uc.FollowUps.(AtomicFollowUpStore); ok {
		if err := atomic.LogFollowUp(ctx, fu, lead); err != nil {
			return nil, newStorageError(err)
		}
	} else {
		if err := uc.FollowUps.Create(ctx, fu); err != nil {
			return nil, newStorageError(err)
		}
		if err := uc.Leads.Update(ctx, lead); err != nil {
			// Follow-up is durable; keep it and surface the drift to
			// operators only.
			logger.Log.WithError(err).WithFields(map[string]interface{}{
				"lead_id":      lead.LeadID,
				"follow_up_id": fu.FollowUpID,
			}).Error("lead snapshot not updated after follow-up write")
		}
	}

	uc.notify(ctx, lead, fu)
	return fu, nil
}

// resolveNextDate prefers the caller's explicit date; otherwise it asks the
// drip policy, which only schedules for no-response attempt statuses.
func (uc *LogFollowUpUseCase) resolveNextDate(ctx context.Context, input LogFollowUpInput, status string) (*entity.Date, error) {
	if input.NextFollowUpDate != "" {
		d, err := entity.ParseDate(input.NextFollowUpDate)
		if err != nil {
			return nil, newValidationError("nextFollowUpDate: " + err.Error())
		}
		return &d, nil
	}
	if !entity.IsAttemptStatus(status) {
		return nil, nil
	}
	history, err := uc.FollowUps.FindByLeadID(ctx, input.LeadID)
	if err != nil {
		return nil, newStorageError(err)
	}
	if d, ok := entity.NextContactDate(status, history, entity.Today()); ok {
		return &d, nil
	}
	return nil, nil
}

func (uc *LogFollowUpUseCase) notify(ctx context.Context, lead *entity.Lead, fu *entity.FollowUp) {
	if uc.Events != nil {
		event := queue.EventFollowUpLogged
		if fu.Status == entity.StatusConverted {
			event = queue.EventLeadConverted
		}
		payload := queue.LeadEventPayload{
			Event:          event,
			LeadID:         lead.LeadID,
			FollowUpID:     fu.FollowUpID,
			RestaurantName: lead.RestaurantName,
			City:           lead.City,
			Status:         fu.Status,
			Stage:          lead.LeadStage,
			OccurredAt:     fu.FollowUpDate,
		}
		if err := uc.Events.PublishLeadEvent(ctx, payload); err != nil {
			logger.Log.WithError(err).WithField("lead_id", lead.LeadID).
				Warnf("%s event not published", payload.Event)
		}
	}

	if uc.Mailer != nil && uc.AlertTo != "" && fu.Status == entity.StatusConverted {
		if err := uc.Mailer.SendConversionAlert(uc.AlertTo, lead.RestaurantName, lead.ContactPerson, lead.City, lead.Phone); err != nil {
			logger.Log.WithError(err).WithField("lead_id", lead.LeadID).
				Warn("conversion alert mail not sent")
		}
	}
}

// parseTimestamp accepts a full ISO 8601 timestamp or a bare date.
func parseTimestamp(s string) (time.Time, error) {
	s = trimOrEmpty(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: want ISO 8601", s)
}
