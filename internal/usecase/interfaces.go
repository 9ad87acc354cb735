package usecase

import (
	"context"

	"github.com/restroiq/crm-api/internal/entity"
	"github.com/restroiq/crm-api/internal/infra/queue"
)

type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	FindAll(ctx context.Context) ([]entity.Lead, error)
	FindByID(ctx context.Context, id string) (*entity.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
	// Delete removes the lead and its follow-up history.
	Delete(ctx context.Context, id string) error
}

type FollowUpRepository interface {
	Create(ctx context.Context, fu *entity.FollowUp) error
	// FindByLeadID returns the history newest first.
	FindByLeadID(ctx context.Context, leadID string) ([]entity.FollowUp, error)
}

// AtomicFollowUpStore is an optional capability: stores that can write the
// follow-up and the lead snapshot in one transaction advertise it, and the
// coordinator prefers it over the fixed-order two-step path.
type AtomicFollowUpStore interface {
	LogFollowUp(ctx context.Context, fu *entity.FollowUp, lead *entity.Lead) error
}

type EventProducer interface {
	PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error
}

type AlertMailer interface {
	SendConversionAlert(to, restaurantName, contactPerson, city, phone string) error
}
