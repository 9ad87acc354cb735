package usecase

import (
	"context"
	"errors"

	"github.com/restroiq/crm-api/internal/entity"
)

type DeleteLeadUseCase struct {
	Leads LeadRepository
}

func NewDeleteLeadUseCase(leads LeadRepository) *DeleteLeadUseCase {
	return &DeleteLeadUseCase{Leads: leads}
}

// Execute removes the lead and, through the repository, its follow-up
// history. Orphaned follow-ups would break the referential invariant the
// logging path checks for.
func (uc *DeleteLeadUseCase) Execute(ctx context.Context, leadID string) error {
	if _, err := uc.Leads.FindByID(ctx, leadID); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return newNotFoundError()
		}
		return newStorageError(err)
	}
	if err := uc.Leads.Delete(ctx, leadID); err != nil {
		return newStorageError(err)
	}
	return nil
}
