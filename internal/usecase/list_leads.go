package usecase

import (
	"context"

	"github.com/restroiq/crm-api/internal/entity"
)

type ListLeadsInput struct {
	Status string
	Stage  string
	Query  string
}

type ListLeadsUseCase struct {
	Leads LeadRepository
}

func NewListLeadsUseCase(leads LeadRepository) *ListLeadsUseCase {
	return &ListLeadsUseCase{Leads: leads}
}

// Execute returns leads ordered by next follow-up date, soonest first and
// unscheduled last, narrowed by the optional filters.
func (uc *ListLeadsUseCase) Execute(ctx context.Context, input ListLeadsInput) ([]entity.Lead, error) {
	leads, err := uc.Leads.FindAll(ctx)
	if err != nil {
		return nil, newStorageError(err)
	}
	leads = entity.FilterLeads(leads, entity.LeadFilter{
		Status: input.Status,
		Stage:  input.Stage,
		Query:  input.Query,
	})
	entity.SortByNextFollowUp(leads)
	return leads, nil
}

type DueTodayUseCase struct {
	Leads LeadRepository
}

func NewDueTodayUseCase(leads LeadRepository) *DueTodayUseCase {
	return &DueTodayUseCase{Leads: leads}
}

// Execute returns today's call queue: scheduled on or before today (local
// calendar day), pipeline still open, hottest stage first.
func (uc *DueTodayUseCase) Execute(ctx context.Context) ([]entity.Lead, error) {
	leads, err := uc.Leads.FindAll(ctx)
	if err != nil {
		return nil, newStorageError(err)
	}
	return entity.DueToday(leads, entity.Today()), nil
}
