package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/restroiq/crm-api/internal/entity"
	"github.com/restroiq/crm-api/internal/infra/queue"
	"github.com/restroiq/crm-api/internal/usecase"
)

func existingLead() *entity.Lead {
	next := entity.NewDate(2026, 9, 5)
	return &entity.Lead{
		LeadID:           "lead-123",
		RestaurantName:   "Spice Villa",
		Phone:            "9876543210",
		City:             "Jaipur",
		CurrentStatus:    entity.StatusFollowUp,
		LeadStage:        entity.StageWarm,
		NextFollowUpDate: &next,
		CreatedAt:        time.Now().Add(-72 * time.Hour),
	}
}

func TestLogFollowUpConvertedKeepsScheduledDate(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	fuRepo := new(MockFollowUpRepository)

	lead := existingLead()
	prior := lead.NextFollowUpDate.String()

	leadRepo.On("FindByID", ctx, "lead-123").Return(lead, nil)
	fuRepo.On("Create", ctx, mock.Anything).Return(nil)
	leadRepo.On("Update", ctx, mock.Anything).Return(nil)

	uc := usecase.NewLogFollowUpUseCase(leadRepo, fuRepo, nil, nil, "")
	fu, err := uc.Execute(ctx, usecase.LogFollowUpInput{
		LeadID: "lead-123",
		Status: entity.StatusConverted,
		Notes:  "signed the contract",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, fu.FollowUpID)
	assert.Equal(t, entity.StatusConverted, fu.Status)
	assert.False(t, fu.FollowUpDate.IsZero())
	assert.Nil(t, fu.NextFollowUpDate, "Converted must not auto-schedule")

	// Lead snapshot synced, prior scheduled date left alone.
	assert.Equal(t, entity.StatusConverted, lead.CurrentStatus)
	assert.NotNil(t, lead.LastFollowUpDate)
	assert.True(t, lead.LastFollowUpDate.Equal(fu.FollowUpDate))
	assert.Equal(t, prior, lead.NextFollowUpDate.String())

	leadRepo.AssertCalled(t, "Update", ctx, lead)
}

func TestLogFollowUpUnknownLeadCreatesNothing(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	fuRepo := new(MockFollowUpRepository)

	leadRepo.On("FindByID", ctx, "ghost").Return(nil, entity.ErrLeadNotFound)

	uc := usecase.NewLogFollowUpUseCase(leadRepo, fuRepo, nil, nil, "")
	fu, err := uc.Execute(ctx, usecase.LogFollowUpInput{
		LeadID: "ghost",
		Status: entity.StatusOnGoing,
	})

	assert.Nil(t, fu)
	var de *usecase.DomainError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, usecase.CodeLeadNotFound, de.Code)
	fuRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogFollowUpRequiresStatus(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	fuRepo := new(MockFollowUpRepository)

	uc := usecase.NewLogFollowUpUseCase(leadRepo, fuRepo, nil, nil, "")
	_, err := uc.Execute(context.Background(), usecase.LogFollowUpInput{LeadID: "lead-123"})

	var de *usecase.DomainError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, usecase.CodeValidation, de.Code)
	assert.Contains(t, de.Message, "status")
	leadRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestLogFollowUpAutoSchedulesAttemptStatuses(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	fuRepo := new(MockFollowUpRepository)

	lead := existingLead()
	leadRepo.On("FindByID", ctx, "lead-123").Return(lead, nil)
	// One unanswered attempt already on record: streak 1, next gap 3 days.
	fuRepo.On("FindByLeadID", ctx, "lead-123").Return([]entity.FollowUp{
		{Status: entity.StatusCallNotPickedUp},
	}, nil)
	fuRepo.On("Create", ctx, mock.Anything).Return(nil)
	leadRepo.On("Update", ctx, mock.Anything).Return(nil)

	uc := usecase.NewLogFollowUpUseCase(leadRepo, fuRepo, nil, nil, "")
	fu, err := uc.Execute(ctx, usecase.LogFollowUpInput{
		LeadID: "lead-123",
		Status: entity.StatusCallNotPickedUp,
	})

	assert.NoError(t, err)
	expected := entity.Today().AddDays(3).String()
	assert.NotNil(t, fu.NextFollowUpDate)
	assert.Equal(t, expected, fu.NextFollowUpDate.String())
	assert.Equal(t, expected, lead.NextFollowUpDate.String())
}

func TestLogFollowUpManualDateWinsOverDrip(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	fuRepo := new(MockFollowUpRepository)

	lead := existingLead()
	leadRepo.On("FindByID", ctx, "lead-123").Return(lead, nil)
	fuRepo.On("Create", ctx, mock.Anything).Return(nil)
	leadRepo.On("Update", ctx, mock.Anything).Return(nil)

	uc := usecase.NewLogFollowUpUseCase(leadRepo, fuRepo, nil, nil, "")
	fu, err := uc.Execute(ctx, usecase.LogFollowUpInput{
		LeadID:           "lead-123",
		Status:           entity.StatusCallNotPickedUp,
		NextFollowUpDate: "2026-12-24",
	})

	assert.NoError(t, err)
	assert.Equal(t, "2026-12-24", fu.NextFollowUpDate.String())
	fuRepo.AssertNotCalled(t, "FindByLeadID", mock.Anything, mock.Anything)
}

func TestLogFollowUpSurvivesLeadSyncFailure(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	fuRepo := new(MockFollowUpRepository)

	lead := existingLead()
	leadRepo.On("FindByID", ctx, "lead-123").Return(lead, nil)
	fuRepo.On("Create", ctx, mock.Anything).Return(nil)
	leadRepo.On("Update", ctx, mock.Anything).Return(errors.New("connection reset"))

	uc := usecase.NewLogFollowUpUseCase(leadRepo, fuRepo, nil, nil, "")
	fu, err := uc.Execute(ctx, usecase.LogFollowUpInput{
		LeadID: "lead-123",
		Status: entity.StatusOnGoing,
	})

	// The interaction record is durable; the sync failure is operator
	// noise, not a caller failure.
	assert.NoError(t, err)
	assert.NotNil(t, fu)
}

func TestLogFollowUpPrefersAtomicStore(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	store := new(MockAtomicFollowUpStore)

	lead := existingLead()
	leadRepo.On("FindByID", ctx, "lead-123").Return(lead, nil)
	store.On("LogFollowUp", ctx, mock.Anything, lead).Return(nil)

	uc := usecase.NewLogFollowUpUseCase(leadRepo, store, nil, nil, "")
	fu, err := uc.Execute(ctx, usecase.LogFollowUpInput{
		LeadID: "lead-123",
		Status: entity.StatusOnGoing,
	})

	assert.NoError(t, err)
	assert.NotNil(t, fu)
	store.AssertCalled(t, "LogFollowUp", ctx, mock.Anything, lead)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	leadRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLogFollowUpConversionSideChannels(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	fuRepo := new(MockFollowUpRepository)
	events := new(MockEventProducer)
	mailer := new(MockAlertMailer)

	lead := existingLead()
	leadRepo.On("FindByID", ctx, "lead-123").Return(lead, nil)
	fuRepo.On("Create", ctx, mock.Anything).Return(nil)
	leadRepo.On("Update", ctx, mock.Anything).Return(nil)
	events.On("PublishLeadEvent", ctx, mock.MatchedBy(func(p queue.LeadEventPayload) bool {
		return p.Event == queue.EventLeadConverted && p.LeadID == "lead-123"
	})).Return(nil)
	mailer.On("SendConversionAlert", "sales@restroiq.in", "Spice Villa", "", "Jaipur", "9876543210").Return(nil)

	uc := usecase.NewLogFollowUpUseCase(leadRepo, fuRepo, events, mailer, "sales@restroiq.in")
	_, err := uc.Execute(ctx, usecase.LogFollowUpInput{
		LeadID: "lead-123",
		Status: entity.StatusConverted,
	})

	assert.NoError(t, err)
	events.AssertExpectations(t)
	mailer.AssertExpectations(t)
}
