package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/restroiq/crm-api/internal/entity"
	"github.com/restroiq/crm-api/internal/infra/queue"
	"github.com/restroiq/crm-api/internal/usecase"
)

func TestCreateLeadRejectsMissingFields(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	uc := usecase.NewCreateLeadUseCase(leadRepo, nil)

	_, err := uc.Execute(context.Background(), usecase.CreateLeadInput{
		RestaurantName: "  ",
		Phone:          "",
		City:           "Jaipur",
	})

	var de *usecase.DomainError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, usecase.CodeValidation, de.Code)
	assert.Contains(t, de.Message, "restaurantName")
	assert.Contains(t, de.Message, "phone")
	leadRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLeadTrimsAndDefaults(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	leadRepo.On("Create", ctx, mock.Anything).Return(nil)

	uc := usecase.NewCreateLeadUseCase(leadRepo, nil)
	lead, err := uc.Execute(ctx, usecase.CreateLeadInput{
		RestaurantName: "  Spice Villa  ",
		Phone:          " 9876543210 ",
		City:           "Jaipur",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Spice Villa", lead.RestaurantName)
	assert.Equal(t, "9876543210", lead.Phone)
	assert.Equal(t, entity.StatusNew, lead.CurrentStatus)
	assert.Equal(t, entity.StageCold, lead.LeadStage)
	assert.Equal(t, entity.SourceManual, lead.Source)
	assert.NotEmpty(t, lead.LeadID)
}

func TestCreateLeadHonorsOverrides(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	leadRepo.On("Create", ctx, mock.Anything).Return(nil)

	uc := usecase.NewCreateLeadUseCase(leadRepo, nil)
	lead, err := uc.Execute(ctx, usecase.CreateLeadInput{
		RestaurantName:   "Tandoori Nights",
		ContactPerson:    "Ravi",
		Phone:            "9812345678",
		City:             "Delhi",
		Source:           entity.SourceReferral,
		CurrentStatus:    entity.StatusFollowUp,
		LeadStage:        entity.StageWarm,
		NextFollowUpDate: "2026-09-03",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Ravi", lead.ContactPerson)
	assert.Equal(t, entity.SourceReferral, lead.Source)
	assert.Equal(t, entity.StatusFollowUp, lead.CurrentStatus)
	assert.Equal(t, entity.StageWarm, lead.LeadStage)
	assert.Equal(t, "2026-09-03", lead.NextFollowUpDate.String())
}

func TestCreateLeadRejectsUnknownStatus(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	uc := usecase.NewCreateLeadUseCase(leadRepo, nil)

	_, err := uc.Execute(context.Background(), usecase.CreateLeadInput{
		RestaurantName: "Spice Villa",
		Phone:          "9876543210",
		City:           "Jaipur",
		CurrentStatus:  "Maybe Later",
	})

	var de *usecase.DomainError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, usecase.CodeValidation, de.Code)
	leadRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLeadPublishesEvent(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	events := new(MockEventProducer)
	leadRepo.On("Create", ctx, mock.Anything).Return(nil)
	events.On("PublishLeadEvent", ctx, mock.MatchedBy(func(p queue.LeadEventPayload) bool {
		return p.Event == queue.EventLeadCreated && p.RestaurantName == "Spice Villa"
	})).Return(nil)

	uc := usecase.NewCreateLeadUseCase(leadRepo, events)
	_, err := uc.Execute(ctx, usecase.CreateLeadInput{
		RestaurantName: "Spice Villa",
		Phone:          "9876543210",
		City:           "Jaipur",
	})

	assert.NoError(t, err)
	events.AssertExpectations(t)
}

func TestCreateLeadSurvivesPublishFailure(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	events := new(MockEventProducer)
	leadRepo.On("Create", ctx, mock.Anything).Return(nil)
	events.On("PublishLeadEvent", ctx, mock.Anything).Return(errors.New("channel closed"))

	uc := usecase.NewCreateLeadUseCase(leadRepo, events)
	lead, err := uc.Execute(ctx, usecase.CreateLeadInput{
		RestaurantName: "Spice Villa",
		Phone:          "9876543210",
		City:           "Jaipur",
	})

	assert.NoError(t, err)
	assert.NotNil(t, lead)
}
