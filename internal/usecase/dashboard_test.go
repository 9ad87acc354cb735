package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/restroiq/crm-api/internal/entity"
	"github.com/restroiq/crm-api/internal/usecase"
)

func TestComputeDashboardStats(t *testing.T) {
	today := entity.NewDate(2026, 8, 29)
	dueNow := today
	leads := []entity.Lead{
		{LeadStage: entity.StageCold, CurrentStatus: entity.StatusNew, NextFollowUpDate: &dueNow},
		{LeadStage: entity.StageHot, CurrentStatus: entity.StatusConverted},
	}

	stats := usecase.ComputeDashboardStats(leads, today)

	assert.Equal(t, 2, stats.TotalLeads)
	assert.Equal(t, 1, stats.Cold)
	assert.Equal(t, 0, stats.Warm)
	assert.Equal(t, 1, stats.Hot)
	assert.Equal(t, 1, stats.Converted)
	assert.Equal(t, 1, stats.CallsDueToday, "the converted lead has no due call")
}

func TestComputeDashboardStatsCountsOverdue(t *testing.T) {
	today := entity.NewDate(2026, 8, 29)
	lastWeek := entity.NewDate(2026, 8, 22)
	tomorrow := entity.NewDate(2026, 8, 30)
	leads := []entity.Lead{
		{LeadStage: entity.StageWarm, CurrentStatus: entity.StatusFollowUp, NextFollowUpDate: &lastWeek},
		{LeadStage: entity.StageWarm, CurrentStatus: entity.StatusFollowUp, NextFollowUpDate: &tomorrow},
		{LeadStage: entity.StageWarm, CurrentStatus: entity.StatusFollowUp},
	}

	stats := usecase.ComputeDashboardStats(leads, today)

	assert.Equal(t, 1, stats.CallsDueToday)
	assert.Equal(t, 3, stats.Warm)
}

func TestComputeDashboardStatsIgnoresUnknownStage(t *testing.T) {
	stats := usecase.ComputeDashboardStats([]entity.Lead{
		{LeadStage: entity.StageClosed, CurrentStatus: entity.StatusConverted},
		{LeadStage: "Lukewarm", CurrentStatus: entity.StatusNew},
	}, entity.NewDate(2026, 8, 29))

	assert.Equal(t, 2, stats.TotalLeads)
	assert.Equal(t, 0, stats.Cold+stats.Warm+stats.Hot)
	assert.Equal(t, 1, stats.Converted)
}

func TestDashboardStatsUseCaseEmptyPipeline(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	leadRepo.On("FindAll", ctx).Return([]entity.Lead{}, nil)

	uc := usecase.NewDashboardStatsUseCase(leadRepo)
	stats, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, &usecase.DashboardStats{}, stats)
}

func TestDashboardStatsUseCaseStorageFailure(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	leadRepo.On("FindAll", ctx).Return(nil, errors.New("connection refused"))

	uc := usecase.NewDashboardStatsUseCase(leadRepo)
	stats, err := uc.Execute(ctx)

	assert.Nil(t, stats)
	var de *usecase.DomainError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, usecase.CodeStorage, de.Code)
}
