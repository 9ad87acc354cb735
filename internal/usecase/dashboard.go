package usecase

import (
	"context"

	"github.com/restroiq/crm-api/internal/entity"
)

type DashboardStats struct {
	TotalLeads    int `json:"totalLeads"`
	CallsDueToday int `json:"callsDueToday"`
	Cold          int `json:"cold"`
	Warm          int `json:"warm"`
	Hot           int `json:"hot"`
	Converted     int `json:"converted"`
}

type DashboardStatsUseCase struct {
	Leads LeadRepository
}

func NewDashboardStatsUseCase(leads LeadRepository) *DashboardStatsUseCase {
	return &DashboardStatsUseCase{Leads: leads}
}

// Execute recomputes the counters with a full scan on every call. Lead
// volumes are manual-pipeline sized, so there is nothing to materialize.
func (uc *DashboardStatsUseCase) Execute(ctx context.Context) (*DashboardStats, error) {
	leads, err := uc.Leads.FindAll(ctx)
	if err != nil {
		return nil, newStorageError(err)
	}
	return ComputeDashboardStats(leads, entity.Today()), nil
}

// ComputeDashboardStats counts over a snapshot. "Due today" follows the
// same policy as the call queue: scheduled on or before the local day and
// not in a terminal status.
func ComputeDashboardStats(leads []entity.Lead, today entity.Date) *DashboardStats {
	stats := &DashboardStats{TotalLeads: len(leads)}
	for _, l := range leads {
		if l.DueBy(today) {
			stats.CallsDueToday++
		}
		switch l.LeadStage {
		case entity.StageCold:
			stats.Cold++
		case entity.StageWarm:
			stats.Warm++
		case entity.StageHot:
			stats.Hot++
		}
		if l.CurrentStatus == entity.StatusConverted {
			stats.Converted++
		}
	}
	return stats
}
