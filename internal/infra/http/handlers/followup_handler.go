package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/restroiq/crm-api/internal/entity"
	"github.com/restroiq/crm-api/internal/infra/http/middleware"
	"github.com/restroiq/crm-api/internal/infra/logger"
	"github.com/restroiq/crm-api/internal/usecase"
)

type FollowUpHandler struct {
	FollowUps usecase.FollowUpRepository
	Log       *usecase.LogFollowUpUseCase
}

func NewFollowUpHandler(followUps usecase.FollowUpRepository, logUC *usecase.LogFollowUpUseCase) *FollowUpHandler {
	return &FollowUpHandler{FollowUps: followUps, Log: logUC}
}

// HandleListByLead returns a lead's history, newest first.
func (h *FollowUpHandler) HandleListByLead(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadId")
	followUps, err := h.FollowUps.FindByLeadID(r.Context(), leadID)
	if err != nil {
		logger.Log.WithError(err).Error("list follow-ups failed, returning empty set")
		writeJSON(w, http.StatusOK, []entity.FollowUp{})
		return
	}
	writeJSON(w, http.StatusOK, followUps)
}

func (h *FollowUpHandler) HandleLog(w http.ResponseWriter, r *http.Request) {
	var input usecase.LogFollowUpInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	fu, err := h.Log.Execute(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	middleware.RecordFollowUpLogged(fu.Status)
	if fu.Status == entity.StatusConverted {
		middleware.RecordLeadConverted()
	}
	writeJSON(w, http.StatusCreated, fu)
}
