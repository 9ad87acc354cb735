package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/restroiq/crm-api/internal/entity"
	"github.com/restroiq/crm-api/internal/infra/http/middleware"
	"github.com/restroiq/crm-api/internal/infra/logger"
	"github.com/restroiq/crm-api/internal/usecase"
)

type LeadHandler struct {
	Leads    usecase.LeadRepository
	List     *usecase.ListLeadsUseCase
	Create   *usecase.CreateLeadUseCase
	Update   *usecase.UpdateLeadUseCase
	Delete   *usecase.DeleteLeadUseCase
	DueToday *usecase.DueTodayUseCase
}

func NewLeadHandler(
	leads usecase.LeadRepository,
	list *usecase.ListLeadsUseCase,
	create *usecase.CreateLeadUseCase,
	update *usecase.UpdateLeadUseCase,
	del *usecase.DeleteLeadUseCase,
	dueToday *usecase.DueTodayUseCase,
) *LeadHandler {
	return &LeadHandler{
		Leads:    leads,
		List:     list,
		Create:   create,
		Update:   update,
		Delete:   del,
		DueToday: dueToday,
	}
}

// HandleList returns all leads, soonest follow-up first. Storage failures
// degrade to an empty list so list views stay usable.
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListLeadsInput{
		Status: r.URL.Query().Get("status"),
		Stage:  r.URL.Query().Get("stage"),
		Query:  r.URL.Query().Get("q"),
	}
	leads, err := h.List.Execute(r.Context(), input)
	if err != nil {
		logger.Log.WithError(err).Error("list leads failed, returning empty set")
		writeJSON(w, http.StatusOK, []entity.Lead{})
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lead, err := h.Leads.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "Lead not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	lead, err := h.Create.Execute(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	middleware.RecordLeadCreated()
	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	lead, err := h.Update.Execute(r.Context(), id, input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Delete.Execute(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Lead deleted successfully",
	})
}

// HandleDueToday returns the call queue for the local day, hottest first.
func (h *LeadHandler) HandleDueToday(w http.ResponseWriter, r *http.Request) {
	leads, err := h.DueToday.Execute(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("due-today selection failed, returning empty set")
		writeJSON(w, http.StatusOK, []entity.Lead{})
		return
	}
	writeJSON(w, http.StatusOK, leads)
}
