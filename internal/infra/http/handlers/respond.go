package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/restroiq/crm-api/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps the usecase error taxonomy onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	if de, ok := err.(*usecase.DomainError); ok {
		switch de.Code {
		case usecase.CodeValidation:
			writeError(w, http.StatusBadRequest, de.Message)
		case usecase.CodeLeadNotFound:
			writeError(w, http.StatusNotFound, de.Message)
		default:
			writeError(w, http.StatusInternalServerError, de.Message)
		}
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
