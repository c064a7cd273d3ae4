package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/logger"
	"impactolocal-backend/internal/security"
	"impactolocal-backend/internal/service"
)

// Every endpoint answers with the same envelope:
//   {"success": true,  "data": ...}
//   {"success": false, "error": "..."}

type successEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data}); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{Success: false, Error: message}) //nolint:errcheck
}

// respondServiceError maps domain errors onto HTTP statuses. Unknown errors
// are logged and hidden behind a generic 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var invalidState *domain.InvalidStateError
	var eventState *domain.EventStateError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNotAuthorized):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrDuplicateApplication):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, security.ErrInvalidToken), errors.Is(err, security.ErrExpiredToken), errors.Is(err, security.ErrWrongTokenType):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &invalidState), errors.As(err, &eventState):
		respondError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("Request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
