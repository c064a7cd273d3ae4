package http

import (
	"net/http"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/service"
)

type StatsHandler struct {
	stats service.StatsService
}

func NewStatsHandler(stats service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// subjectID resolves the {id} path variable and checks the caller may read
// that subject's dashboard: the subject themselves, or an admin.
func subjectID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	claims, ok := claimsFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return 0, false
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid profile id")
		return 0, false
	}
	if claims.UserID != id && claims.Role != domain.RoleAdmin {
		respondError(w, http.StatusForbidden, "not permitted")
		return 0, false
	}
	return id, true
}

func (h *StatsHandler) Volunteer(w http.ResponseWriter, r *http.Request) {
	id, ok := subjectID(w, r)
	if !ok {
		return
	}

	stats, err := h.stats.VolunteerStats(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) Organization(w http.ResponseWriter, r *http.Request) {
	id, ok := subjectID(w, r)
	if !ok {
		return
	}

	stats, err := h.stats.OrganizationStats(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
