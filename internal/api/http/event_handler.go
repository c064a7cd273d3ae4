package http

import (
	"net/http"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/service"
)

type EventHandler struct {
	events  service.EventService
	sweeper *service.Sweeper
}

func NewEventHandler(events service.EventService, sweeper *service.Sweeper) *EventHandler {
	return &EventHandler{events: events, sweeper: sweeper}
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, domain.RoleOrganization)
	if !ok {
		return
	}
	var event domain.Event
	if !decodeBody(w, r, &event) {
		return
	}
	if event.Title == "" || event.Date.IsZero() {
		respondError(w, http.StatusBadRequest, "title and date are required")
		return
	}

	if err := h.events.Create(r.Context(), claims.UserID, &event); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := h.events.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, domain.RoleOrganization)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	var event domain.Event
	if !decodeBody(w, r, &event) {
		return
	}
	event.ID = id

	if err := h.events.Update(r.Context(), claims.UserID, &event); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Close(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, domain.RoleOrganization)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := h.events.Close(r.Context(), claims.UserID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// List supports org_id, category and status filters plus optional paging.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := actorID(w, r); !ok {
		return
	}

	q := r.URL.Query()
	var orgID int32
	if raw := q.Get("org_id"); raw != "" {
		id, err := parseInt32(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid org_id")
			return
		}
		orgID = id
	}

	list, err := h.events.List(r.Context(), orgID, q.Get("category"), domain.EventStatus(q.Get("status")), pagingFrom(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// ProcessExpired triggers an explicit completion sweep. With dry_run the
// candidates are reported without writing anything.
func (h *EventHandler) ProcessExpired(w http.ResponseWriter, r *http.Request) {
	if _, ok := actorID(w, r); !ok {
		return
	}
	var req struct {
		DryRun bool `json:"dry_run"`
	}
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	result, err := h.sweeper.Sweep(r.Context(), req.DryRun)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
