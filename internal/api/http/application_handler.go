package http

import (
	"net/http"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/service"
)

type ApplicationHandler struct {
	apps service.ApplicationService
}

func NewApplicationHandler(apps service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{apps: apps}
}

type submitRequest struct {
	EventID    int32              `json:"event_id"`
	Message    string             `json:"message,omitempty"`
	Attachment *domain.Attachment `json:"attachment,omitempty"`
}

// Submit creates a pending application for the authenticated volunteer.
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, domain.RoleVolunteer)
	if !ok {
		return
	}
	var req submitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.EventID <= 0 {
		respondError(w, http.StatusBadRequest, "event_id is required")
		return
	}

	result, err := h.apps.Submit(r.Context(), claims.UserID, req.EventID, req.Message, req.Attachment)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

type manageRequest struct {
	Action        domain.ApplicationAction `json:"action"`
	ApplicationID int32                    `json:"application_id"`
	Message       *string                  `json:"message,omitempty"`
	Attachment    *domain.Attachment       `json:"attachment,omitempty"`
}

// Manage is the single endpoint for approve/reject/cancel/reapply. The actor
// is always the authenticated user; authorization happens in the service.
func (h *ApplicationHandler) Manage(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	var req manageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	switch req.Action {
	case domain.ActionApprove, domain.ActionReject, domain.ActionCancel, domain.ActionReapply:
	default:
		respondError(w, http.StatusBadRequest, "unknown action")
		return
	}
	if req.ApplicationID <= 0 {
		respondError(w, http.StatusBadRequest, "application_id is required")
		return
	}

	result, err := h.apps.Transition(r.Context(), req.Action, req.ApplicationID, actor, req.Message, req.Attachment)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid application id")
		return
	}

	detail, err := h.apps.Get(r.Context(), actor, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// List serves the applications listing. With an event_id parameter it lists
// that event's applications (owner only); otherwise it lists the
// authenticated volunteer's own.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := domain.ApplicationStatus(q.Get("status"))

	if raw := q.Get("event_id"); raw != "" {
		actor, ok := actorID(w, r)
		if !ok {
			return
		}
		eventID, err := parseInt32(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid event_id")
			return
		}
		list, err := h.apps.ListByEvent(r.Context(), actor, eventID, status, pagingFrom(r))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, list)
		return
	}

	claims, ok := requireRole(w, r, domain.RoleVolunteer)
	if !ok {
		return
	}
	list, err := h.apps.ListByVolunteer(r.Context(), claims.UserID, status, pagingFrom(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// ListByEvent lists applications for one event, owner only.
func (h *ApplicationHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	status := domain.ApplicationStatus(r.URL.Query().Get("status"))
	list, err := h.apps.ListByEvent(r.Context(), actor, eventID, status, pagingFrom(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}
