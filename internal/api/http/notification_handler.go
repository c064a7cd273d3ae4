package http

import (
	"net/http"
	"strconv"

	"impactolocal-backend/internal/service"
)

type NotificationHandler struct {
	notes service.NotificationService
}

func NewNotificationHandler(notes service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notes: notes}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, _ := strconv.ParseInt(q.Get("page"), 10, 32)
	pageSize, _ := strconv.ParseInt(q.Get("page_size"), 10, 32)

	items, total, err := h.notes.GetNotifications(r.Context(), actor, int32(page), int32(pageSize))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"total": total,
	})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.notes.MarkAsRead(r.Context(), actor, id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"read": true})
}
