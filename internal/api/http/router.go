package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"impactolocal-backend/internal/security"
	"impactolocal-backend/internal/service"
	"impactolocal-backend/internal/storage"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth          service.AuthService
	Applications  service.ApplicationService
	Events        service.EventService
	Stats         service.StatsService
	Notifications service.NotificationService
	Profiles      service.ProfileService
	Sweeper       *service.Sweeper
	Storage       storage.StorageInterface
	Tokens        security.TokenManager
}

// NewRouter wires every endpoint under /api/v1.
func NewRouter(h Handlers) *mux.Router {
	root := mux.NewRouter()
	api := root.PathPrefix("/api/v1").Subrouter()

	root.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	authHandler := NewAuthHandler(h.Auth)
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)

	uploadHandler := NewUploadHandler(h.Storage)
	// Mock presigned URLs carry their own token, no bearer auth here.
	api.HandleFunc("/upload/{token}", uploadHandler.HandleUpload).Methods(http.MethodPut)
	api.HandleFunc("/download/{key}", uploadHandler.HandleDownload).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(h.Tokens))

	appHandler := NewApplicationHandler(h.Applications)
	protected.HandleFunc("/applications", appHandler.Submit).Methods(http.MethodPost)
	protected.HandleFunc("/applications", appHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/applications/manage", appHandler.Manage).Methods(http.MethodPost)
	protected.HandleFunc("/applications/{id:[0-9]+}", appHandler.Get).Methods(http.MethodGet)

	eventHandler := NewEventHandler(h.Events, h.Sweeper)
	protected.HandleFunc("/events", eventHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/events", eventHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/events/process-expired", eventHandler.ProcessExpired).Methods(http.MethodPost)
	protected.HandleFunc("/events/{id:[0-9]+}", eventHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/events/{id:[0-9]+}", eventHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/events/{id:[0-9]+}/close", eventHandler.Close).Methods(http.MethodPost)
	protected.HandleFunc("/events/{id:[0-9]+}/applications", appHandler.ListByEvent).Methods(http.MethodGet)

	statsHandler := NewStatsHandler(h.Stats)
	protected.HandleFunc("/stats/volunteers/{id:[0-9]+}", statsHandler.Volunteer).Methods(http.MethodGet)
	protected.HandleFunc("/stats/organizations/{id:[0-9]+}", statsHandler.Organization).Methods(http.MethodGet)

	noteHandler := NewNotificationHandler(h.Notifications)
	protected.HandleFunc("/notifications", noteHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{id:[0-9]+}/read", noteHandler.MarkAsRead).Methods(http.MethodPost)

	profileHandler := NewProfileHandler(h.Profiles)
	protected.HandleFunc("/profiles/me", profileHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/profiles/me", profileHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/attachments/presign", uploadHandler.Presign).Methods(http.MethodPost)

	return root
}
