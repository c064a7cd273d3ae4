package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	api "impactolocal-backend/internal/api/http"
	"impactolocal-backend/internal/config"
	"impactolocal-backend/internal/logger"
	"impactolocal-backend/internal/repository/postgres"
	"impactolocal-backend/internal/security"
	"impactolocal-backend/internal/service"
	"impactolocal-backend/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ImpactoLocal API server...", "log_level", cfg.Log.Level)

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	emailService := newEmailService(cfg)
	dispatcher := service.NewDispatcher(emailService, store.NotificationRepository)
	sweeper := service.NewSweeper(
		store.EventRepository,
		time.Duration(cfg.Sweeper.IntervalMinutes)*time.Minute,
		nil,
	)

	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	mockStorage, err := storage.NewMockStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	router := api.NewRouter(api.Handlers{
		Auth:          service.NewAuthService(store.ProfileRepository, tokenManager),
		Applications:  service.NewApplicationService(store.ApplicationRepository, store.EventRepository, dispatcher),
		Events:        service.NewEventService(store.EventRepository, sweeper),
		Stats:         service.NewStatsService(store.ApplicationRepository, store.EventRepository, sweeper, nil),
		Notifications: service.NewNotificationService(store.NotificationRepository),
		Profiles:      service.NewProfileService(store.ProfileRepository),
		Sweeper:       sweeper,
		Storage:       mockStorage,
		Tokens:        tokenManager,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}

// newEmailService picks the configured outbound mail provider.
func newEmailService(cfg *config.Config) service.EmailService {
	if cfg.Email.Provider == "sendgrid" {
		return service.NewSendGridEmailService(
			cfg.Email.SendGrid.APIKey,
			cfg.Email.SendGrid.FromEmail,
			cfg.Email.SendGrid.FromName,
		)
	}
	return service.NewSMTPEmailService(
		cfg.Email.SMTP.Host,
		cfg.Email.SMTP.Port,
		cfg.Email.SMTP.User,
		cfg.Email.SMTP.Password,
		cfg.Email.SMTP.From,
	)
}
