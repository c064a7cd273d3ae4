package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"impactolocal-backend/internal/config"
	"impactolocal-backend/internal/jobs"
	"impactolocal-backend/internal/logger"
	"impactolocal-backend/internal/repository/postgres"
	"impactolocal-backend/internal/scheduler"
	"impactolocal-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'complete-expired-events', 'send-event-reminders', 'all')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ImpactoLocal cronjob runner...", "log_level", cfg.Log.Level)

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
	sweeper := service.NewSweeper(
		store.EventRepository,
		time.Duration(cfg.Sweeper.IntervalMinutes)*time.Minute,
		nil,
	)

	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{
		Email:   emailService,
		Sweeper: sweeper,
	}, cfg)

	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "complete-expired-events":
		jobRunner.CompleteExpiredEvents()
	case "send-event-reminders":
		jobRunner.SendEventReminders()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		os.Exit(1)
	}
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
