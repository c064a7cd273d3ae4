package jobs

import (
	"context"
	"fmt"
	"time"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/logger"
)

const reminderNotificationType = "event_reminder"

// SendEventReminders mails every approved volunteer whose event starts inside
// the reminder window. The in-app notification row doubles as the dedup
// marker: a volunteer already reminded for an event within the dedup window
// is skipped.
func (jr *JobRunner) SendEventReminders() {
	jr.runWithRecovery("SendEventReminders", func() {
		ctx := context.Background()
		now := time.Now()
		window := time.Duration(jr.config.Reminder.WindowHours) * time.Hour
		dedup := time.Duration(jr.config.Reminder.DedupHours) * time.Hour

		events, err := jr.store.ListStartingBetween(ctx, now, now.Add(window))
		if err != nil {
			logger.Error("Failed to list upcoming events", "error", err)
			return
		}

		var sent, skipped int
		for _, event := range events {
			apps, err := jr.store.ListApprovedForEvent(ctx, event.ID)
			if err != nil {
				logger.Error("Failed to list approved applications", "event_id", event.ID, "error", err)
				continue
			}

			refID := fmt.Sprintf("%d", event.ID)
			for _, app := range apps {
				reminded, err := jr.store.ExistsRecent(ctx, app.Volunteer.ID, reminderNotificationType, refID, now.Add(-dedup))
				if err != nil {
					logger.Error("Reminder dedup check failed", "volunteer_id", app.Volunteer.ID, "error", err)
					continue
				}
				if reminded {
					skipped++
					continue
				}
				if app.Volunteer.Email == "" {
					skipped++
					continue
				}

				subject := fmt.Sprintf("Reminder: %s is coming up", event.Title)
				plain := fmt.Sprintf("Hello %s,\n\nThis is a reminder that %s starts on %s at %s.\n\nThe ImpactoLocal Team",
					app.Volunteer.Name, event.Title, event.Date.Format("Jan 2, 2006 15:04"), event.Address)
				html := fmt.Sprintf("<p>Hello %s,</p><p>This is a reminder that <strong>%s</strong> starts on %s at %s.</p>",
					app.Volunteer.Name, event.Title, event.Date.Format("Jan 2, 2006 15:04"), event.Address)

				if err := jr.services.Email.Send(ctx, app.Volunteer.Email, app.Volunteer.Name, subject, plain, html); err != nil {
					logger.Warn("Reminder delivery failed", "volunteer_id", app.Volunteer.ID, "event_id", event.ID, "error", err)
					skipped++
					continue
				}

				note := &domain.Notification{
					UserID:  app.Volunteer.ID,
					Title:   subject,
					Message: fmt.Sprintf("%s starts on %s", event.Title, event.Date.Format("Jan 2, 2006 15:04")),
					Attributes: map[string]string{
						"type":   reminderNotificationType,
						"ref_id": refID,
					},
				}
				if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
					logger.Warn("Failed to record reminder notification", "volunteer_id", app.Volunteer.ID, "error", err)
				}
				sent++
			}
		}

		logger.Info("Event reminders processed", "sent", sent, "skipped", skipped, "events", len(events))
	})
}
