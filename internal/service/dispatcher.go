package service

import (
	"context"
	"fmt"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/logger"
	"impactolocal-backend/internal/repository"
)

// dispatcher notifies the counterpart of a lifecycle event: the organization
// when an application is submitted, the volunteer when it is approved or
// rejected. Outcomes are classified, never raised — a failed or skipped
// delivery does not undo the transition that triggered it.
type dispatcher struct {
	emailSvc EmailService
	noteRepo repository.NotificationRepository
}

func NewDispatcher(emailSvc EmailService, noteRepo repository.NotificationRepository) Dispatcher {
	return &dispatcher{emailSvc: emailSvc, noteRepo: noteRepo}
}

func (d *dispatcher) Dispatch(ctx context.Context, kind NotificationKind, det *domain.ApplicationDetail) domain.NotificationOutcome {
	recipient, title, message, html := composeNotification(kind, det)

	// In-app notification is best effort and independent of email delivery.
	note := &domain.Notification{
		UserID:  recipient.ID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":   "application_" + string(kind),
			"ref_id": fmt.Sprintf("%d", det.ID),
		},
	}
	if err := d.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to record in-app notification", "user_id", recipient.ID, "error", err)
	}

	if recipient.Email == "" {
		return domain.NotificationOutcome{Status: domain.NotificationSkipped}
	}

	if err := d.emailSvc.Send(ctx, recipient.Email, recipient.Name, title, message, html); err != nil {
		logger.Warn("Notification delivery failed", "kind", kind, "application_id", det.ID, "error", err)
		return domain.NotificationOutcome{Status: domain.NotificationFailed, Error: err.Error()}
	}
	return domain.NotificationOutcome{Status: domain.NotificationSent}
}

func composeNotification(kind NotificationKind, det *domain.ApplicationDetail) (recipient domain.ProfileSummary, subject, plain, html string) {
	eventTitle := det.Event.Title
	switch kind {
	case KindApproved:
		recipient = det.Volunteer
		subject = fmt.Sprintf("Your application for %s was approved", eventTitle)
		plain = fmt.Sprintf("Hello %s,\n\nGood news: %s approved your application for %s.\n\nSee you there!\nThe ImpactoLocal Team",
			det.Volunteer.Name, det.Organization.Name, eventTitle)
		html = fmt.Sprintf("<p>Hello %s,</p><p>Good news: <strong>%s</strong> approved your application for <strong>%s</strong>.</p><p>See you there!</p>",
			det.Volunteer.Name, det.Organization.Name, eventTitle)
	case KindRejected:
		recipient = det.Volunteer
		subject = fmt.Sprintf("Update on your application for %s", eventTitle)
		plain = fmt.Sprintf("Hello %s,\n\nUnfortunately %s did not select your application for %s this time.\n\nThe ImpactoLocal Team",
			det.Volunteer.Name, det.Organization.Name, eventTitle)
		html = fmt.Sprintf("<p>Hello %s,</p><p>Unfortunately <strong>%s</strong> did not select your application for <strong>%s</strong> this time.</p>",
			det.Volunteer.Name, det.Organization.Name, eventTitle)
	default: // KindSubmitted
		recipient = det.Organization
		subject = fmt.Sprintf("New volunteer application for %s", eventTitle)
		plain = fmt.Sprintf("Hello %s,\n\n%s applied to volunteer for %s.\n\nReview the application in your dashboard.\nThe ImpactoLocal Team",
			det.Organization.Name, det.Volunteer.Name, eventTitle)
		html = fmt.Sprintf("<p>Hello %s,</p><p><strong>%s</strong> applied to volunteer for <strong>%s</strong>.</p><p>Review the application in your dashboard.</p>",
			det.Organization.Name, det.Volunteer.Name, eventTitle)
	}
	return recipient, subject, plain, html
}
