package service

import (
	"context"

	"impactolocal-backend/internal/domain"
)

// Paging is the explicit pagination request; a nil *Paging means the caller
// wants a plain list and the result carries no page envelope.
type Paging struct {
	Page     int32
	PageSize int32
}

type ApplicationService interface {
	// Submit creates a new pending application and notifies the organization.
	Submit(ctx context.Context, volunteerID, eventID int32, message string, attachment *domain.Attachment) (*domain.TransitionResult, error)

	// Transition is the single authority for approve/reject/cancel/reapply.
	Transition(ctx context.Context, action domain.ApplicationAction, applicationID, actorID int32, message *string, attachment *domain.Attachment) (*domain.TransitionResult, error)

	Get(ctx context.Context, actorID, applicationID int32) (*domain.ApplicationDetail, error)
	ListByVolunteer(ctx context.Context, volunteerID int32, status domain.ApplicationStatus, paging *Paging) (*domain.ApplicationList, error)
	ListByEvent(ctx context.Context, actorID, eventID int32, status domain.ApplicationStatus, paging *Paging) (*domain.ApplicationList, error)
}

type EventService interface {
	Create(ctx context.Context, orgID int32, event *domain.Event) error
	Get(ctx context.Context, id int32) (*domain.Event, error)
	Update(ctx context.Context, orgID int32, event *domain.Event) error
	Close(ctx context.Context, orgID, eventID int32) (*domain.Event, error)
	List(ctx context.Context, orgID int32, category string, status domain.EventStatus, paging *Paging) (*domain.EventList, error)
}

type StatsService interface {
	VolunteerStats(ctx context.Context, volunteerID int32) (*domain.VolunteerStats, error)
	OrganizationStats(ctx context.Context, orgID int32) (*domain.OrganizationStats, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID int32) (*domain.Profile, error)
	Update(ctx context.Context, userID int32, profile *domain.Profile) error
}

type AuthService interface {
	Signup(ctx context.Context, email, password, name string, role domain.Role) (*domain.Profile, string, string, error) // profile, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

// NotificationKind names the lifecycle moment being announced.
type NotificationKind string

const (
	KindSubmitted NotificationKind = "submitted"
	KindApproved  NotificationKind = "approved"
	KindRejected  NotificationKind = "rejected"
)

// Dispatcher attempts to notify the counterpart of a lifecycle event and
// classifies the outcome; it never returns an error to the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, kind NotificationKind, det *domain.ApplicationDetail) domain.NotificationOutcome
}

type EmailService interface {
	Send(ctx context.Context, toEmail, toName, subject, plainText, htmlBody string) error
}
