package repository

import (
	"context"
	"time"

	"impactolocal-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id int32) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id int32) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error

	// List filters by any non-zero argument. pageSize <= 0 disables paging.
	List(ctx context.Context, orgID int32, category string, status domain.EventStatus, page, pageSize int32) ([]domain.Event, int32, error)
	ListByOrg(ctx context.Context, orgID int32) ([]domain.Event, error)

	// UpdateStatus transitions only when the current status matches one of
	// from; returns false when the row was already elsewhere.
	UpdateStatus(ctx context.Context, id int32, from []domain.EventStatus, to domain.EventStatus) (bool, error)

	// ListExpirable returns open/closed events whose date is at or before now.
	ListExpirable(ctx context.Context, now time.Time) ([]domain.Event, error)

	// ListStartingBetween returns open/closed events scheduled inside (from, to].
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error)

	// AdjustRegistered moves the derived volunteers_registered counter.
	AdjustRegistered(ctx context.Context, id int32, delta int32) error
}

type ApplicationRepository interface {
	// Create inserts a pending application; a second active application for
	// the same (event, volunteer) pair yields domain.ErrDuplicateApplication.
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id int32) (*domain.Application, error)

	// GetDetail loads the application with its event and both counterpart
	// profile summaries in one round trip.
	GetDetail(ctx context.Context, id int32) (*domain.ApplicationDetail, error)

	// UpdateStatus applies the transition atomically, guarded by the expected
	// current status; message/attachment overwrite stored values when non-nil.
	// Returns false when the row no longer carries the expected status.
	UpdateStatus(ctx context.Context, id int32, from, to domain.ApplicationStatus, message *string, attachment *domain.Attachment) (bool, error)

	// ListByVolunteer/ListByEvent join each application with its event.
	// pageSize <= 0 disables paging.
	ListByVolunteer(ctx context.Context, volunteerID int32, status domain.ApplicationStatus, page, pageSize int32) ([]domain.ApplicationWithEvent, int32, error)
	ListByEvent(ctx context.Context, eventID int32, status domain.ApplicationStatus, page, pageSize int32) ([]domain.ApplicationWithEvent, int32, error)

	// ListByOrganization returns every application joined with its event for
	// all events owned by the organization (statistics fold input).
	ListByOrganization(ctx context.Context, orgID int32) ([]domain.ApplicationWithEvent, error)

	// ListApprovedForEvent returns approved applications with the volunteer
	// summary attached (reminder fan-out input).
	ListApprovedForEvent(ctx context.Context, eventID int32) ([]domain.ApplicationDetail, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error

	// ExistsRecent reports whether the user already has a notification of the
	// given attribute type referencing refID created at or after since.
	ExistsRecent(ctx context.Context, userID int32, notifType, refID string, since time.Time) (bool, error)
}
