package domain

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusApproved  ApplicationStatus = "approved"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusCancelled ApplicationStatus = "cancelled"
)

// ApplicationAction is one of the lifecycle transitions a caller may request.
type ApplicationAction string

const (
	ActionApprove ApplicationAction = "approve"
	ActionReject  ApplicationAction = "reject"
	ActionCancel  ApplicationAction = "cancel"
	ActionReapply ApplicationAction = "reapply"
)

// Attachment describes an uploaded file by reference; blobs live in storage,
// the application row only carries this metadata.
type Attachment struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
}

type Application struct {
	ID          int32             `json:"id"`
	EventID     int32             `json:"event_id"`
	VolunteerID int32             `json:"volunteer_id"`
	Status      ApplicationStatus `json:"status"`
	Message     string            `json:"message,omitempty"`
	Attachment  *Attachment       `json:"attachment,omitempty"`
	AppliedAt   time.Time         `json:"applied_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ApplicationDetail is an application with its joined event and the two
// counterpart profiles, as needed by authorization checks and notifications.
type ApplicationDetail struct {
	Application
	Event        Event          `json:"event"`
	Volunteer    ProfileSummary `json:"volunteer"`
	Organization ProfileSummary `json:"organization"`
}

// ApplicationWithEvent is one application + event join row, the unit the
// statistics aggregator folds over.
type ApplicationWithEvent struct {
	Application
	Event Event `json:"event"`
}

// NotificationStatus classifies the outcome of one delivery attempt.
type NotificationStatus string

const (
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
	NotificationSkipped NotificationStatus = "skipped"
)

// NotificationOutcome is what the dispatcher reports back to the caller.
// A failed or skipped delivery never fails the transition that triggered it.
type NotificationOutcome struct {
	Status NotificationStatus `json:"status"`
	Error  string             `json:"error,omitempty"`
}

// TransitionResult is returned by every lifecycle mutation.
type TransitionResult struct {
	Application  *Application        `json:"application"`
	Notification NotificationOutcome `json:"notification"`
}
