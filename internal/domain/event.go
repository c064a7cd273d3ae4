package domain

import "time"

type EventStatus string

const (
	EventStatusOpen      EventStatus = "open"
	EventStatusClosed    EventStatus = "closed"
	EventStatusCompleted EventStatus = "completed"
)

type Event struct {
	ID                   int32       `json:"id"`
	OrgID                int32       `json:"org_id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Category             string      `json:"category"`
	Address              string      `json:"address"`
	Latitude             *float64    `json:"latitude,omitempty"`
	Longitude            *float64    `json:"longitude,omitempty"`
	Date                 time.Time   `json:"date"`
	Duration             string      `json:"duration"` // free text, e.g. "2h30"
	VolunteersNeeded     int32       `json:"volunteers_needed"`
	VolunteersRegistered int32       `json:"volunteers_registered"`
	Status               EventStatus `json:"status"`
	Summary              string      `json:"summary,omitempty"`
	CreatedOn            time.Time   `json:"created_on"`
	UpdatedOn            time.Time   `json:"updated_on"`
}

// SweepResult reports one event completion sweep.
type SweepResult struct {
	CompletedEventIDs []int32   `json:"completed_event_ids"`
	SkippedEventIDs   []int32   `json:"skipped_event_ids"`
	CompletedCount    int32     `json:"completed_count"`
	ProcessedAt       time.Time `json:"processed_at"`
}

// PageInfo carries pagination metadata when a caller asked for a page.
type PageInfo struct {
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
	Total    int32 `json:"total"`
}

// EventList is the tagged list/page result: PageInfo is nil when the caller
// did not request pagination, never inferred from shape.
type EventList struct {
	Items []Event   `json:"items"`
	Page  *PageInfo `json:"page,omitempty"`
}

// ApplicationList is the same tagged contract for application listings.
type ApplicationList struct {
	Items []ApplicationWithEvent `json:"items"`
	Page  *PageInfo              `json:"page,omitempty"`
}
