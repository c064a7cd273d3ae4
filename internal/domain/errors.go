package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotAuthorized is returned when the actor does not hold the required
	// role or ownership for the attempted action.
	ErrNotAuthorized = errors.New("not permitted")

	// ErrDuplicateApplication is returned when a non-cancelled application
	// already exists for the same (event, volunteer) pair.
	ErrDuplicateApplication = errors.New("an active application already exists for this event")
)

// InvalidStateError reports a transition that is not legal from the
// application's current status, e.g. approving an already-approved one.
type InvalidStateError struct {
	Current ApplicationStatus
	Action  ApplicationAction
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s an application that is already %s", e.Action, e.Current)
}

// EventStateError reports an operation against an event whose status forbids
// it, e.g. applying to a completed event.
type EventStateError struct {
	Status EventStatus
	Reason string
}

func (e *EventStateError) Error() string {
	return fmt.Sprintf("event is %s: %s", e.Status, e.Reason)
}
