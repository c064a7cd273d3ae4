package domain

// VolunteerStats is the volunteer dashboard block, derived by folding over
// the volunteer's applications joined with their events.
type VolunteerStats struct {
	TotalApplications   int32   `json:"total_applications"`
	EventsAttended      int32   `json:"events_attended"`
	EventsCompleted     int32   `json:"events_completed"`
	TotalVolunteerHours float64 `json:"total_volunteer_hours"` // rounded to 1 decimal
	ParticipationRate   float64 `json:"participation_rate"`    // in [0,1]
}

// EventApplicationCounts is the per-event status breakdown for an organization.
type EventApplicationCounts struct {
	EventID   int32  `json:"event_id"`
	Title     string `json:"title"`
	Pending   int32  `json:"pending"`
	Approved  int32  `json:"approved"`
	Rejected  int32  `json:"rejected"`
	Cancelled int32  `json:"cancelled"`
}

type OrganizationStats struct {
	TotalEvents        int32                    `json:"total_events"`
	OpenEvents         int32                    `json:"open_events"`
	ApprovedVolunteers int32                    `json:"approved_volunteers"` // sum of volunteers_registered
	Pending            int32                    `json:"pending"`
	Approved           int32                    `json:"approved"`
	Rejected           int32                    `json:"rejected"`
	Cancelled          int32                    `json:"cancelled"`
	PerEvent           []EventApplicationCounts `json:"per_event"`
}
