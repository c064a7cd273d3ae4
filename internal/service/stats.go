package service

import (
	"context"
	"math"
	"time"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/repository"
	"impactolocal-backend/internal/utils"
)

type statsService struct {
	appRepo   repository.ApplicationRepository
	eventRepo repository.EventRepository
	sweeper   *Sweeper
	now       func() time.Time
}

func NewStatsService(appRepo repository.ApplicationRepository, eventRepo repository.EventRepository, sweeper *Sweeper, now func() time.Time) StatsService {
	if now == nil {
		now = time.Now
	}
	return &statsService{
		appRepo:   appRepo,
		eventRepo: eventRepo,
		sweeper:   sweeper,
		now:       now,
	}
}

func (s *statsService) VolunteerStats(ctx context.Context, volunteerID int32) (*domain.VolunteerStats, error) {
	s.sweeper.EnsureSwept(ctx)

	rows, _, err := s.appRepo.ListByVolunteer(ctx, volunteerID, "", 0, 0)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stats := &domain.VolunteerStats{TotalApplications: int32(len(rows))}
	var hours float64
	for _, row := range rows {
		if row.Status != domain.ApplicationStatusApproved {
			continue
		}
		attended := row.Event.Status == domain.EventStatusCompleted || row.Event.Date.Before(now)
		if !attended {
			continue
		}
		stats.EventsAttended++
		hours += utils.ParseDurationHours(row.Event.Duration)
		if row.Event.Status == domain.EventStatusCompleted {
			stats.EventsCompleted++
		}
	}
	stats.TotalVolunteerHours = math.Round(hours*10) / 10
	if stats.TotalApplications > 0 {
		rate := float64(stats.EventsAttended) / float64(stats.TotalApplications)
		stats.ParticipationRate = math.Min(math.Max(rate, 0), 1)
	}
	return stats, nil
}

func (s *statsService) OrganizationStats(ctx context.Context, orgID int32) (*domain.OrganizationStats, error) {
	s.sweeper.EnsureSwept(ctx)

	events, err := s.eventRepo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	apps, err := s.appRepo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	stats := &domain.OrganizationStats{TotalEvents: int32(len(events))}
	perEvent := make(map[int32]*domain.EventApplicationCounts, len(events))
	for _, e := range events {
		if e.Status == domain.EventStatusOpen {
			stats.OpenEvents++
		}
		stats.ApprovedVolunteers += e.VolunteersRegistered
		counts := &domain.EventApplicationCounts{EventID: e.ID, Title: e.Title}
		perEvent[e.ID] = counts
		stats.PerEvent = append(stats.PerEvent, *counts)
	}

	for _, app := range apps {
		counts := perEvent[app.EventID]
		if counts == nil {
			continue
		}
		switch app.Status {
		case domain.ApplicationStatusPending:
			counts.Pending++
			stats.Pending++
		case domain.ApplicationStatusApproved:
			counts.Approved++
			stats.Approved++
		case domain.ApplicationStatusRejected:
			counts.Rejected++
			stats.Rejected++
		case domain.ApplicationStatusCancelled:
			counts.Cancelled++
			stats.Cancelled++
		}
	}

	// Rebuild the slice so the per-event counts reflect the fold above.
	stats.PerEvent = stats.PerEvent[:0]
	for _, e := range events {
		stats.PerEvent = append(stats.PerEvent, *perEvent[e.ID])
	}
	return stats, nil
}
