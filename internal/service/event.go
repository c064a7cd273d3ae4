package service

import (
	"context"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/repository"
)

type eventService struct {
	eventRepo repository.EventRepository
	sweeper   *Sweeper
}

func NewEventService(eventRepo repository.EventRepository, sweeper *Sweeper) EventService {
	return &eventService{eventRepo: eventRepo, sweeper: sweeper}
}

func (s *eventService) Create(ctx context.Context, orgID int32, event *domain.Event) error {
	event.OrgID = orgID
	event.Status = domain.EventStatusOpen
	event.VolunteersRegistered = 0
	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) Get(ctx context.Context, id int32) (*domain.Event, error) {
	s.sweeper.EnsureSwept(ctx)
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventService) Update(ctx context.Context, orgID int32, event *domain.Event) error {
	current, err := s.eventRepo.GetByID(ctx, event.ID)
	if err != nil {
		return err
	}
	if current.OrgID != orgID {
		return domain.ErrNotAuthorized
	}
	return s.eventRepo.Update(ctx, event)
}

// Close is the organization's manual open → closed transition; completion is
// the sweeper's job.
func (s *eventService) Close(ctx context.Context, orgID, eventID int32) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrgID != orgID {
		return nil, domain.ErrNotAuthorized
	}
	closed, err := s.eventRepo.UpdateStatus(ctx, eventID, []domain.EventStatus{domain.EventStatusOpen}, domain.EventStatusClosed)
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, &domain.EventStateError{Status: event.Status, Reason: "only open events can be closed"}
	}
	return s.eventRepo.GetByID(ctx, eventID)
}

func (s *eventService) List(ctx context.Context, orgID int32, category string, status domain.EventStatus, paging *Paging) (*domain.EventList, error) {
	s.sweeper.EnsureSwept(ctx)

	page, pageSize := pagingArgs(paging)
	items, total, err := s.eventRepo.List(ctx, orgID, category, status, page, pageSize)
	if err != nil {
		return nil, err
	}
	list := &domain.EventList{Items: items}
	if paging != nil {
		list.Page = &domain.PageInfo{Page: paging.Page, PageSize: paging.PageSize, Total: total}
	}
	return list, nil
}
