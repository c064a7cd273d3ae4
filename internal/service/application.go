package service

import (
	"context"
	"fmt"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/logger"
	"impactolocal-backend/internal/repository"
)

type applicationService struct {
	appRepo    repository.ApplicationRepository
	eventRepo  repository.EventRepository
	dispatcher Dispatcher
}

func NewApplicationService(
	appRepo repository.ApplicationRepository,
	eventRepo repository.EventRepository,
	dispatcher Dispatcher,
) ApplicationService {
	return &applicationService{
		appRepo:    appRepo,
		eventRepo:  eventRepo,
		dispatcher: dispatcher,
	}
}

func (s *applicationService) Submit(ctx context.Context, volunteerID, eventID int32, message string, attachment *domain.Attachment) (*domain.TransitionResult, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status == domain.EventStatusCompleted {
		return nil, &domain.EventStateError{Status: event.Status, Reason: "no longer accepts applications"}
	}

	app := &domain.Application{
		EventID:     eventID,
		VolunteerID: volunteerID,
		Status:      domain.ApplicationStatusPending,
		Message:     message,
		Attachment:  attachment,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	outcome := domain.NotificationOutcome{Status: domain.NotificationSkipped}
	det, err := s.appRepo.GetDetail(ctx, app.ID)
	if err != nil {
		logger.Warn("Could not load application detail for notification", "application_id", app.ID, "error", err)
	} else {
		outcome = s.dispatcher.Dispatch(ctx, KindSubmitted, det)
	}

	return &domain.TransitionResult{Application: app, Notification: outcome}, nil
}

func (s *applicationService) Transition(ctx context.Context, action domain.ApplicationAction, applicationID, actorID int32, message *string, attachment *domain.Attachment) (*domain.TransitionResult, error) {
	det, err := s.appRepo.GetDetail(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	var to domain.ApplicationStatus
	var kind NotificationKind // empty means the transition sends nothing

	switch action {
	case domain.ActionApprove, domain.ActionReject:
		if det.Event.OrgID != actorID {
			return nil, domain.ErrNotAuthorized
		}
		if det.Status != domain.ApplicationStatusPending {
			return nil, &domain.InvalidStateError{Current: det.Status, Action: action}
		}
		if action == domain.ActionApprove {
			to, kind = domain.ApplicationStatusApproved, KindApproved
		} else {
			to, kind = domain.ApplicationStatusRejected, KindRejected
		}

	case domain.ActionCancel:
		if det.VolunteerID != actorID {
			return nil, domain.ErrNotAuthorized
		}
		if det.Status == domain.ApplicationStatusCancelled {
			return nil, &domain.InvalidStateError{Current: det.Status, Action: action}
		}
		to = domain.ApplicationStatusCancelled

	case domain.ActionReapply:
		if det.VolunteerID != actorID {
			return nil, domain.ErrNotAuthorized
		}
		if det.Status != domain.ApplicationStatusCancelled {
			return nil, &domain.InvalidStateError{Current: det.Status, Action: action}
		}
		if det.Event.Status == domain.EventStatusCompleted {
			return nil, &domain.EventStateError{Status: det.Event.Status, Reason: "no longer accepts applications"}
		}
		to, kind = domain.ApplicationStatusPending, KindSubmitted

	default:
		return nil, fmt.Errorf("unknown application action %q", action)
	}

	// Message/attachment overwrites are a reapply-only feature.
	if action != domain.ActionReapply {
		message, attachment = nil, nil
	}

	updated, err := s.appRepo.UpdateStatus(ctx, applicationID, det.Status, to, message, attachment)
	if err != nil {
		return nil, err
	}
	if !updated {
		// A concurrent transition won the race; report against the fresh state.
		if fresh, ferr := s.appRepo.GetByID(ctx, applicationID); ferr == nil {
			return nil, &domain.InvalidStateError{Current: fresh.Status, Action: action}
		}
		return nil, &domain.InvalidStateError{Current: det.Status, Action: action}
	}

	// volunteers_registered is a derived counter maintained here.
	switch {
	case to == domain.ApplicationStatusApproved:
		if err := s.eventRepo.AdjustRegistered(ctx, det.EventID, 1); err != nil {
			logger.Error("Failed to increment registered counter", "event_id", det.EventID, "error", err)
		}
	case action == domain.ActionCancel && det.Status == domain.ApplicationStatusApproved:
		if err := s.eventRepo.AdjustRegistered(ctx, det.EventID, -1); err != nil {
			logger.Error("Failed to decrement registered counter", "event_id", det.EventID, "error", err)
		}
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		app = &det.Application
		app.Status = to
	}

	outcome := domain.NotificationOutcome{Status: domain.NotificationSkipped}
	if kind != "" {
		det.Application = *app
		outcome = s.dispatcher.Dispatch(ctx, kind, det)
	}

	return &domain.TransitionResult{Application: app, Notification: outcome}, nil
}

func (s *applicationService) Get(ctx context.Context, actorID, applicationID int32) (*domain.ApplicationDetail, error) {
	det, err := s.appRepo.GetDetail(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if det.VolunteerID != actorID && det.Event.OrgID != actorID {
		return nil, domain.ErrNotAuthorized
	}
	return det, nil
}

func (s *applicationService) ListByVolunteer(ctx context.Context, volunteerID int32, status domain.ApplicationStatus, paging *Paging) (*domain.ApplicationList, error) {
	page, pageSize := pagingArgs(paging)
	items, total, err := s.appRepo.ListByVolunteer(ctx, volunteerID, status, page, pageSize)
	if err != nil {
		return nil, err
	}
	return buildApplicationList(items, total, paging), nil
}

func (s *applicationService) ListByEvent(ctx context.Context, actorID, eventID int32, status domain.ApplicationStatus, paging *Paging) (*domain.ApplicationList, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrgID != actorID {
		return nil, domain.ErrNotAuthorized
	}
	page, pageSize := pagingArgs(paging)
	items, total, err := s.appRepo.ListByEvent(ctx, eventID, status, page, pageSize)
	if err != nil {
		return nil, err
	}
	return buildApplicationList(items, total, paging), nil
}

func pagingArgs(p *Paging) (page, pageSize int32) {
	if p == nil {
		return 0, 0
	}
	return p.Page, p.PageSize
}

func buildApplicationList(items []domain.ApplicationWithEvent, total int32, paging *Paging) *domain.ApplicationList {
	list := &domain.ApplicationList{Items: items}
	if paging != nil {
		list.Page = &domain.PageInfo{Page: paging.Page, PageSize: paging.PageSize, Total: total}
	}
	return list
}
