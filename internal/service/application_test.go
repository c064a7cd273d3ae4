package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/service"
)

const (
	volunteerID = int32(10)
	orgID       = int32(20)
	eventID     = int32(30)
	appID       = int32(40)
)

func pendingDetail() *domain.ApplicationDetail {
	return &domain.ApplicationDetail{
		Application: domain.Application{
			ID:          appID,
			EventID:     eventID,
			VolunteerID: volunteerID,
			Status:      domain.ApplicationStatusPending,
		},
		Event: domain.Event{
			ID:     eventID,
			OrgID:  orgID,
			Title:  "River Cleanup",
			Status: domain.EventStatusOpen,
			Date:   time.Now().Add(48 * time.Hour),
		},
		Volunteer:    domain.ProfileSummary{ID: volunteerID, Name: "Ana", Email: "ana@test.com", Role: domain.RoleVolunteer},
		Organization: domain.ProfileSummary{ID: orgID, Name: "Rio Verde", Email: "org@test.com", Role: domain.RoleOrganization},
	}
}

func detailWithStatus(status domain.ApplicationStatus) *domain.ApplicationDetail {
	det := pendingDetail()
	det.Status = status
	return det
}

func TestApplicationService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesPendingAndNotifiesOrganization", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		eventRepo := new(MockEventRepo)
		disp := new(MockDispatcher)
		svc := service.NewApplicationService(appRepo, eventRepo, disp)

		eventRepo.On("GetByID", ctx, eventID).Return(&domain.Event{ID: eventID, OrgID: orgID, Status: domain.EventStatusOpen}, nil).Once()
		appRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Application) bool {
			return a.EventID == eventID && a.VolunteerID == volunteerID && a.Status == domain.ApplicationStatusPending && a.Message == "count me in"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Application).ID = appID
		}).Return(nil).Once()
		appRepo.On("GetDetail", ctx, appID).Return(pendingDetail(), nil).Once()
		disp.On("Dispatch", ctx, service.KindSubmitted, mock.Anything).Return(domain.NotificationOutcome{Status: domain.NotificationSent}).Once()

		result, err := svc.Submit(ctx, volunteerID, eventID, "count me in", nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, result.Application.Status)
		assert.Equal(t, domain.NotificationSent, result.Notification.Status)
		appRepo.AssertExpectations(t)
		disp.AssertExpectations(t)
	})

	t.Run("CompletedEventRejectsApplications", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		eventRepo := new(MockEventRepo)
		svc := service.NewApplicationService(appRepo, eventRepo, new(MockDispatcher))

		eventRepo.On("GetByID", ctx, eventID).Return(&domain.Event{ID: eventID, Status: domain.EventStatusCompleted}, nil).Once()

		_, err := svc.Submit(ctx, volunteerID, eventID, "", nil)
		var stateErr *domain.EventStateError
		assert.ErrorAs(t, err, &stateErr)
		appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("DuplicateActiveApplication", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		eventRepo := new(MockEventRepo)
		svc := service.NewApplicationService(appRepo, eventRepo, new(MockDispatcher))

		eventRepo.On("GetByID", ctx, eventID).Return(&domain.Event{ID: eventID, Status: domain.EventStatusOpen}, nil).Once()
		appRepo.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicateApplication).Once()

		_, err := svc.Submit(ctx, volunteerID, eventID, "", nil)
		assert.ErrorIs(t, err, domain.ErrDuplicateApplication)
	})

	t.Run("FailedNotificationDoesNotFailSubmit", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		eventRepo := new(MockEventRepo)
		disp := new(MockDispatcher)
		svc := service.NewApplicationService(appRepo, eventRepo, disp)

		eventRepo.On("GetByID", ctx, eventID).Return(&domain.Event{ID: eventID, Status: domain.EventStatusOpen}, nil).Once()
		appRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Application).ID = appID
		}).Return(nil).Once()
		appRepo.On("GetDetail", ctx, appID).Return(pendingDetail(), nil).Once()
		disp.On("Dispatch", ctx, service.KindSubmitted, mock.Anything).
			Return(domain.NotificationOutcome{Status: domain.NotificationFailed, Error: "smtp down"}).Once()

		result, err := svc.Submit(ctx, volunteerID, eventID, "", nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.NotificationFailed, result.Notification.Status)
		assert.Equal(t, "smtp down", result.Notification.Error)
	})
}

func TestApplicationService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerApprovesPending", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		eventRepo := new(MockEventRepo)
		disp := new(MockDispatcher)
		svc := service.NewApplicationService(appRepo, eventRepo, disp)

		appRepo.On("GetDetail", ctx, appID).Return(pendingDetail(), nil).Once()
		appRepo.On("UpdateStatus", ctx, appID, domain.ApplicationStatusPending, domain.ApplicationStatusApproved,
			(*string)(nil), (*domain.Attachment)(nil)).Return(true, nil).Once()
		eventRepo.On("AdjustRegistered", ctx, eventID, int32(1)).Return(nil).Once()
		approved := &domain.Application{ID: appID, EventID: eventID, VolunteerID: volunteerID, Status: domain.ApplicationStatusApproved}
		appRepo.On("GetByID", ctx, appID).Return(approved, nil).Once()
		disp.On("Dispatch", ctx, service.KindApproved, mock.Anything).Return(domain.NotificationOutcome{Status: domain.NotificationSent}).Once()

		result, err := svc.Transition(ctx, domain.ActionApprove, appID, orgID, nil, nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusApproved, result.Application.Status)
		assert.Equal(t, domain.NotificationSent, result.Notification.Status)
		appRepo.AssertExpectations(t)
		eventRepo.AssertExpectations(t)
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		svc := service.NewApplicationService(appRepo, new(MockEventRepo), new(MockDispatcher))

		appRepo.On("GetDetail", ctx, appID).Return(pendingDetail(), nil).Once()

		_, err := svc.Transition(ctx, domain.ActionApprove, appID, int32(999), nil, nil)
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
		appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("SecondApproveFails", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		svc := service.NewApplicationService(appRepo, new(MockEventRepo), new(MockDispatcher))

		appRepo.On("GetDetail", ctx, appID).Return(detailWithStatus(domain.ApplicationStatusApproved), nil).Once()

		_, err := svc.Transition(ctx, domain.ActionApprove, appID, orgID, nil, nil)
		var stateErr *domain.InvalidStateError
		assert.ErrorAs(t, err, &stateErr)
		assert.Equal(t, domain.ApplicationStatusApproved, stateErr.Current)
	})

	t.Run("LostRaceReportsFreshState", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		svc := service.NewApplicationService(appRepo, new(MockEventRepo), new(MockDispatcher))

		appRepo.On("GetDetail", ctx, appID).Return(pendingDetail(), nil).Once()
		appRepo.On("UpdateStatus", ctx, appID, domain.ApplicationStatusPending, domain.ApplicationStatusApproved,
			(*string)(nil), (*domain.Attachment)(nil)).Return(false, nil).Once()
		appRepo.On("GetByID", ctx, appID).
			Return(&domain.Application{ID: appID, Status: domain.ApplicationStatusRejected}, nil).Once()

		_, err := svc.Transition(ctx, domain.ActionApprove, appID, orgID, nil, nil)
		var stateErr *domain.InvalidStateError
		assert.ErrorAs(t, err, &stateErr)
		assert.Equal(t, domain.ApplicationStatusRejected, stateErr.Current)
	})
}

func TestApplicationService_CancelAndReapply(t *testing.T) {
	ctx := context.Background()

	t.Run("CancelApprovedReleasesSeat", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		eventRepo := new(MockEventRepo)
		svc := service.NewApplicationService(appRepo, eventRepo, new(MockDispatcher))

		appRepo.On("GetDetail", ctx, appID).Return(detailWithStatus(domain.ApplicationStatusApproved), nil).Once()
		appRepo.On("UpdateStatus", ctx, appID, domain.ApplicationStatusApproved, domain.ApplicationStatusCancelled,
			(*string)(nil), (*domain.Attachment)(nil)).Return(true, nil).Once()
		eventRepo.On("AdjustRegistered", ctx, eventID, int32(-1)).Return(nil).Once()
		appRepo.On("GetByID", ctx, appID).
			Return(&domain.Application{ID: appID, Status: domain.ApplicationStatusCancelled}, nil).Once()

		result, err := svc.Transition(ctx, domain.ActionCancel, appID, volunteerID, nil, nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusCancelled, result.Application.Status)
		// Cancel announces nothing.
		assert.Equal(t, domain.NotificationSkipped, result.Notification.Status)
		eventRepo.AssertExpectations(t)
	})

	t.Run("CancelPendingLeavesCounterAlone", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		eventRepo := new(MockEventRepo)
		svc := service.NewApplicationService(appRepo, eventRepo, new(MockDispatcher))

		appRepo.On("GetDetail", ctx, appID).Return(pendingDetail(), nil).Once()
		appRepo.On("UpdateStatus", ctx, appID, domain.ApplicationStatusPending, domain.ApplicationStatusCancelled,
			(*string)(nil), (*domain.Attachment)(nil)).Return(true, nil).Once()
		appRepo.On("GetByID", ctx, appID).
			Return(&domain.Application{ID: appID, Status: domain.ApplicationStatusCancelled}, nil).Once()

		_, err := svc.Transition(ctx, domain.ActionCancel, appID, volunteerID, nil, nil)
		assert.NoError(t, err)
		eventRepo.AssertNotCalled(t, "AdjustRegistered", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CancelTwiceFails", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		svc := service.NewApplicationService(appRepo, new(MockEventRepo), new(MockDispatcher))

		appRepo.On("GetDetail", ctx, appID).Return(detailWithStatus(domain.ApplicationStatusCancelled), nil).Once()

		_, err := svc.Transition(ctx, domain.ActionCancel, appID, volunteerID, nil, nil)
		var stateErr *domain.InvalidStateError
		assert.ErrorAs(t, err, &stateErr)
	})

	t.Run("ReapplyRestoresPendingWithNewMessage", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		disp := new(MockDispatcher)
		svc := service.NewApplicationService(appRepo, new(MockEventRepo), disp)

		msg := "second try"
		appRepo.On("GetDetail", ctx, appID).Return(detailWithStatus(domain.ApplicationStatusCancelled), nil).Once()
		appRepo.On("UpdateStatus", ctx, appID, domain.ApplicationStatusCancelled, domain.ApplicationStatusPending,
			&msg, (*domain.Attachment)(nil)).Return(true, nil).Once()
		appRepo.On("GetByID", ctx, appID).
			Return(&domain.Application{ID: appID, Status: domain.ApplicationStatusPending, Message: msg}, nil).Once()
		disp.On("Dispatch", ctx, service.KindSubmitted, mock.Anything).Return(domain.NotificationOutcome{Status: domain.NotificationSent}).Once()

		result, err := svc.Transition(ctx, domain.ActionReapply, appID, volunteerID, &msg, nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, result.Application.Status)
		appRepo.AssertExpectations(t)
	})

	t.Run("ReapplyToCompletedEventFails", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		svc := service.NewApplicationService(appRepo, new(MockEventRepo), new(MockDispatcher))

		det := detailWithStatus(domain.ApplicationStatusCancelled)
		det.Event.Status = domain.EventStatusCompleted
		appRepo.On("GetDetail", ctx, appID).Return(det, nil).Once()

		_, err := svc.Transition(ctx, domain.ActionReapply, appID, volunteerID, nil, nil)
		var stateErr *domain.EventStateError
		assert.ErrorAs(t, err, &stateErr)
	})

	t.Run("OrganizationCannotCancel", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		svc := service.NewApplicationService(appRepo, new(MockEventRepo), new(MockDispatcher))

		appRepo.On("GetDetail", ctx, appID).Return(detailWithStatus(domain.ApplicationStatusApproved), nil).Once()

		_, err := svc.Transition(ctx, domain.ActionCancel, appID, orgID, nil, nil)
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	})
}

func TestApplicationService_Listings(t *testing.T) {
	ctx := context.Background()

	t.Run("PlainListHasNoPageEnvelope", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		svc := service.NewApplicationService(appRepo, new(MockEventRepo), new(MockDispatcher))

		rows := []domain.ApplicationWithEvent{{Application: domain.Application{ID: appID}}}
		appRepo.On("ListByVolunteer", ctx, volunteerID, domain.ApplicationStatus(""), int32(0), int32(0)).
			Return(rows, 1, nil).Once()

		list, err := svc.ListByVolunteer(ctx, volunteerID, "", nil)
		assert.NoError(t, err)
		assert.Len(t, list.Items, 1)
		assert.Nil(t, list.Page)
	})

	t.Run("PagedListCarriesPageInfo", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		svc := service.NewApplicationService(appRepo, new(MockEventRepo), new(MockDispatcher))

		appRepo.On("ListByVolunteer", ctx, volunteerID, domain.ApplicationStatusPending, int32(2), int32(10)).
			Return([]domain.ApplicationWithEvent{}, 35, nil).Once()

		list, err := svc.ListByVolunteer(ctx, volunteerID, domain.ApplicationStatusPending, &service.Paging{Page: 2, PageSize: 10})
		assert.NoError(t, err)
		assert.NotNil(t, list.Page)
		assert.Equal(t, int32(35), list.Page.Total)
		assert.Equal(t, int32(2), list.Page.Page)
	})

	t.Run("ListByEventRequiresOwnership", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		eventRepo := new(MockEventRepo)
		svc := service.NewApplicationService(appRepo, eventRepo, new(MockDispatcher))

		eventRepo.On("GetByID", ctx, eventID).Return(&domain.Event{ID: eventID, OrgID: orgID}, nil).Once()

		_, err := svc.ListByEvent(ctx, int32(999), eventID, "", nil)
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
		appRepo.AssertNotCalled(t, "ListByEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestApplicationService_Get(t *testing.T) {
	ctx := context.Background()
	appRepo := new(MockApplicationRepo)
	svc := service.NewApplicationService(appRepo, new(MockEventRepo), new(MockDispatcher))

	appRepo.On("GetDetail", ctx, appID).Return(pendingDetail(), nil).Times(3)

	_, err := svc.Get(ctx, volunteerID, appID)
	assert.NoError(t, err)
	_, err = svc.Get(ctx, orgID, appID)
	assert.NoError(t, err)
	_, err = svc.Get(ctx, int32(999), appID)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
}
