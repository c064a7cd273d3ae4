package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/service"
)

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetDetail(ctx context.Context, id int32) (*domain.ApplicationDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationDetail), args.Error(1)
}

func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int32, from, to domain.ApplicationStatus, message *string, attachment *domain.Attachment) (bool, error) {
	args := m.Called(ctx, id, from, to, message, attachment)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepo) ListByVolunteer(ctx context.Context, volunteerID int32, status domain.ApplicationStatus, page, pageSize int32) ([]domain.ApplicationWithEvent, int32, error) {
	args := m.Called(ctx, volunteerID, status, page, pageSize)
	var rows []domain.ApplicationWithEvent
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.ApplicationWithEvent)
	}
	return rows, int32(args.Int(1)), args.Error(2)
}

func (m *MockApplicationRepo) ListByEvent(ctx context.Context, eventID int32, status domain.ApplicationStatus, page, pageSize int32) ([]domain.ApplicationWithEvent, int32, error) {
	args := m.Called(ctx, eventID, status, page, pageSize)
	var rows []domain.ApplicationWithEvent
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.ApplicationWithEvent)
	}
	return rows, int32(args.Int(1)), args.Error(2)
}

func (m *MockApplicationRepo) ListByOrganization(ctx context.Context, orgID int32) ([]domain.ApplicationWithEvent, error) {
	args := m.Called(ctx, orgID)
	var rows []domain.ApplicationWithEvent
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.ApplicationWithEvent)
	}
	return rows, args.Error(1)
}

func (m *MockApplicationRepo) ListApprovedForEvent(ctx context.Context, eventID int32) ([]domain.ApplicationDetail, error) {
	args := m.Called(ctx, eventID)
	var rows []domain.ApplicationDetail
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.ApplicationDetail)
	}
	return rows, args.Error(1)
}

type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepo) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepo) Update(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepo) List(ctx context.Context, orgID int32, category string, status domain.EventStatus, page, pageSize int32) ([]domain.Event, int32, error) {
	args := m.Called(ctx, orgID, category, status, page, pageSize)
	var rows []domain.Event
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.Event)
	}
	return rows, int32(args.Int(1)), args.Error(2)
}

func (m *MockEventRepo) ListByOrg(ctx context.Context, orgID int32) ([]domain.Event, error) {
	args := m.Called(ctx, orgID)
	var rows []domain.Event
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.Event)
	}
	return rows, args.Error(1)
}

func (m *MockEventRepo) UpdateStatus(ctx context.Context, id int32, from []domain.EventStatus, to domain.EventStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventRepo) ListExpirable(ctx context.Context, now time.Time) ([]domain.Event, error) {
	args := m.Called(ctx, now)
	var rows []domain.Event
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.Event)
	}
	return rows, args.Error(1)
}

func (m *MockEventRepo) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	args := m.Called(ctx, from, to)
	var rows []domain.Event
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.Event)
	}
	return rows, args.Error(1)
}

func (m *MockEventRepo) AdjustRegistered(ctx context.Context, id int32, delta int32) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id int32) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	var rows []domain.Notification
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.Notification)
	}
	return rows, int32(args.Int(1)), args.Error(2)
}

func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockNotificationRepo) ExistsRecent(ctx context.Context, userID int32, notifType, refID string, since time.Time) (bool, error) {
	args := m.Called(ctx, userID, notifType, refID, since)
	return args.Bool(0), args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, toEmail, toName, subject, plainText, htmlBody string) error {
	args := m.Called(ctx, toEmail, toName, subject, plainText, htmlBody)
	return args.Error(0)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, kind service.NotificationKind, det *domain.ApplicationDetail) domain.NotificationOutcome {
	args := m.Called(ctx, kind, det)
	return args.Get(0).(domain.NotificationOutcome)
}
