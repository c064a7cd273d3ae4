package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/repository/postgres"
)

func TestApplicationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewApplicationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		app := &domain.Application{
			EventID:     30,
			VolunteerID: 10,
			Status:      domain.ApplicationStatusPending,
			Message:     "count me in",
		}

		mock.ExpectQuery("INSERT INTO applications").
			WithArgs(app.EventID, app.VolunteerID, app.Status, "count me in",
				nil, nil, nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(40))

		err := repo.Create(ctx, app)
		assert.NoError(t, err)
		assert.Equal(t, int32(40), app.ID)
		assert.False(t, app.AppliedAt.IsZero())
	})

	t.Run("WithAttachment", func(t *testing.T) {
		app := &domain.Application{
			EventID:     30,
			VolunteerID: 10,
			Status:      domain.ApplicationStatusPending,
			Attachment: &domain.Attachment{
				Path: "10/tok/cv.pdf", Name: "cv.pdf", MimeType: "application/pdf", SizeBytes: 2048,
			},
		}

		mock.ExpectQuery("INSERT INTO applications").
			WithArgs(app.EventID, app.VolunteerID, app.Status, nil,
				"10/tok/cv.pdf", "cv.pdf", "application/pdf", int64(2048),
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(41))

		assert.NoError(t, repo.Create(ctx, app))
	})

	t.Run("DuplicateActiveApplication", func(t *testing.T) {
		app := &domain.Application{EventID: 30, VolunteerID: 10, Status: domain.ApplicationStatusPending}

		mock.ExpectQuery("INSERT INTO applications").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, app)
		assert.ErrorIs(t, err, domain.ErrDuplicateApplication)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewApplicationRepository(db)
	ctx := context.Background()

	t.Run("GuardMatches", func(t *testing.T) {
		mock.ExpectExec("UPDATE applications SET status").
			WithArgs(domain.ApplicationStatusApproved, sqlmock.AnyArg(), int32(40), domain.ApplicationStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		updated, err := repo.UpdateStatus(ctx, 40, domain.ApplicationStatusPending, domain.ApplicationStatusApproved, nil, nil)
		assert.NoError(t, err)
		assert.True(t, updated)
	})

	t.Run("GuardMisses", func(t *testing.T) {
		mock.ExpectExec("UPDATE applications SET status").
			WithArgs(domain.ApplicationStatusApproved, sqlmock.AnyArg(), int32(40), domain.ApplicationStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		updated, err := repo.UpdateStatus(ctx, 40, domain.ApplicationStatusPending, domain.ApplicationStatusApproved, nil, nil)
		assert.NoError(t, err)
		assert.False(t, updated)
	})

	t.Run("ReapplyOverwritesMessageAndAttachment", func(t *testing.T) {
		msg := "second try"
		att := &domain.Attachment{Path: "10/tok/cv.pdf", Name: "cv.pdf", MimeType: "application/pdf", SizeBytes: 100}

		mock.ExpectExec("UPDATE applications SET status").
			WithArgs(domain.ApplicationStatusPending, sqlmock.AnyArg(), msg,
				att.Path, att.Name, att.MimeType, att.SizeBytes,
				int32(40), domain.ApplicationStatusCancelled).
			WillReturnResult(sqlmock.NewResult(0, 1))

		updated, err := repo.UpdateStatus(ctx, 40, domain.ApplicationStatusCancelled, domain.ApplicationStatusPending, &msg, att)
		assert.NoError(t, err)
		assert.True(t, updated)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewApplicationRepository(db)
	ctx := context.Background()

	columns := []string{"id", "event_id", "volunteer_id", "status", "message",
		"attachment_path", "attachment_name", "attachment_mime_type", "attachment_size_bytes",
		"applied_at", "updated_at"}

	t.Run("Found", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM applications WHERE id").
			WithArgs(int32(40)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(40, 30, 10, "pending", "hi", nil, nil, nil, nil, now, now))

		app, err := repo.GetByID(ctx, 40)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
		assert.Equal(t, "hi", app.Message)
		assert.Nil(t, app.Attachment)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM applications WHERE id").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
