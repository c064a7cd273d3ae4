package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/repository"
)

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, event_id, volunteer_id, status, message,
	attachment_path, attachment_name, attachment_mime_type, attachment_size_bytes,
	applied_at, updated_at`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	query := `INSERT INTO applications (event_id, volunteer_id, status, message,
	            attachment_path, attachment_name, attachment_mime_type, attachment_size_bytes,
	            applied_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`

	now := time.Now()
	path, name, mime, size := attachmentColumns(app.Attachment)
	err := r.db.QueryRowContext(ctx, query,
		app.EventID, app.VolunteerID, app.Status, nullString(app.Message),
		path, name, mime, size, now, now,
	).Scan(&app.ID)
	if err != nil {
		// The partial unique index on (event_id, volunteer_id) for
		// non-cancelled rows enforces the one-active-application invariant.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.ErrDuplicateApplication
		}
		return err
	}
	app.AppliedAt = now
	app.UpdatedAt = now
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	app, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return app, err
}

func (r *applicationRepository) GetDetail(ctx context.Context, id int32) (*domain.ApplicationDetail, error) {
	query := `SELECT a.id, a.event_id, a.volunteer_id, a.status, a.message,
	            a.attachment_path, a.attachment_name, a.attachment_mime_type, a.attachment_size_bytes,
	            a.applied_at, a.updated_at,
	            e.id, e.org_id, e.title, e.description, e.category, e.address,
	            e.latitude, e.longitude, e.date, e.duration,
	            e.volunteers_needed, e.volunteers_registered, e.status, e.summary,
	            v.id, v.name, v.email, v.role,
	            o.id, o.name, o.email, o.role
	          FROM applications a
	          JOIN events e ON e.id = a.event_id
	          JOIN profiles v ON v.id = a.volunteer_id
	          JOIN profiles o ON o.id = e.org_id
	          WHERE a.id = $1`

	det := &domain.ApplicationDetail{}
	var msg, path, name, mime sql.NullString
	var size sql.NullInt64
	var lat, lng sql.NullFloat64
	var summary sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&det.ID, &det.EventID, &det.VolunteerID, &det.Status, &msg,
		&path, &name, &mime, &size,
		&det.AppliedAt, &det.UpdatedAt,
		&det.Event.ID, &det.Event.OrgID, &det.Event.Title, &det.Event.Description,
		&det.Event.Category, &det.Event.Address, &lat, &lng,
		&det.Event.Date, &det.Event.Duration,
		&det.Event.VolunteersNeeded, &det.Event.VolunteersRegistered,
		&det.Event.Status, &summary,
		&det.Volunteer.ID, &det.Volunteer.Name, &det.Volunteer.Email, &det.Volunteer.Role,
		&det.Organization.ID, &det.Organization.Name, &det.Organization.Email, &det.Organization.Role,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	det.Message = msg.String
	det.Attachment = buildAttachment(path, name, mime, size)
	if lat.Valid {
		det.Event.Latitude = &lat.Float64
	}
	if lng.Valid {
		det.Event.Longitude = &lng.Float64
	}
	det.Event.Summary = summary.String
	return det, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id int32, from, to domain.ApplicationStatus, message *string, attachment *domain.Attachment) (bool, error) {
	// The status guard in the WHERE clause makes concurrent conflicting
	// transitions lose explicitly instead of silently overwriting each other.
	query := `UPDATE applications SET status = $1, updated_at = $2`
	args := []interface{}{to, time.Now()}
	idx := 3
	if message != nil {
		query += fmt.Sprintf(", message = $%d", idx)
		args = append(args, *message)
		idx++
	}
	if attachment != nil {
		query += fmt.Sprintf(", attachment_path = $%d, attachment_name = $%d, attachment_mime_type = $%d, attachment_size_bytes = $%d",
			idx, idx+1, idx+2, idx+3)
		args = append(args, attachment.Path, attachment.Name, attachment.MimeType, attachment.SizeBytes)
		idx += 4
	}
	query += fmt.Sprintf(" WHERE id = $%d AND status = $%d", idx, idx+1)
	args = append(args, id, from)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *applicationRepository) ListByVolunteer(ctx context.Context, volunteerID int32, status domain.ApplicationStatus, page, pageSize int32) ([]domain.ApplicationWithEvent, int32, error) {
	return r.listJoined(ctx, "a.volunteer_id = $1", volunteerID, status, page, pageSize)
}

func (r *applicationRepository) ListByEvent(ctx context.Context, eventID int32, status domain.ApplicationStatus, page, pageSize int32) ([]domain.ApplicationWithEvent, int32, error) {
	return r.listJoined(ctx, "a.event_id = $1", eventID, status, page, pageSize)
}

func (r *applicationRepository) ListByOrganization(ctx context.Context, orgID int32) ([]domain.ApplicationWithEvent, error) {
	rows, _, err := r.listJoined(ctx, "e.org_id = $1", orgID, "", 0, 0)
	return rows, err
}

func (r *applicationRepository) listJoined(ctx context.Context, where string, key int32, status domain.ApplicationStatus, page, pageSize int32) ([]domain.ApplicationWithEvent, int32, error) {
	query := `SELECT a.id, a.event_id, a.volunteer_id, a.status, a.message,
	            a.attachment_path, a.attachment_name, a.attachment_mime_type, a.attachment_size_bytes,
	            a.applied_at, a.updated_at,
	            e.id, e.org_id, e.title, e.description, e.category, e.address,
	            e.latitude, e.longitude, e.date, e.duration,
	            e.volunteers_needed, e.volunteers_registered, e.status, e.summary
	          FROM applications a
	          JOIN events e ON e.id = a.event_id
	          WHERE ` + where

	args := []interface{}{key}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY a.applied_at DESC"
	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, pageSize, (page-1)*pageSize)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.ApplicationWithEvent
	for rows.Next() {
		var row domain.ApplicationWithEvent
		var msg, path, name, mime sql.NullString
		var size sql.NullInt64
		var lat, lng sql.NullFloat64
		var summary sql.NullString
		if err := rows.Scan(
			&row.ID, &row.EventID, &row.VolunteerID, &row.Status, &msg,
			&path, &name, &mime, &size,
			&row.AppliedAt, &row.UpdatedAt,
			&row.Event.ID, &row.Event.OrgID, &row.Event.Title, &row.Event.Description,
			&row.Event.Category, &row.Event.Address, &lat, &lng,
			&row.Event.Date, &row.Event.Duration,
			&row.Event.VolunteersNeeded, &row.Event.VolunteersRegistered,
			&row.Event.Status, &summary,
		); err != nil {
			return nil, 0, err
		}
		row.Message = msg.String
		row.Attachment = buildAttachment(path, name, mime, size)
		if lat.Valid {
			row.Event.Latitude = &lat.Float64
		}
		if lng.Valid {
			row.Event.Longitude = &lng.Float64
		}
		row.Event.Summary = summary.String
		result = append(result, row)
	}
	return result, count, rows.Err()
}

func (r *applicationRepository) ListApprovedForEvent(ctx context.Context, eventID int32) ([]domain.ApplicationDetail, error) {
	query := `SELECT a.id, a.event_id, a.volunteer_id, a.status, a.applied_at, a.updated_at,
	            v.id, v.name, v.email, v.role
	          FROM applications a
	          JOIN profiles v ON v.id = a.volunteer_id
	          WHERE a.event_id = $1 AND a.status = $2
	          ORDER BY a.applied_at`

	rows, err := r.db.QueryContext(ctx, query, eventID, domain.ApplicationStatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ApplicationDetail
	for rows.Next() {
		var det domain.ApplicationDetail
		if err := rows.Scan(
			&det.ID, &det.EventID, &det.VolunteerID, &det.Status, &det.AppliedAt, &det.UpdatedAt,
			&det.Volunteer.ID, &det.Volunteer.Name, &det.Volunteer.Email, &det.Volunteer.Role,
		); err != nil {
			return nil, err
		}
		result = append(result, det)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApplication(row rowScanner) (*domain.Application, error) {
	app := &domain.Application{}
	var msg, path, name, mime sql.NullString
	var size sql.NullInt64
	err := row.Scan(&app.ID, &app.EventID, &app.VolunteerID, &app.Status, &msg,
		&path, &name, &mime, &size, &app.AppliedAt, &app.UpdatedAt)
	if err != nil {
		return nil, err
	}
	app.Message = msg.String
	app.Attachment = buildAttachment(path, name, mime, size)
	return app, nil
}

func buildAttachment(path, name, mime sql.NullString, size sql.NullInt64) *domain.Attachment {
	if !path.Valid || path.String == "" {
		return nil
	}
	return &domain.Attachment{
		Path:      path.String,
		Name:      name.String,
		MimeType:  mime.String,
		SizeBytes: size.Int64,
	}
}

func attachmentColumns(a *domain.Attachment) (path, name, mime interface{}, size interface{}) {
	if a == nil {
		return nil, nil, nil, nil
	}
	return a.Path, a.Name, a.MimeType, a.SizeBytes
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
