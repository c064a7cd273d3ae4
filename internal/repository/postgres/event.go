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

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, org_id, title, description, category, address,
	latitude, longitude, date, duration, volunteers_needed, volunteers_registered,
	status, summary, created_on, updated_on`

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (org_id, title, description, category, address,
	            latitude, longitude, date, duration, volunteers_needed,
	            volunteers_registered, status, summary, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	          RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		e.OrgID, e.Title, e.Description, e.Category, e.Address,
		e.Latitude, e.Longitude, e.Date, e.Duration, e.VolunteersNeeded,
		e.VolunteersRegistered, e.Status, nullString(e.Summary), now, now,
	).Scan(&e.ID)
	if err != nil {
		return err
	}
	e.CreatedOn = now
	e.UpdatedOn = now
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return e, err
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `UPDATE events SET title=$1, description=$2, category=$3, address=$4,
	            latitude=$5, longitude=$6, date=$7, duration=$8,
	            volunteers_needed=$9, summary=$10, updated_on=$11
	          WHERE id=$12`
	_, err := r.db.ExecContext(ctx, query,
		e.Title, e.Description, e.Category, e.Address,
		e.Latitude, e.Longitude, e.Date, e.Duration,
		e.VolunteersNeeded, nullString(e.Summary), time.Now(), e.ID)
	return err
}

func (r *eventRepository) List(ctx context.Context, orgID int32, category string, status domain.EventStatus, page, pageSize int32) ([]domain.Event, int32, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	var args []interface{}
	argIdx := 1
	if orgID != 0 {
		query += fmt.Sprintf(" AND org_id = $%d", argIdx)
		args = append(args, orgID)
		argIdx++
	}
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, category)
		argIdx++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY date"
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
	events, err := collectEvents(rows)
	return events, count, err
}

func (r *eventRepository) ListByOrg(ctx context.Context, orgID int32) ([]domain.Event, error) {
	events, _, err := r.List(ctx, orgID, "", "", 0, 0)
	return events, err
}

func (r *eventRepository) UpdateStatus(ctx context.Context, id int32, from []domain.EventStatus, to domain.EventStatus) (bool, error) {
	query := `UPDATE events SET status = $1, updated_on = $2 WHERE id = $3 AND status = ANY($4)`
	statuses := make([]string, len(from))
	for i, s := range from {
		statuses[i] = string(s)
	}
	result, err := r.db.ExecContext(ctx, query, to, time.Now(), id, pq.Array(statuses))
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *eventRepository) ListExpirable(ctx context.Context, now time.Time) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
	          WHERE status IN ($1, $2) AND date <= $3 ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, domain.EventStatusOpen, domain.EventStatusClosed, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *eventRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
	          WHERE status IN ($1, $2) AND date > $3 AND date <= $4 ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, domain.EventStatusOpen, domain.EventStatusClosed, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *eventRepository) AdjustRegistered(ctx context.Context, id int32, delta int32) error {
	query := `UPDATE events
	          SET volunteers_registered = GREATEST(volunteers_registered + $1, 0), updated_on = $2
	          WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, delta, time.Now(), id)
	return err
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var lat, lng sql.NullFloat64
	var summary sql.NullString
	err := row.Scan(&e.ID, &e.OrgID, &e.Title, &e.Description, &e.Category, &e.Address,
		&lat, &lng, &e.Date, &e.Duration, &e.VolunteersNeeded, &e.VolunteersRegistered,
		&e.Status, &summary, &e.CreatedOn, &e.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if lat.Valid {
		e.Latitude = &lat.Float64
	}
	if lng.Valid {
		e.Longitude = &lng.Float64
	}
	e.Summary = summary.String
	return e, nil
}

func collectEvents(rows *sql.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}
