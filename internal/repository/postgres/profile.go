package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, email, password_hash, name, role, phone, avatar_url,
	bio, mission, vision, history, created_on, updated_on`

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO profiles (email, password_hash, name, role, phone,
	            avatar_url, bio, mission, vision, history, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		p.Email, p.PasswordHash, p.Name, p.Role, nullString(p.Phone),
		nullString(p.AvatarURL), nullString(p.Bio), nullString(p.Mission),
		nullString(p.Vision), nullString(p.History), now, now,
	).Scan(&p.ID)
	if err != nil {
		return err
	}
	p.CreatedOn = now
	p.UpdatedOn = now
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id int32) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *profileRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.Profile, error) {
	p := &domain.Profile{}
	var phone, avatar, bio, mission, vision, history sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.Name, &p.Role, &phone, &avatar,
		&bio, &mission, &vision, &history, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Phone = phone.String
	p.AvatarURL = avatar.String
	p.Bio = bio.String
	p.Mission = mission.String
	p.Vision = vision.String
	p.History = history.String
	return p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	query := `UPDATE profiles SET name=$1, phone=$2, avatar_url=$3, bio=$4,
	            mission=$5, vision=$6, history=$7, updated_on=$8
	          WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query,
		p.Name, nullString(p.Phone), nullString(p.AvatarURL), nullString(p.Bio),
		nullString(p.Mission), nullString(p.Vision), nullString(p.History),
		time.Now(), p.ID)
	return err
}
