package postgres

import (
	"database/sql"

	_ "github.com/lib/pq"

	"impactolocal-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.ProfileRepository
	repository.EventRepository
	repository.ApplicationRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		ProfileRepository:      NewProfileRepository(db),
		EventRepository:        NewEventRepository(db),
		ApplicationRepository:  NewApplicationRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
