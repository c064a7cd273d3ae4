package domain

import "time"

type Role string

const (
	RoleVolunteer    Role = "volunteer"
	RoleOrganization Role = "organization"
	RoleAdmin        Role = "admin"
)

type Profile struct {
	ID           int32  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	Phone        string `json:"phone,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	Bio          string `json:"bio,omitempty"`
	// Organization-only fields, empty for volunteers.
	Mission   string    `json:"mission,omitempty"`
	Vision    string    `json:"vision,omitempty"`
	History   string    `json:"history,omitempty"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// ProfileSummary is the slice of a profile the lifecycle core reads:
// enough to authorize an actor and address a notification.
type ProfileSummary struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
