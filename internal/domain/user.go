package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	DisplayName        string    `json:"display_name"`
	PhotoURL           *string   `json:"photo_url,omitempty"`
	Gender             string    `json:"gender"`
	Age                *int      `json:"age,omitempty"`
	Occupation         *string   `json:"occupation,omitempty"`
	EmailNotifications bool      `json:"email_notifications"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// AuthRecord is the row kept by the authentication provider. It is read
// directly only as a fallback when a profile has no email.
type AuthRecord struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Session is the identity extracted from a validated bearer token.
type Session struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}
