package models

import "time"

// Identity is the authentication record behind a profile. The UID is opaque
// and stable; it doubles as the profile key.
type Identity struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
