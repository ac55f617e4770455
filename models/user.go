package models

import "time"

type UserRole string

const (
	RoleCaptain UserRole = "captain"
	RolePlayer  UserRole = "player"
)

func (r UserRole) Valid() bool {
	return r == RoleCaptain || r == RolePlayer
}

// User is an account. FullName and Role are the profile metadata captured at sign-up;
// the role is never changed afterwards.
type User struct {
	ID                string    `json:"id"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Role              UserRole  `json:"role"`
	EmailConfirmed    bool      `json:"email_confirmed"`
	ConfirmationToken *string   `json:"-"`
	RedirectTo        *string   `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}
