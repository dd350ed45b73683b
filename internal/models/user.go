package models

import (
	"database/sql"
	"time"
)

// User represents a registered account.
type User struct {
	ID           int64          `json:"id"`
	Email        string         `json:"email"`
	Username     string         `json:"username"`
	PasswordHash sql.NullString `json:"-"` // Never expose this to the client
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// PublicUser is the projection returned from register and login responses.
type PublicUser struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Profile is the projection returned from /api/auth/me.
type Profile struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the user stripped down to the fields safe for any response.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Username: u.Username}
}

// Profile returns the user's own-account view.
func (u User) Profile() Profile {
	return Profile{ID: u.ID, Email: u.Email, Username: u.Username, CreatedAt: u.CreatedAt}
}
