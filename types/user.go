package types

import "time"

// User represents an account in the system.
// Email is stored normalized (trimmed and lower-cased) and is unique.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Email is the user's normalized email address.
	Email string `json:"email" db:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// SearchCredits is the number of job searches remaining in the
	// current 30-day window. Starts at 3.
	SearchCredits int `json:"searchCredits" db:"search_credits"`

	// LastReset is the timestamp of the last credit grant. Credits are
	// reset to 3 at login once 30 days have elapsed since this time.
	LastReset time.Time `json:"lastReset" db:"last_reset"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"-" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}
