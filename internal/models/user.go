package models

import "time"

// User represents a registered account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	CreatedAt    time.Time
}
