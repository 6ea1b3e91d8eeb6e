package models

import (
	"database/sql"
	"time"
)

// Note is a short text entry owned by exactly one user. Image holds the
// stored filename of an optional attachment; it is invalid when no image
// has been attached.
type Note struct {
	ID        int64
	UserID    int64
	Body      string
	Image     sql.NullString
	CreatedAt time.Time
}
