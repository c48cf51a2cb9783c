package domain

import "time"

// Trip represents a single journal entry owned by a user.
type Trip struct {
	ID          int64
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
