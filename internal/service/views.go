package service

import (
	"time"

	"travel-journal/internal/domain"
)

// UserDetails is the public projection of a user. It never carries the
// password hash or the role.
type UserDetails struct {
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// TripDetails is the public projection of a trip.
type TripDetails struct {
	TripID      int64     `json:"tripId"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

func userToDetails(user *domain.User) *UserDetails {
	return &UserDetails{
		UserID:    user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}

func tripToDetails(trip *domain.Trip) *TripDetails {
	return &TripDetails{
		TripID:      trip.ID,
		UserID:      trip.UserID,
		Title:       trip.Title,
		Description: trip.Description,
		Location:    trip.Location,
		Start:       trip.Start,
		End:         trip.End,
	}
}
