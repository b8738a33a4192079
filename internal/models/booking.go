package models

import "time"

// Booking references exactly one Event by identifier. The wire form
// carries only EventID; EventName is resolved client-side with a
// secondary event lookup.
type Booking struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"eventId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	EventName string    `json:"eventName,omitempty"`
}

// Key returns the cache identity of the booking.
func (b Booking) Key() int64 {
	return b.ID
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by a successful login.
type LoginResponse struct {
	AccessToken string   `json:"accessToken"`
	UserData    UserData `json:"userData"`
}

// UserData is the user payload nested in the login response.
type UserData struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// BookingRequest is the body of POST /bookings.
type BookingRequest struct {
	UserID   int64 `json:"userId"`
	EventID  int64 `json:"eventId"`
	Quantity int   `json:"quantity"`
}
