package domain

import (
	"context"

	"bookctl/internal/models"
)

// SessionStore persists the client session across process restarts.
// Save must be atomic from the caller's perspective: no reader may
// observe a partially written session.
type SessionStore interface {
	Save(ctx context.Context, session models.Session) error
	Load(ctx context.Context) (models.Session, bool, error)
	Clear(ctx context.Context) error
}

// AuthAPI covers the unauthenticated endpoints.
type AuthAPI interface {
	Register(ctx context.Context, req models.RegisterRequest) error
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
}

// EventAPI covers the catalog endpoints. Mutations require the admin role
// server-side; the client enforces it earlier through the auth gate.
type EventAPI interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id int64) (models.Event, error)
	CreateEvent(ctx context.Context, draft models.EventDraft) (models.Event, error)
	UpdateEvent(ctx context.Context, id int64, draft models.EventDraft) (models.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

// BookingAPI covers the booking endpoints.
type BookingAPI interface {
	ListBookings(ctx context.Context, userID int64) ([]models.Booking, error)
	CreateBooking(ctx context.Context, req models.BookingRequest) (models.Booking, error)
}

// EventPublisher delivers in-process notifications.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
