package service

import (
	"context"
	"encoding/json"

	"bookctl/internal/events"
	"bookctl/internal/models"

	"github.com/stretchr/testify/mock"
)

func unmarshalPayload(event *events.Event, out interface{}) error {
	return json.Unmarshal(event.Payload, out)
}

type mockAuthAPI struct {
	mock.Mock
}

func (m *mockAuthAPI) Register(ctx context.Context, req models.RegisterRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuthAPI) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.LoginResponse), args.Error(1)
}

type mockEventAPI struct {
	mock.Mock
}

func (m *mockEventAPI) ListEvents(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *mockEventAPI) GetEvent(ctx context.Context, id int64) (models.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *mockEventAPI) CreateEvent(ctx context.Context, draft models.EventDraft) (models.Event, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *mockEventAPI) UpdateEvent(ctx context.Context, id int64, draft models.EventDraft) (models.Event, error) {
	args := m.Called(ctx, id, draft)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *mockEventAPI) DeleteEvent(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockBookingAPI struct {
	mock.Mock
}

func (m *mockBookingAPI) ListBookings(ctx context.Context, userID int64) ([]models.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockBookingAPI) CreateBooking(ctx context.Context, req models.BookingRequest) (models.Booking, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Booking), args.Error(1)
}
