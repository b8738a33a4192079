package service

import (
	"context"
	"fmt"

	"bookctl/internal/authgate"
	"bookctl/internal/cache"
	"bookctl/internal/domain"
	"bookctl/internal/events"
	"bookctl/internal/export"
	"bookctl/internal/models"

	"github.com/rs/zerolog"
)

// BookingService owns the booking flow and the personal booking
// history. Booking an event never mutates the catalog: the API exposes
// no remaining capacity to decrement.
type BookingService struct {
	eventAPI   domain.EventAPI
	bookingAPI domain.BookingAPI
	store      domain.SessionStore
	gate       *authgate.Gate
	list       *cache.List[models.Booking]
	bus        domain.EventPublisher
	exportPath string
	logger     *zerolog.Logger
}

func NewBookingService(eventAPI domain.EventAPI, bookingAPI domain.BookingAPI, store domain.SessionStore, gate *authgate.Gate, bus domain.EventPublisher, exportPath string, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		eventAPI:   eventAPI,
		bookingAPI: bookingAPI,
		store:      store,
		gate:       gate,
		list:       cache.NewList[models.Booking](),
		bus:        bus,
		exportPath: exportPath,
		logger:     logger,
	}
}

// Create books quantity seats for an event. A zero quantity means
// unset and defaults to 1; a negative quantity is rejected locally
// with no network call.
func (s *BookingService) Create(ctx context.Context, eventID int64, quantity int) (models.Booking, error) {
	session, ok, err := s.store.Load(ctx)
	if err != nil {
		return models.Booking{}, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return models.Booking{}, ErrNotAuthenticated
	}

	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return models.Booking{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	booking, err := s.bookingAPI.CreateBooking(ctx, models.BookingRequest{
		UserID:   session.UserID,
		EventID:  eventID,
		Quantity: quantity,
	})
	if err != nil {
		s.gate.HandleFetchError(ctx, err)
		return models.Booking{}, err
	}

	booking.EventName = s.resolveEventName(ctx, booking.EventID, nil)

	_ = s.bus.PublishJSON(events.EventBookingCreated, events.BookingEventPayload{
		BookingID: booking.ID,
		EventID:   booking.EventID,
		EventName: booking.EventName,
		Quantity:  booking.Quantity,
	})

	s.logger.Info().Int64("booking_id", booking.ID).Int64("event_id", booking.EventID).
		Int("quantity", booking.Quantity).Msg("booking created")
	return booking, nil
}

// Load replaces the cached booking history with the server's list,
// resolving each booking's event name with a secondary lookup.
func (s *BookingService) Load(ctx context.Context) ([]models.Booking, error) {
	session, ok, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, ErrNotAuthenticated
	}

	bookings, err := s.bookingAPI.ListBookings(ctx, session.UserID)
	if err != nil {
		s.gate.HandleFetchError(ctx, err)
		return nil, err
	}

	names := make(map[int64]string, len(bookings))
	for i := range bookings {
		bookings[i].EventName = s.resolveEventName(ctx, bookings[i].EventID, names)
	}

	s.list.Replace(bookings)
	return s.list.Snapshot(), nil
}

// Bookings returns a snapshot of the cached booking history.
func (s *BookingService) Bookings() []models.Booking {
	return s.list.Snapshot()
}

// Export writes the current booking history to an Excel file and
// returns its path. The history is loaded first so the export reflects
// the server's view.
func (s *BookingService) Export(ctx context.Context) (string, error) {
	bookings, err := s.Load(ctx)
	if err != nil {
		return "", err
	}

	path, err := export.WriteBookings(s.exportPath, bookings)
	if err != nil {
		return "", fmt.Errorf("export bookings: %w", err)
	}

	s.logger.Info().Str("path", path).Int("bookings", len(bookings)).Msg("booking history exported")
	return path, nil
}

// resolveEventName joins a booking to its event name client-side.
// A failed lookup degrades to an empty name rather than failing the
// whole listing; names memoizes lookups within one call.
func (s *BookingService) resolveEventName(ctx context.Context, eventID int64, names map[int64]string) string {
	if names != nil {
		if name, ok := names[eventID]; ok {
			return name
		}
	}

	event, err := s.eventAPI.GetEvent(ctx, eventID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("event_id", eventID).Msg("failed to resolve event name")
		if names != nil {
			names[eventID] = ""
		}
		return ""
	}

	if names != nil {
		names[eventID] = event.Name
	}
	return event.Name
}
