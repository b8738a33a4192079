package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookctl/internal/authgate"
	"bookctl/internal/cache"
	"bookctl/internal/config"
	"bookctl/internal/domain"
	"bookctl/internal/events"
	"bookctl/internal/models"

	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// EventService keeps the catalog list cache in sync with
// server-confirmed mutations. The cache never reflects a result the
// server has not returned.
type EventService struct {
	api    domain.EventAPI
	gate   *authgate.Gate
	list   *cache.List[models.Event]
	cfg    config.ValidationConfig
	bus    domain.EventPublisher
	logger *zerolog.Logger
}

func NewEventService(api domain.EventAPI, gate *authgate.Gate, cfg config.ValidationConfig, bus domain.EventPublisher, logger *zerolog.Logger) *EventService {
	return &EventService{
		api:    api,
		gate:   gate,
		list:   cache.NewList[models.Event](),
		cfg:    cfg,
		bus:    bus,
		logger: logger,
	}
}

// Load replaces the cached catalog with the server's list.
func (s *EventService) Load(ctx context.Context) ([]models.Event, error) {
	list, err := s.api.ListEvents(ctx)
	if err != nil {
		s.gate.HandleFetchError(ctx, err)
		return nil, err
	}

	s.list.Replace(list)
	return s.list.Snapshot(), nil
}

// Create validates the draft, creates the event and appends the
// server's canonical entity. A failed call leaves the cache untouched.
func (s *EventService) Create(ctx context.Context, draft models.EventDraft) (models.Event, error) {
	if err := s.validateDraft(draft); err != nil {
		return models.Event{}, err
	}

	created, err := s.api.CreateEvent(ctx, draft)
	if err != nil {
		s.gate.HandleFetchError(ctx, err)
		return models.Event{}, err
	}

	s.list.ApplyCreate(created)
	_ = s.bus.PublishJSON(events.EventCatalogCreated, events.CatalogEventPayload{
		EventID: created.ID,
		Name:    created.Name,
	})

	s.logger.Info().Int64("event_id", created.ID).Msg("event created")
	return created, nil
}

// Update validates the draft and replaces the cached entry in place.
func (s *EventService) Update(ctx context.Context, id int64, draft models.EventDraft) (models.Event, error) {
	if err := s.validateDraft(draft); err != nil {
		return models.Event{}, err
	}

	updated, err := s.api.UpdateEvent(ctx, id, draft)
	if err != nil {
		s.gate.HandleFetchError(ctx, err)
		return models.Event{}, err
	}

	s.list.ApplyUpdate(updated)
	_ = s.bus.PublishJSON(events.EventCatalogUpdated, events.CatalogEventPayload{
		EventID: updated.ID,
		Name:    updated.Name,
	})

	return updated, nil
}

// Delete removes the event server-side, then drops it from the cache.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteEvent(ctx, id); err != nil {
		s.gate.HandleFetchError(ctx, err)
		return err
	}

	s.list.ApplyDelete(id)
	_ = s.bus.PublishJSON(events.EventCatalogDeleted, events.CatalogEventPayload{EventID: id})

	return nil
}

// Search returns cached events whose name contains the query,
// case-insensitively. The cache itself is not touched.
func (s *EventService) Search(query string) []models.Event {
	needle := strings.ToLower(query)
	return s.list.Filter(func(e models.Event) bool {
		return strings.Contains(strings.ToLower(e.Name), needle)
	})
}

// Events returns a snapshot of the cached catalog.
func (s *EventService) Events() []models.Event {
	return s.list.Snapshot()
}

func (s *EventService) validateDraft(draft models.EventDraft) error {
	if draft.Name == "" {
		return fmt.Errorf("%w: name", ErrFieldRequired)
	}
	if draft.Date == "" {
		return fmt.Errorf("%w: date", ErrFieldRequired)
	}
	if _, err := time.Parse(dateLayout, draft.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, draft.Date)
	}
	if draft.Location == "" {
		return fmt.Errorf("%w: location", ErrFieldRequired)
	}
	if s.cfg.RequirePrice && !draft.Price.IsPositive() {
		return fmt.Errorf("%w: price", ErrFieldRequired)
	}
	if s.cfg.RequireDescription && draft.Description == "" {
		return fmt.Errorf("%w: description", ErrFieldRequired)
	}
	return nil
}
