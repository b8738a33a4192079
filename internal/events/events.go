package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventLoginSucceeded = "login_succeeded"
	EventSessionCleared = "session_cleared"
	EventBookingCreated = "booking_created"
	EventCatalogCreated = "catalog_event_created"
	EventCatalogUpdated = "catalog_event_updated"
	EventCatalogDeleted = "catalog_event_deleted"
)

// SessionEventPayload describes the session snapshot for event consumers.
type SessionEventPayload struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// BookingEventPayload describes a confirmed booking for event consumers.
type BookingEventPayload struct {
	BookingID int64  `json:"booking_id"`
	EventID   int64  `json:"event_id"`
	EventName string `json:"event_name,omitempty"`
	Quantity  int    `json:"quantity"`
}

// CatalogEventPayload describes a confirmed catalog mutation.
type CatalogEventPayload struct {
	EventID int64  `json:"event_id"`
	Name    string `json:"name,omitempty"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
