package models

import "github.com/shopspring/decimal"

// Event mirrors one catalog entry owned by the server. The client never
// treats its copy as a source of truth.
type Event struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Price       decimal.Decimal `json:"price"`
	Location    string          `json:"location"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// Key returns the cache identity of the event.
func (e Event) Key() int64 {
	return e.ID
}

// EventDraft carries the editable fields for create and update calls.
// The server assigns the identifier.
type EventDraft struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Price       decimal.Decimal `json:"price"`
	Location    string          `json:"location"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}
