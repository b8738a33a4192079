package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusPublishJSON(t *testing.T) {
	bus := NewEventBus()

	var got []BookingEventPayload
	bus.Subscribe(EventBookingCreated, func(event *Event) error {
		var payload BookingEventPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return err
		}
		got = append(got, payload)
		return nil
	})

	err := bus.PublishJSON(EventBookingCreated, BookingEventPayload{
		BookingID: 7,
		EventID:   3,
		EventName: "GopherCon",
		Quantity:  2,
	})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].BookingID)
	assert.Equal(t, "GopherCon", got[0].EventName)
}

func TestEventBusIgnoresOtherTypes(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	bus.Subscribe(EventSessionCleared, func(event *Event) error {
		calls++
		return nil
	})

	require.NoError(t, bus.PublishJSON(EventLoginSucceeded, SessionEventPayload{UserID: 1}))
	assert.Zero(t, calls)

	require.NoError(t, bus.PublishJSON(EventSessionCleared, SessionEventPayload{UserID: 1}))
	assert.Equal(t, 1, calls)
}

func TestEventBusNilReceiver(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventLoginSucceeded, nil))
}
