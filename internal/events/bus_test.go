package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-console/internal/events"
)

type captureNotifier struct {
	events []events.Event
	err    error
}

func (c *captureNotifier) Notify(_ context.Context, event events.Event) error {
	c.events = append(c.events, event)
	return c.err
}

func TestEmitRecordsEvent(t *testing.T) {
	journal := &events.Journal{}
	notifier := &captureNotifier{}
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	bus := events.Bus{
		Journal:   journal,
		Notifiers: []events.Notifier{notifier},
		Now:       func() time.Time { return fixed },
	}

	ctx := context.Background()
	event, err := bus.Emit(ctx, events.TopicOrderPaid, "order1", map[string]any{"orderId": "order1"})
	require.NoError(t, err)
	require.NotEmpty(t, event.ID)
	require.Equal(t, fixed, event.OccurredAt)
	require.JSONEq(t, `{"orderId":"order1"}`, string(event.Payload))
	require.Len(t, notifier.events, 1)
	require.Equal(t, event.ID, notifier.events[0].ID)

	recorded := journal.Events()
	require.Len(t, recorded, 1)
	require.Len(t, journal.Topic(events.TopicOrderPaid), 1)
	require.Empty(t, journal.Topic(events.TopicShipmentShipped))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(recorded[0].Payload, &decoded))
	require.Equal(t, "order1", decoded["orderId"])
}

func TestEmitValidatesInput(t *testing.T) {
	bus := events.Bus{Journal: &events.Journal{}}
	ctx := context.Background()

	_, err := bus.Emit(ctx, " ", "order1", nil)
	require.Error(t, err)
	_, err = bus.Emit(ctx, events.TopicOrderPaid, "", nil)
	require.Error(t, err)
	_, err = bus.Emit(ctx, events.TopicOrderPaid, "order1", "{not json")
	require.Error(t, err)
	require.Empty(t, bus.Journal.Events())

	ev, err := bus.Emit(ctx, events.TopicOrderPaid, "order1", nil)
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(ev.Payload))
}

func TestEmitJoinsNotifierErrors(t *testing.T) {
	boom := errors.New("boom")
	first := &captureNotifier{err: boom}
	second := &captureNotifier{}
	bus := events.Bus{Journal: &events.Journal{}, Notifiers: []events.Notifier{first, nil, second}}

	_, err := bus.Emit(context.Background(), events.TopicShipmentShipped, "order2", nil)
	require.ErrorIs(t, err, boom)
	require.Len(t, second.events, 1)
	require.Len(t, bus.Journal.Events(), 1)
}

func TestNilBusDropsEvents(t *testing.T) {
	var bus *events.Bus
	_, err := bus.Emit(context.Background(), events.TopicOrderPaid, "order1", nil)
	require.NoError(t, err)
}
