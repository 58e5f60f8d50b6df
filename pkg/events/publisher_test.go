package events_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvasile/chess-arena/pkg/events"
)

func waitEvent(t *testing.T, ch <-chan events.Event) events.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return events.Event{}
	}
}

func TestPublisher_SubscribeAndPublish(t *testing.T) {
	p := events.NewPublisher()
	received := make(chan events.Event, 1)

	p.Subscribe(events.EventSessionCreated, func(ev events.Event) {
		received <- ev
	})

	p.Publish(events.Event{
		Type:      events.EventSessionCreated,
		SessionID: "abc",
	})

	ev := waitEvent(t, received)
	assert.Equal(t, events.EventSessionCreated, ev.Type)
	assert.Equal(t, "abc", ev.SessionID)
}

func TestPublisher_TypeFiltering(t *testing.T) {
	p := events.NewPublisher()
	received := make(chan events.Event, 1)

	p.Subscribe(events.EventSessionEnded, func(ev events.Event) {
		received <- ev
	})

	p.Publish(events.Event{Type: events.EventMoveApplied})

	select {
	case <-received:
		t.Fatal("handler fired for a different event type")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublisher_SubscribeAll(t *testing.T) {
	p := events.NewPublisher()
	received := make(chan events.Event, 2)

	p.SubscribeAll(func(ev events.Event) {
		received <- ev
	})

	p.Publish(events.Event{Type: events.EventMoveApplied})
	p.Publish(events.Event{Type: events.EventSessionPaused})

	seen := map[events.EventType]bool{}
	for i := 0; i < 2; i++ {
		seen[waitEvent(t, received).Type] = true
	}
	assert.True(t, seen[events.EventMoveApplied])
	assert.True(t, seen[events.EventSessionPaused])
}

func TestPublisher_MultipleHandlers(t *testing.T) {
	p := events.NewPublisher()
	first := make(chan events.Event, 1)
	second := make(chan events.Event, 1)

	p.Subscribe(events.EventConnectionClosed, func(ev events.Event) { first <- ev })
	p.Subscribe(events.EventConnectionClosed, func(ev events.Event) { second <- ev })

	p.Publish(events.Event{Type: events.EventConnectionClosed})

	require.Equal(t, events.EventConnectionClosed, waitEvent(t, first).Type)
	require.Equal(t, events.EventConnectionClosed, waitEvent(t, second).Type)
}
