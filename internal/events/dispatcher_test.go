package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	event := Event{
		ID:        "evt-1",
		Type:      EventUserRegistered,
		UserID:    7,
		Timestamp: time.Now(),
		Payload:   UserRegisteredPayload{Email: "a@x.com", Username: "alice", RoleID: 3},
	}
	if err := d.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(got) != 1 || got[0].ID != "evt-1" || got[0].UserID != 7 {
		t.Fatalf("unexpected delivery: %+v", got)
	}
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	d.Subscribe(EventUserLoggedIn, func(context.Context, Event) error {
		return errors.New("first handler failed")
	})
	called := false
	d.Subscribe(EventUserLoggedIn, func(context.Context, Event) error {
		called = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventUserLoggedIn}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !called {
		t.Fatalf("second handler not invoked after first failed")
	}
}

func TestDispatcher_IgnoresUnrelatedEvents(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		called = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventUserLoggedIn}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if called {
		t.Fatalf("handler invoked for unrelated event type")
	}
}
