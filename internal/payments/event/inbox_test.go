package event

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shandysiswandi/gopay/internal/payments/entity"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func TestInboxKeepsLatest(t *testing.T) {
	inbox := NewInbox(2)

	for i := 1; i <= 3; i++ {
		n := entity.Notification{EventID: fmt.Sprintf("evt-%d", i), AccountID: 2345, Body: fmt.Sprint(i)}
		if err := inbox.Handle(context.Background(), n); err != nil {
			t.Fatalf("handle: %v", err)
		}
	}

	got := inbox.List(2345)
	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[0].Body != "2" || got[1].Body != "3" {
		t.Fatalf("unexpected order: %+v", got)
	}

	if other := inbox.List(1234); len(other) != 0 {
		t.Fatalf("expected empty inbox, got %d", len(other))
	}
}

func TestInboxRejectsMissingEventID(t *testing.T) {
	inbox := NewInbox(0)
	if err := inbox.Handle(context.Background(), entity.Notification{AccountID: 1}); err == nil {
		t.Fatal("expected error")
	}
}

func TestNotifierDeliversThroughConsumer(t *testing.T) {
	bus := NewBus(4)
	inbox := NewInbox(10)
	consumer := NewNotificationConsumer(bus, inbox, ConsumerConfig{Workers: 1})
	consumer.Start()

	notifier := NewNotifier(bus, fixedID("evt-1"))
	if err := notifier.Notify(context.Background(), 2345, "New Transaction", "50.00 received from Mariana Silva"); err != nil {
		t.Fatalf("notify: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := consumer.Stop(ctx); err != nil {
		t.Fatalf("stop consumer: %v", err)
	}

	got := inbox.List(2345)
	if len(got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(got))
	}
	if got[0].Title != "New Transaction" || got[0].Body != "50.00 received from Mariana Silva" {
		t.Fatalf("unexpected notification: %+v", got[0])
	}
	if got[0].EventID != "evt-1" {
		t.Fatalf("unexpected event id: %s", got[0].EventID)
	}
}
