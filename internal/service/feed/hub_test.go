package feed

import (
	"testing"

	"github.com/seoyeon-oh/maum-diary/backend/internal/model/diary"
)

func TestPublishReachesSubscriber(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe("user-1")
	defer hub.Unsubscribe("user-1", ch)

	record := diary.Record{Text: "친구랑 카페 갔다", Category: "관계"}
	hub.Publish("user-1", record)

	select {
	case got := <-ch:
		if got.Text != record.Text {
			t.Fatalf("unexpected record: %+v", got)
		}
	default:
		t.Fatal("expected a buffered record")
	}
}

func TestPublishScopedToUser(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe("user-1")
	defer hub.Unsubscribe("user-1", ch)

	hub.Publish("user-2", diary.Record{Text: "다른 사용자 기록"})

	select {
	case got := <-ch:
		t.Fatalf("record leaked across users: %+v", got)
	default:
	}
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe("user-1")
	defer hub.Unsubscribe("user-1", ch)

	// Publish must never block, even against a full subscriber buffer.
	for i := 0; i < subscriberBuffer+4; i++ {
		hub.Publish("user-1", diary.Record{Text: "기록"})
	}

	if len(ch) != subscriberBuffer {
		t.Fatalf("expected a full buffer of %d, got %d", subscriberBuffer, len(ch))
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe("user-1")
	hub.Unsubscribe("user-1", ch)

	if _, ok := <-ch; ok {
		t.Fatal("expected a closed channel after unsubscribe")
	}

	// Publishing after the last unsubscribe is a no-op.
	hub.Publish("user-1", diary.Record{Text: "기록"})
}
