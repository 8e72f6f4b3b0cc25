// Package feed fans newly persisted diary records out to live websocket
// subscribers, one subscriber set per user ID.
package feed

import (
	"log"
	"sync"

	"github.com/seoyeon-oh/maum-diary/backend/internal/model/diary"
)

const subscriberBuffer = 8

// Hub tracks per-user subscribers. Publishing never blocks the request
// path: a subscriber whose buffer is full misses that record.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan diary.Record]struct{}
}

// NewHub bootstraps an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan diary.Record]struct{})}
}

// Subscribe registers a new subscriber for the user and returns its
// channel.
func (h *Hub) Subscribe(userID string) chan diary.Record {
	ch := make(chan diary.Record, subscriberBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan diary.Record]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (h *Hub) Unsubscribe(userID string, ch chan diary.Record) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[userID]
	if !ok {
		return
	}
	if _, ok := set[ch]; !ok {
		return
	}
	delete(set, ch)
	if len(set) == 0 {
		delete(h.subs, userID)
	}
	close(ch)
}

// Publish delivers a record to every current subscriber of the user.
func (h *Hub) Publish(userID string, record diary.Record) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[userID] {
		select {
		case ch <- record:
		default:
			log.Printf("[feed] dropping record for slow subscriber of user %s", userID)
		}
	}
}
