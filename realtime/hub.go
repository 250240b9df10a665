package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/uber-go/tally"
)

const defaultBufferSize = 16

// Subscription receives the events of the channels it joined
type Subscription struct {
	id       string
	channels []string
	events   chan Event
	once     sync.Once
}

// Events is closed when the subscription is removed from the hub
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Hub is the in-process transport
type Hub struct {
	mu         sync.RWMutex
	channels   map[string]map[string]*Subscription
	bufferSize int
	scope      tally.Scope
}

func NewHub(scope tally.Scope) *Hub {
	return &Hub{
		channels:   make(map[string]map[string]*Subscription),
		bufferSize: defaultBufferSize,
		scope:      scope.SubScope("realtime"),
	}
}

// Subscribe joins the given channels
func (h *Hub) Subscribe(channels ...string) *Subscription {
	sub := &Subscription{
		id:       uuid.New().String(),
		channels: channels,
		events:   make(chan Event, h.bufferSize),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range channels {
		members, ok := h.channels[c]
		if !ok {
			members = make(map[string]*Subscription)
			h.channels[c] = members
		}
		members[sub.id] = sub
	}
	h.scope.Gauge("subscriptions").Update(float64(h.countLocked()))

	return sub
}

// Unsubscribe leaves every channel of the subscription and closes it
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range sub.channels {
		if members, ok := h.channels[c]; ok {
			delete(members, sub.id)
			if len(members) == 0 {
				delete(h.channels, c)
			}
		}
	}
	h.scope.Gauge("subscriptions").Update(float64(h.countLocked()))

	sub.once.Do(func() {
		close(sub.events)
	})
}

// Publish hands the event to every subscriber of the channel. A subscriber
// whose buffer is full misses the event.
func (h *Hub) Publish(_ context.Context, channel string, event Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.channels[channel] {
		select {
		case sub.events <- event:
			h.scope.Counter("delivered").Inc(1)
		default:
			h.scope.Counter("dropped").Inc(1)
			log.WithField("channel", channel).WithField("event", event.Type).Warn("subscriber is lagging, event dropped")
		}
	}

	return nil
}

// Subscribers returns the number of subscriptions of a channel
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

func (h *Hub) countLocked() int {
	seen := make(map[string]struct{})
	for _, members := range h.channels {
		for id := range members {
			seen[id] = struct{}{}
		}
	}
	return len(seen)
}
