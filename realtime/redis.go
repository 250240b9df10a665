package realtime

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/redis/go-redis/v9"
)

const relayChannelPrefix = "neighbourmatch:channel:"

// RedisRelay shares events between server instances. Publish goes through
// redis and Run relays every message back into the local hub, so an instance
// using the relay must not publish to its hub directly.
type RedisRelay struct {
	client *redis.Client
	hub    *Hub
}

func NewRedisRelay(client *redis.Client, hub *Hub) *RedisRelay {
	return &RedisRelay{
		client: client,
		hub:    hub,
	}
}

func (r *RedisRelay) Publish(ctx context.Context, channel string, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, relayChannelPrefix+channel, body).Err()
}

// Run relays messages until the context is cancelled
func (r *RedisRelay) Run(ctx context.Context) error {
	pubsub := r.client.PSubscribe(ctx, relayChannelPrefix+"*")
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	log.Info("redis relay subscribed")

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			r.relay(ctx, msg)
		}
	}
}

func (r *RedisRelay) relay(ctx context.Context, msg *redis.Message) {
	var event relayedEvent
	if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
		log.WithError(err).WithField("channel", msg.Channel).Warn("drop malformed relay message")
		return
	}

	channel := strings.TrimPrefix(msg.Channel, relayChannelPrefix)
	r.hub.Publish(ctx, channel, Event{Type: event.Type, Payload: event.Payload})
}

// relayedEvent keeps the payload as raw JSON so it is forwarded untouched
type relayedEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}
