package texts

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// UpdatedChannel is the event name (and redis channel) announcing saved
// site texts.
const UpdatedChannel = "site-texts-updated"

type Event struct {
	Origin string    `json:"origin"`
	At     time.Time `json:"at"`
}

// Notifier announces that site texts changed.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Hub fans events out to in-process subscribers. Slow subscribers miss
// events rather than block the publisher.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe returns a channel of events and a function that ends the
// subscription and closes the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 4)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *Hub) Notify(ctx context.Context, ev Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// RedisBridge relays events between instances over redis pub/sub. Local
// events go to the hub directly; remote ones arrive through Run.
type RedisBridge struct {
	client *redis.Client
	hub    *Hub
	origin string
	log    *zap.Logger
}

func NewRedisBridge(client *redis.Client, hub *Hub, log *zap.Logger) *RedisBridge {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisBridge{client: client, hub: hub, origin: uuid.NewString(), log: log}
}

func (b *RedisBridge) Origin() string { return b.origin }

func (b *RedisBridge) Notify(ctx context.Context, ev Event) error {
	if ev.Origin == "" {
		ev.Origin = b.origin
	}
	b.hub.Notify(ctx, ev)

	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, UpdatedChannel, raw).Err()
}

// Run forwards events published by other instances until ctx is done.
// ready, if non-nil, is closed once the subscription is active.
func (b *RedisBridge) Run(ctx context.Context, ready chan<- struct{}) error {
	sub := b.client.Subscribe(ctx, UpdatedChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	if ready != nil {
		close(ready)
	}

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.log.Warn("dropping malformed site texts event", zap.Error(err))
				continue
			}
			if ev.Origin == b.origin {
				continue
			}
			b.hub.Notify(ctx, ev)
		}
	}
}
