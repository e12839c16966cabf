// Package notifications delivers state-change events to the presentation layer.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// EventsChannel is the Redis channel events are mirrored to.
const EventsChannel = "netgro:events"

// Event types.
const (
	EventSessionChanged = "session.changed"
	EventPostsChanged   = "posts.changed"
	EventProfileChanged = "profile.changed"
)

// Event tells subscribers that some state changed and dependent views must re-render.
type Event struct {
	Type   string    `json:"type"`
	UserID string    `json:"user_id,omitempty"`
	PostID string    `json:"post_id,omitempty"`
	Action string    `json:"action,omitempty"`
	At     time.Time `json:"at"`
}

// Notifier fans events out to in-process subscribers and, when a Redis client
// is set, publishes them on EventsChannel.
type Notifier struct {
	rdb *redis.Client

	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
}

// NewNotifier creates a new Notifier instance. rdb may be nil.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb, subs: make(map[int]func(Event))}
}

// Subscribe registers fn and returns a function that removes it.
func (n *Notifier) Subscribe(fn func(Event)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

// Publish delivers ev synchronously to every subscriber, then mirrors it to Redis.
// A subscriber panic is logged and does not stop delivery.
func (n *Notifier) Publish(ctx context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	n.mu.RLock()
	handlers := make([]func(Event), 0, len(n.subs))
	for id := 0; id < n.nextID; id++ {
		if fn, ok := n.subs[id]; ok {
			handlers = append(handlers, fn)
		}
	}
	n.mu.RUnlock()

	for _, fn := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("PANIC in event subscriber: %v\n%s", r, debug.Stack())
				}
			}()
			fn(ev)
		}()
	}

	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return n.rdb.Publish(ctx, EventsChannel, string(payload)).Err()
}

// StartSubscriber listens on EventsChannel and calls onEvent for every decodable
// message until ctx is done. It is a no-op without Redis.
func (n *Notifier) StartSubscriber(ctx context.Context, onEvent func(Event)) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, EventsChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", EventsChannel, err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					log.Printf("dropping malformed event: %v", err)
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in EventSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onEvent(ev)
				}()
			}
		}
	}()

	return nil
}
