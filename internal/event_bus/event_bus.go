package event_bus

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type EventType string

// Event carries the request context of the publisher so handlers can read the
// current user and honour cancellation.
type Event struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      any
}

func NewEvent(ctx context.Context, eventType EventType, data any) Event {
	return Event{ctx: ctx, Type: eventType, Timestamp: time.Now(), Data: data}
}

func (e Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// TypedEvent is what SubscribeTyped handlers receive.
type TypedEvent[T any] struct {
	Event
	Payload T
}

type subscription struct {
	id uint64
	fn func(Event) error
}

// EventBus dispatches events synchronously, in subscription order, on the
// publisher's goroutine.
type EventBus struct {
	mu     sync.RWMutex
	subs   map[EventType][]subscription
	nextID uint64
}

func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[EventType][]subscription)}
}

// Subscribe registers fn for eventType and returns a function removing it.
func (eb *EventBus) Subscribe(eventType EventType, fn func(Event) error) (unsubscribe func()) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.nextID++
	id := eb.nextID
	eb.subs[eventType] = append(eb.subs[eventType], subscription{id: id, fn: fn})

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()
		remaining := eb.subs[eventType][:0]
		for _, s := range eb.subs[eventType] {
			if s.id != id {
				remaining = append(remaining, s)
			}
		}
		if len(remaining) == 0 {
			delete(eb.subs, eventType)
			return
		}
		eb.subs[eventType] = remaining
	}
}

// SubscribeTyped is a free function because methods cannot declare type parameters.
// Events whose payload is not a T are skipped.
func SubscribeTyped[T any](eb *EventBus, eventType EventType, fn func(TypedEvent[T]) error) (unsubscribe func()) {
	return eb.Subscribe(eventType, func(e Event) error {
		payload, ok := e.Data.(T)
		if !ok {
			log.Debugf("event bus: skipping %s, expected payload %T, got %T", eventType, *new(T), e.Data)
			return nil
		}
		return fn(TypedEvent[T]{Event: e, Payload: payload})
	})
}

// Publish runs every handler of e.Type. Handler errors and panics are collected
// and returned joined; a cancelled context stops the remaining handlers.
func (eb *EventBus) Publish(e Event) error {
	if err := e.Context().Err(); err != nil {
		return fmt.Errorf("event %s: context cancelled before publish: %w", e.Type, err)
	}

	eb.mu.RLock()
	subs := make([]subscription, len(eb.subs[e.Type]))
	copy(subs, eb.subs[e.Type])
	eb.mu.RUnlock()
	sort.Slice(subs, func(i, j int) bool { return subs[i].id < subs[j].id })

	var errs []error
	for _, s := range subs {
		if err := e.Context().Err(); err != nil {
			errs = append(errs, fmt.Errorf("context cancelled during event processing: %w", err))
			break
		}
		if err := invoke(s, e); err != nil {
			log.Errorf("event bus: handler %d failed for %s: %v", s.id, e.Type, err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("event %s: %w", e.Type, errors.Join(errs...))
	}
	return nil
}

func invoke(s subscription, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler %d panicked: %v", s.id, r)
		}
	}()
	return s.fn(e)
}
