package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/finboard/finboard/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_Publish(t *testing.T) {
	t.Run("should call handlers in subscription order", func(t *testing.T) {
		bus := NewEventBus()
		var calls []string
		bus.Subscribe(LayoutUpdated, func(Event) error { calls = append(calls, "first"); return nil })
		bus.Subscribe(LayoutUpdated, func(Event) error { calls = append(calls, "second"); return nil })

		err := bus.Publish(NewEvent(context.Background(), LayoutUpdated, nil))

		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("should collect handler errors and recover panics", func(t *testing.T) {
		bus := NewEventBus()
		called := false
		bus.Subscribe(FinanceDataChanged, func(Event) error { return errors.New("boom") })
		bus.Subscribe(FinanceDataChanged, func(Event) error { panic("kaboom") })
		bus.Subscribe(FinanceDataChanged, func(Event) error { called = true; return nil })

		err := bus.Publish(NewEvent(context.Background(), FinanceDataChanged, nil))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
		assert.Contains(t, err.Error(), "kaboom")
		assert.True(t, called)
	})

	t.Run("should not publish with cancelled context", func(t *testing.T) {
		bus := NewEventBus()
		called := false
		bus.Subscribe(LayoutUpdated, func(Event) error { called = true; return nil })
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := bus.Publish(NewEvent(ctx, LayoutUpdated, nil))

		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})

	t.Run("should stop calling unsubscribed handler", func(t *testing.T) {
		bus := NewEventBus()
		count := 0
		unsubscribe := bus.Subscribe(LayoutUpdated, func(Event) error { count++; return nil })
		_ = bus.Publish(NewEvent(context.Background(), LayoutUpdated, nil))

		unsubscribe()
		_ = bus.Publish(NewEvent(context.Background(), LayoutUpdated, nil))

		assert.Equal(t, 1, count)
	})
}

func TestSubscribeTyped(t *testing.T) {
	bus := NewEventBus()
	var received []FinanceDataChange
	SubscribeTyped(bus, FinanceDataChanged, func(e TypedEvent[FinanceDataChange]) error {
		received = append(received, e.Payload)
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), FinanceDataChanged, FinanceDataChange{UserUid: "u1", Domain: "goal"})))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), FinanceDataChanged, "not a change")))

	require.Len(t, received, 1)
	assert.Equal(t, "u1", received[0].UserUid)
}

func TestPublishChange(t *testing.T) {
	t.Run("should publish change for current user", func(t *testing.T) {
		bus := NewEventBus()
		var received FinanceDataChange
		SubscribeTyped(bus, FinanceDataChanged, func(e TypedEvent[FinanceDataChange]) error {
			received = e.Payload
			return nil
		})

		PublishChange(bus, user.WithUid(context.Background(), "u1"), "goal", "progress", "g1")

		assert.Equal(t, FinanceDataChange{UserUid: "u1", Domain: "goal", Action: "progress", EntityId: "g1"}, received)
	})

	t.Run("should publish change when request context was cancelled", func(t *testing.T) {
		bus := NewEventBus()
		var received []FinanceDataChange
		SubscribeTyped(bus, FinanceDataChanged, func(e TypedEvent[FinanceDataChange]) error {
			received = append(received, e.Payload)
			return nil
		})
		ctx, cancel := context.WithCancel(user.WithUid(context.Background(), "u1"))
		cancel()

		PublishChange(bus, ctx, "account", "update", "a1")

		require.Len(t, received, 1)
		assert.Equal(t, "u1", received[0].UserUid)
		assert.Equal(t, "a1", received[0].EntityId)
	})

	t.Run("should skip publishing without user", func(t *testing.T) {
		bus := NewEventBus()
		called := false
		bus.Subscribe(FinanceDataChanged, func(Event) error { called = true; return nil })

		PublishChange(bus, context.Background(), "goal", "create", "g1")

		assert.False(t, called)
	})
}
