package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent struct {
	payload string
}

func (testEvent) Name() string { return "test.event" }

type syncDispatcher struct{}

func (syncDispatcher) Dispatch(name string, fn func() error) {
	_ = fn()
}

func TestPublishDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var got []string
	bus.Subscribe("test.event", "first", func(e Event) {
		got = append(got, "first:"+e.(testEvent).payload)
	})
	bus.Subscribe("test.event", "second", func(e Event) {
		got = append(got, "second:"+e.(testEvent).payload)
	})

	bus.Publish(testEvent{payload: "hello"})

	assert.Equal(t, []string{"first:hello", "second:hello"}, got)
}

func TestSubscriberPanicIsIsolated(t *testing.T) {
	bus := NewBus(zap.NewNop())

	delivered := false
	bus.Subscribe("test.event", "panicky", func(e Event) {
		panic("boom")
	})
	bus.Subscribe("test.event", "healthy", func(e Event) {
		delivered = true
	})

	assert.NotPanics(t, func() {
		bus.Publish(testEvent{})
	})
	assert.True(t, delivered)
}

func TestAsyncSubscriberViaDispatcher(t *testing.T) {
	bus := NewBus(zap.NewNop())
	bus.SetAsyncDispatcher(syncDispatcher{})

	delivered := false
	bus.SubscribeAsync("test.event", "async", func(e Event) {
		delivered = true
	})

	bus.Publish(testEvent{})

	assert.True(t, delivered)
}

func TestAsyncSubscriberWithoutDispatcher(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(1)
	bus.SubscribeAsync("test.event", "async", func(e Event) {
		wg.Done()
	})

	bus.Publish(testEvent{})
	wg.Wait()
}

func TestPublishWithoutSubscribers(t *testing.T) {
	bus := NewBus(zap.NewNop())

	assert.NotPanics(t, func() {
		bus.Publish(testEvent{})
	})
}

func TestEventNameRouting(t *testing.T) {
	bus := NewBus(zap.NewNop())

	called := false
	bus.Subscribe("other.event", "listener", func(e Event) {
		called = true
	})

	bus.Publish(testEvent{})

	assert.False(t, called)
}
