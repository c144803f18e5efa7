package eventbus

import (
	"context"
	"slices"
	"sync"
)

type envelope struct {
	event   Event
	payload any
}

// EventBus is an asynchronous, buffered publish/subscribe bus. Publishing
// never blocks: when the buffer is full the event is dropped and the OnDrop
// hooks fire. Subscribers run on the goroutine that called Start.
//
// A nil *EventBus is valid; publishing to it is a no-op.
type EventBus struct {
	ch chan envelope

	mu   sync.RWMutex
	subs map[Event][]func(any)

	hooks hooks
}

// hooks holds lifecycle hooks, separate from subscribers so debugging and
// metrics never change dispatch order.
type hooks struct {
	mu          sync.RWMutex
	onPublish   []func(Event, any)
	onDrop      []func(Event, any)
	onSubscribe []func(Event)
	onPanic     []func(Event, any, any)
}

// New creates a bus with the given buffer size.
func New(buffer int) *EventBus {
	return &EventBus{
		ch:   make(chan envelope, buffer),
		subs: make(map[Event][]func(any)),
	}
}

// Start dispatches events until ctx is cancelled.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-bus.ch:
			bus.dispatch(env)
		}
	}
}

// OnPublish registers a hook that fires after an event is enqueued.
func (bus *EventBus) OnPublish(fn func(Event, any)) {
	bus.hooks.mu.Lock()
	defer bus.hooks.mu.Unlock()
	bus.hooks.onPublish = append(bus.hooks.onPublish, fn)
}

// OnDrop registers a hook that fires when an event is dropped.
func (bus *EventBus) OnDrop(fn func(Event, any)) {
	bus.hooks.mu.Lock()
	defer bus.hooks.mu.Unlock()
	bus.hooks.onDrop = append(bus.hooks.onDrop, fn)
}

// OnSubscribe registers a hook that fires after a subscriber is added.
func (bus *EventBus) OnSubscribe(fn func(Event)) {
	bus.hooks.mu.Lock()
	defer bus.hooks.mu.Unlock()
	bus.hooks.onSubscribe = append(bus.hooks.onSubscribe, fn)
}

// OnPanic registers a hook that fires when a subscriber panics. The third
// argument is the recovered value.
func (bus *EventBus) OnPanic(fn func(Event, any, any)) {
	bus.hooks.mu.Lock()
	defer bus.hooks.mu.Unlock()
	bus.hooks.onPanic = append(bus.hooks.onPanic, fn)
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()

	bus.hooks.mu.RLock()
	onSubscribe := slices.Clone(bus.hooks.onSubscribe)
	bus.hooks.mu.RUnlock()
	for _, h := range onSubscribe {
		h(event)
	}
}

func (bus *EventBus) send(event Event, payload any) {
	if bus == nil {
		return
	}

	bus.hooks.mu.RLock()
	onPublish := slices.Clone(bus.hooks.onPublish)
	onDrop := slices.Clone(bus.hooks.onDrop)
	bus.hooks.mu.RUnlock()

	select {
	case bus.ch <- envelope{event: event, payload: payload}:
		for _, h := range onPublish {
			h(event, payload)
		}
	default:
		for _, h := range onDrop {
			h(event, payload)
		}
	}
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	subs := slices.Clone(bus.subs[env.event])
	bus.mu.RUnlock()

	for _, fn := range subs {
		bus.call(env, fn)
	}
}

func (bus *EventBus) call(env envelope, fn func(any)) {
	defer func() {
		if r := recover(); r != nil {
			bus.hooks.mu.RLock()
			onPanic := slices.Clone(bus.hooks.onPanic)
			bus.hooks.mu.RUnlock()
			for _, h := range onPanic {
				func() {
					defer func() { recover() }() //nolint:errcheck
					h(env.event, env.payload, r)
				}()
			}
		}
	}()
	fn(env.payload)
}
