package event

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
)

// Handler is a function that handles an event.
type Handler func(Event)

// PanicReporter receives handler panics recovered by the Bus.
type PanicReporter func(eventType string, recovered any, stack []byte)

type subscription struct {
	id      string
	handler Handler
}

// wildcard is the subscription key used by SubscribeAll.
const wildcard = "*"

// Bus is a synchronous pub-sub event bus.
// Robots publish exploration milestones on it and observers (logging,
// the TUI, the websocket stream) subscribe without the robots knowing them.
type Bus struct {
	mu            sync.RWMutex
	subscriptions map[string][]subscription // eventType -> subscriptions
	onPanic       PanicReporter
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		subscriptions: make(map[string][]subscription),
	}
}

// OnPanic installs a reporter for recovered handler panics. Without one,
// panics are swallowed after recovery.
func (b *Bus) OnPanic(r PanicReporter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onPanic = r
}

// Subscribe registers a handler for a specific event type.
// Returns a subscription ID that can be used to unsubscribe.
func (b *Bus) Subscribe(eventType string, handler Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	b.subscriptions[eventType] = append(b.subscriptions[eventType], subscription{id: id, handler: handler})
	return id
}

// SubscribeAll registers a handler for all event types.
func (b *Bus) SubscribeAll(handler Handler) string {
	return b.Subscribe(wildcard, handler)
}

// Unsubscribe removes a subscription by ID.
// Returns true if the subscription was found and removed.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.subscriptions {
		for i, sub := range subs {
			if sub.id == id {
				b.subscriptions[eventType] = append(subs[:i:i], subs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Publish dispatches an event to all registered handlers.
// Specific handlers are called first, then wildcard handlers, each group
// in registration order. A panicking handler is recovered and the
// remaining handlers still run.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	eventType := event.EventType()
	specific := append([]subscription(nil), b.subscriptions[eventType]...)
	all := append([]subscription(nil), b.subscriptions[wildcard]...)
	onPanic := b.onPanic
	b.mu.RUnlock()

	for _, sub := range specific {
		safeCall(sub.handler, event, onPanic)
	}
	for _, sub := range all {
		safeCall(sub.handler, event, onPanic)
	}
}

func safeCall(handler Handler, event Event, onPanic PanicReporter) {
	defer func() {
		if r := recover(); r != nil && onPanic != nil {
			onPanic(event.EventType(), r, debug.Stack())
		}
	}()
	handler(event)
}

// Clear removes all subscriptions.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions = make(map[string][]subscription)
}

// SubscriptionCount returns the total number of active subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, subs := range b.subscriptions {
		count += len(subs)
	}
	return count
}

// String describes the bus for debugging.
func (b *Bus) String() string {
	return fmt.Sprintf("event.Bus{subscriptions: %d}", b.SubscriptionCount())
}
