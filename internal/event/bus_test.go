package event

import (
	"sync"
	"testing"

	"github.com/Iron-Ham/minotaur/internal/grid"
)

func TestBus_Dispatch(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe(TypeStateChanged, func(e Event) {
		sc := e.(StateChangedEvent)
		got = append(got, "state:"+sc.To)
	})
	bus.Subscribe(TypeDoorwayRegistered, func(e Event) {
		got = append(got, "door:"+e.(DoorwayRegisteredEvent).Center.String())
	})
	bus.SubscribeAll(func(e Event) {
		got = append(got, "all:"+e.EventType())
	})

	bus.Publish(NewStateChangedEvent(2, "idle", "first_wall", 1))
	bus.Publish(NewDoorwayRegisteredEvent(2, grid.T(4, 7), 9))
	bus.Publish(NewSimulationTickEvent(9, 0.5))

	want := []string{
		"state:first_wall", "all:" + TypeStateChanged,
		"door:" + grid.T(4, 7).String(), "all:" + TypeDoorwayRegistered,
		"all:" + TypeSimulationTick,
	}
	if len(got) != len(want) {
		t.Fatalf("handlers saw %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	calls := map[string]int{}
	keep := bus.Subscribe(TypeCollision, func(Event) { calls["keep"]++ })
	drop := bus.Subscribe(TypeCollision, func(Event) { calls["drop"]++ })
	if keep == "" || keep == drop {
		t.Fatalf("subscription ids %q and %q should be distinct and non-empty", keep, drop)
	}

	if !bus.Unsubscribe(drop) {
		t.Error("Unsubscribe() of a live id should succeed")
	}
	if bus.Unsubscribe(drop) {
		t.Error("Unsubscribe() of a removed id should fail")
	}
	bus.Publish(NewCollisionEvent(1, grid.T(3, 3), 4))

	if calls["keep"] != 1 || calls["drop"] != 0 {
		t.Errorf("calls = %v, want only the kept handler", calls)
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("SubscriptionCount() = %d, want 1", bus.SubscriptionCount())
	}

	bus.Clear()
	if bus.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() after Clear = %d", bus.SubscriptionCount())
	}
}

func TestBus_HandlerPanicRecovery(t *testing.T) {
	bus := NewBus()

	var reported string
	bus.OnPanic(func(eventType string, recovered any, stack []byte) {
		reported = eventType
	})

	reached := false
	bus.Subscribe(TypeRobotDone, func(Event) { panic("observer bug") })
	bus.Subscribe(TypeRobotDone, func(Event) { reached = true })

	bus.Publish(NewRobotDoneEvent(1, 40))

	if !reached {
		t.Error("a panicking handler must not stop the remaining handlers")
	}
	if reported != TypeRobotDone {
		t.Errorf("reported panic for %q, want %q", reported, TypeRobotDone)
	}
}

func TestBus_Concurrent(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	calls := 0
	bus.Subscribe(TypeSimulationTick, func(Event) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Go(func() { bus.Publish(NewSimulationTickEvent(i, 0)) })
		wg.Go(func() { bus.Unsubscribe(bus.Subscribe(TypeCollision, func(Event) {})) })
	}
	wg.Wait()

	if calls != 100 {
		t.Errorf("calls = %d, want 100", calls)
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("SubscriptionCount() = %d, want 1", bus.SubscriptionCount())
	}
}

func TestEventTypes(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewStateChangedEvent(0, "idle", "first_wall", 0), TypeStateChanged},
		{NewCollisionEvent(0, grid.T(1, 1), 3), TypeCollision},
		{NewRobotDoneEvent(1, 40), TypeRobotDone},
		{NewDoorwayRegisteredEvent(0, grid.T(4, 7), 9), TypeDoorwayRegistered},
		{NewAuctionOpenedEvent(0, 0, grid.T(4, 7), 9), TypeAuctionOpened},
		{NewAuctionResolvedEvent(1, 0, 1, grid.T(4, 7), map[int]int{0: 5, 1: 3}, 11), TypeAuctionResolved},
		{NewMessageSentEvent("m", 0, "doorway_found", 9), TypeMessageSent},
		{NewSimulationTickEvent(5, 0.25), TypeSimulationTick},
		{NewSimulationFinishedEvent(5, 1, true), TypeSimulationFinished},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if tt.event.EventType() != tt.want {
				t.Errorf("EventType() = %q, want %q", tt.event.EventType(), tt.want)
			}
			if tt.event.Timestamp().IsZero() {
				t.Error("Timestamp() should be set")
			}
		})
	}
}
