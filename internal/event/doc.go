// Package event provides a pub-sub event bus that decouples the robots'
// decision cores from the things that watch them.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Categories
//
// Robot:
//   - [StateChangedEvent]: a robot moved between exploration states
//   - [CollisionEvent]: the collision override ran
//   - [RobotDoneEvent]: a robot has nothing left to explore
//
// Doorways and auctions:
//   - [DoorwayRegisteredEvent], [AuctionOpenedEvent], [AuctionResolvedEvent]
//
// Messaging and simulation:
//   - [MessageSentEvent], [SimulationTickEvent], [SimulationFinishedEvent]
//
// # Usage
//
//	bus := event.NewBus()
//	bus.Subscribe(event.TypeAuctionResolved, func(e event.Event) {
//	    resolved := e.(event.AuctionResolvedEvent)
//	    fmt.Println("winner", resolved.WinnerID)
//	})
package event
