package event

import (
	"time"

	"github.com/Iron-Ham/minotaur/internal/grid"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "robot.state_changed", "auction.resolved")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// Event type identifiers.
const (
	TypeStateChanged       = "robot.state_changed"
	TypeCollision          = "robot.collision"
	TypeRobotDone          = "robot.done"
	TypeDoorwayRegistered  = "doorway.registered"
	TypeAuctionOpened      = "auction.opened"
	TypeAuctionResolved    = "auction.resolved"
	TypeMessageSent        = "message.sent"
	TypeSimulationTick     = "simulation.tick"
	TypeSimulationFinished = "simulation.finished"
)

// -----------------------------------------------------------------------------
// Robot Events
// -----------------------------------------------------------------------------

// StateChangedEvent is emitted when a robot's exploration state changes.
type StateChangedEvent struct {
	baseEvent
	RobotID int
	From    string
	To      string
	Tick    int
}

// NewStateChangedEvent creates a StateChangedEvent.
func NewStateChangedEvent(robotID int, from, to string, tick int) StateChangedEvent {
	return StateChangedEvent{
		baseEvent: newBaseEvent(TypeStateChanged),
		RobotID:   robotID,
		From:      from,
		To:        to,
		Tick:      tick,
	}
}

// CollisionEvent is emitted when a robot's collision override takes over a tick.
type CollisionEvent struct {
	baseEvent
	RobotID  int
	Position grid.Tile
	Tick     int
}

// NewCollisionEvent creates a CollisionEvent.
func NewCollisionEvent(robotID int, pos grid.Tile, tick int) CollisionEvent {
	return CollisionEvent{
		baseEvent: newBaseEvent(TypeCollision),
		RobotID:   robotID,
		Position:  pos,
		Tick:      tick,
	}
}

// RobotDoneEvent is emitted when a robot finds no unexplored doorway left.
type RobotDoneEvent struct {
	baseEvent
	RobotID int
	Tick    int
}

// NewRobotDoneEvent creates a RobotDoneEvent.
func NewRobotDoneEvent(robotID, tick int) RobotDoneEvent {
	return RobotDoneEvent{
		baseEvent: newBaseEvent(TypeRobotDone),
		RobotID:   robotID,
		Tick:      tick,
	}
}

// -----------------------------------------------------------------------------
// Doorway and Auction Events
// -----------------------------------------------------------------------------

// DoorwayRegisteredEvent is emitted when a robot adds a new doorway to its registry.
type DoorwayRegisteredEvent struct {
	baseEvent
	RobotID int
	Center  grid.Tile
	Tick    int
}

// NewDoorwayRegisteredEvent creates a DoorwayRegisteredEvent.
func NewDoorwayRegisteredEvent(robotID int, center grid.Tile, tick int) DoorwayRegisteredEvent {
	return DoorwayRegisteredEvent{
		baseEvent: newBaseEvent(TypeDoorwayRegistered),
		RobotID:   robotID,
		Center:    center,
		Tick:      tick,
	}
}

// AuctionOpenedEvent is emitted when a robot starts collecting bids for a doorway.
type AuctionOpenedEvent struct {
	baseEvent
	RobotID     int
	RequesterID int
	Doorway     grid.Tile
	Tick        int
}

// NewAuctionOpenedEvent creates an AuctionOpenedEvent.
func NewAuctionOpenedEvent(robotID, requesterID int, doorway grid.Tile, tick int) AuctionOpenedEvent {
	return AuctionOpenedEvent{
		baseEvent:   newBaseEvent(TypeAuctionOpened),
		RobotID:     robotID,
		RequesterID: requesterID,
		Doorway:     doorway,
		Tick:        tick,
	}
}

// AuctionResolvedEvent is emitted when a robot decides the winner of a doorway auction.
type AuctionResolvedEvent struct {
	baseEvent
	RobotID     int
	RequesterID int
	WinnerID    int
	Doorway     grid.Tile
	Bids        map[int]int
	Tick        int
}

// NewAuctionResolvedEvent creates an AuctionResolvedEvent.
func NewAuctionResolvedEvent(robotID, requesterID, winnerID int, doorway grid.Tile, bids map[int]int, tick int) AuctionResolvedEvent {
	return AuctionResolvedEvent{
		baseEvent:   newBaseEvent(TypeAuctionResolved),
		RobotID:     robotID,
		RequesterID: requesterID,
		WinnerID:    winnerID,
		Doorway:     doorway,
		Bids:        bids,
		Tick:        tick,
	}
}

// -----------------------------------------------------------------------------
// Messaging and Simulation Events
// -----------------------------------------------------------------------------

// MessageSentEvent is emitted when a robot broadcasts a coordination message.
type MessageSentEvent struct {
	baseEvent
	MessageID string
	From      int
	Kind      string
	Tick      int
}

// NewMessageSentEvent creates a MessageSentEvent.
func NewMessageSentEvent(messageID string, from int, kind string, tick int) MessageSentEvent {
	return MessageSentEvent{
		baseEvent: newBaseEvent(TypeMessageSent),
		MessageID: messageID,
		From:      from,
		Kind:      kind,
		Tick:      tick,
	}
}

// SimulationTickEvent is emitted after every robot has run a tick.
type SimulationTickEvent struct {
	baseEvent
	Tick     int
	Coverage float64
}

// NewSimulationTickEvent creates a SimulationTickEvent.
func NewSimulationTickEvent(tick int, coverage float64) SimulationTickEvent {
	return SimulationTickEvent{
		baseEvent: newBaseEvent(TypeSimulationTick),
		Tick:      tick,
		Coverage:  coverage,
	}
}

// SimulationFinishedEvent is emitted once when a run stops.
type SimulationFinishedEvent struct {
	baseEvent
	Tick     int
	Coverage float64
	AllDone  bool
}

// NewSimulationFinishedEvent creates a SimulationFinishedEvent.
func NewSimulationFinishedEvent(tick int, coverage float64, allDone bool) SimulationFinishedEvent {
	return SimulationFinishedEvent{
		baseEvent: newBaseEvent(TypeSimulationFinished),
		Tick:      tick,
		Coverage:  coverage,
		AllDone:   allDone,
	}
}
