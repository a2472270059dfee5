package explore

import (
	"github.com/Iron-Ham/minotaur/internal/bidding"
	"github.com/Iron-Ham/minotaur/internal/doorway"
	"github.com/Iron-Ham/minotaur/internal/errors"
	"github.com/Iron-Ham/minotaur/internal/event"
)

// foundDoorway registers a doorway this robot confirmed and, when it is
// new, opens an auction for it. The announcement is followed by the
// robot's own bid so every bidder resolves over the same bid set.
func (e *Explorer) foundDoorway(d doorway.Doorway) {
	idx, added := e.doorways.Register(d)
	if !added {
		e.logger.Debug("doorway already known", "tick", e.tick, "doorway", d.Center.String())
		return
	}
	e.logger.Info("doorway registered", "tick", e.tick, "doorway", d.Center.String(), "approach", d.Approach.String())
	e.publish(event.NewDoorwayRegisteredEvent(e.ctl.ID(), d.Center, e.tick))

	if e.state != ExploreRoom {
		return
	}
	bid, ok := bidding.Bid(e.ctl.Map(), e.ctl.Position(), d)
	if !ok {
		e.logLocal("bid on own doorway", "bidding", errors.ErrNoPath)
		return
	}

	door := e.doorways.Get(idx)
	e.ctl.Broadcast(bidding.DoorwayFound{Doorway: door, RequesterID: e.ctl.ID()})
	e.ctl.Broadcast(bidding.Bidding{RequesterID: e.ctl.ID(), Bids: map[int]int{e.ctl.ID(): bid}, Doorway: door})
	e.ledger.Open(e.ctl.ID(), door, e.ctl.ID(), bid, e.tick)
	e.ctl.Stop()
	e.waypoint.Clear()
	e.logger.Info("auction opened", "tick", e.tick, "doorway", door.Center.String(), "bid", bid)
	e.publish(event.NewAuctionOpenedEvent(e.ctl.ID(), e.ctl.ID(), door.Center, e.tick))
	e.transition(Auctioning)
}

// handleMessages drains the inbox, folds it and dispatches each message.
func (e *Explorer) handleMessages() {
	received := e.ctl.Receive()
	if len(received) == 0 {
		return
	}
	for _, m := range bidding.Batch(received, e.params.Tolerance) {
		switch msg := m.(type) {
		case bidding.DoorwayFound:
			e.onDoorwayFound(msg)
		case bidding.Bidding:
			if !e.ledger.Add(msg) {
				e.logger.Debug("bid for untracked auction", "tick", e.tick, "requester", msg.RequesterID)
			}
		default:
			e.logLocal("dispatch message", "messages", errors.ErrUnknownMessage)
		}
	}
}

// onDoorwayFound registers an announced doorway and bids for it when this
// robot is exploring a room or waiting on an auction of its own.
func (e *Explorer) onDoorwayFound(m bidding.DoorwayFound) {
	idx, known := e.doorways.Find(m.Doorway)
	if known && e.doorways.Get(idx).Explored {
		return
	}
	if e.state != ExploreRoom && e.state != Auctioning {
		e.register(m.Doorway)
		return
	}

	resp, ok := bidding.Respond(m, bidding.Responder{
		ID:       e.ctl.ID(),
		Position: e.ctl.Position(),
		Map:      e.ctl.Map(),
		Doorways: e.doorways,
	})
	if !known {
		e.logger.Info("doorway registered", "tick", e.tick, "doorway", m.Doorway.Center.String(), "from", m.RequesterID)
		e.publish(event.NewDoorwayRegisteredEvent(e.ctl.ID(), m.Doorway.Center, e.tick))
	}
	if !ok {
		e.logger.Debug("abstained from auction", "tick", e.tick, "requester", m.RequesterID)
		return
	}

	bid := resp.Bids[e.ctl.ID()]
	e.ctl.Broadcast(resp)
	e.ledger.Open(m.RequesterID, m.Doorway, e.ctl.ID(), bid, e.tick)
	e.publish(event.NewAuctionOpenedEvent(e.ctl.ID(), m.RequesterID, m.Doorway.Center, e.tick))
	e.logger.Debug("bid sent", "tick", e.tick, "requester", m.RequesterID, "bid", bid)
}

func (e *Explorer) register(d doorway.Doorway) int {
	idx, added := e.doorways.Register(d)
	if added {
		e.logger.Info("doorway registered", "tick", e.tick, "doorway", d.Center.String())
		e.publish(event.NewDoorwayRegisteredEvent(e.ctl.ID(), d.Center, e.tick))
	}
	return idx
}

// resolveAuctions settles every auction that is complete or timed out.
// The winner claims the doorway; everyone else marks it explored so only
// the winner passes through. A robot that found a doorway at the same time
// as another can win it twice; the second win is dropped once the robot
// has entered.
func (e *Explorer) resolveAuctions() {
	for _, o := range e.ledger.Due(e.tick) {
		idx := e.register(o.Doorway)
		e.logger.Info("auction resolved", "tick", e.tick,
			"doorway", o.Doorway.Center.String(), "requester", o.RequesterID,
			"winner", o.WinnerID, "bids", len(o.Bids), "timed_out", o.TimedOut)
		e.publish(event.NewAuctionResolvedEvent(e.ctl.ID(), o.RequesterID, o.WinnerID, o.Doorway.Center, o.Bids, e.tick))

		if o.WinnerID == e.ctl.ID() {
			if e.doorways.Get(idx).Explored {
				e.logger.Debug("doorway already entered", "tick", e.tick, "doorway", o.Doorway.Center.String())
				continue
			}
			if e.state == MovingToDoorway || e.transition(MovingToDoorway) {
				e.claim, e.hasClaim = idx, true
			}
			continue
		}
		e.doorways.MarkExplored(idx)
		if o.RequesterID == e.ctl.ID() && e.state == Auctioning {
			e.transition(ExploreRoom)
		}
	}
}
