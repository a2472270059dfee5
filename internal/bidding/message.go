// Package bidding implements the doorway-claim auction robots run over
// broadcast messages.
//
// A robot that finds a doorway broadcasts [DoorwayFound]. Every robot in
// the same room answers with a [Bidding] carrying its path length to the
// doorway. Bids for the same (requester, doorway) pair merge with
// [Combine], and [Resolve] picks the shortest path, lowest robot id first.
package bidding

import (
	"maps"

	"github.com/Iron-Ham/minotaur/internal/doorway"
)

// Kind names a message variant.
type Kind string

const (
	KindDoorwayFound Kind = "doorway_found"
	KindBidding      Kind = "bidding"
)

// Message is a coordination message. The set of variants is closed:
// DoorwayFound and Bidding.
type Message interface {
	Kind() Kind
	// Requester is the robot that found the doorway.
	Requester() int
	// Door is the doorway the message is about.
	Door() doorway.Doorway
	// Clone returns a deep copy for delivery to another robot.
	Clone() Message

	sealed()
}

// DoorwayFound announces a newly finalized doorway.
type DoorwayFound struct {
	Doorway     doorway.Doorway `json:"doorway"`
	RequesterID int             `json:"requester_id"`
}

func (m DoorwayFound) Kind() Kind            { return KindDoorwayFound }
func (m DoorwayFound) Requester() int        { return m.RequesterID }
func (m DoorwayFound) Door() doorway.Doorway { return m.Doorway }
func (m DoorwayFound) Clone() Message        { m.Doorway = m.Doorway.Clone(); return m }
func (DoorwayFound) sealed()                 {}

// Bidding carries path lengths to a doorway keyed by robot id.
type Bidding struct {
	RequesterID int             `json:"requester_id"`
	Bids        map[int]int     `json:"bids"`
	Doorway     doorway.Doorway `json:"doorway"`
}

func (m Bidding) Kind() Kind            { return KindBidding }
func (m Bidding) Requester() int        { return m.RequesterID }
func (m Bidding) Door() doorway.Doorway { return m.Doorway }
func (m Bidding) Clone() Message {
	m.Bids = maps.Clone(m.Bids)
	m.Doorway = m.Doorway.Clone()
	return m
}
func (Bidding) sealed() {}

// SameSubject reports whether two messages concern the same requester and
// the same doorway within eps.
func SameSubject(a, b Message, eps float64) bool {
	return a.Requester() == b.Requester() && a.Door().Equal(b.Door(), eps)
}

// Combine merges b into a. Two Bidding messages with the same subject merge
// into a new message holding the union of their bids; on a key collision
// a's value is kept. Two DoorwayFound messages with the same subject
// collapse into a. Any other pair is a no-op that returns a unchanged and
// false. Neither input is modified.
func Combine(a, b Message, eps float64) (Message, bool) {
	if a.Kind() != b.Kind() || !SameSubject(a, b, eps) {
		return a, false
	}
	switch x := a.(type) {
	case Bidding:
		y := b.(Bidding)
		bids := make(map[int]int, len(x.Bids)+len(y.Bids))
		maps.Copy(bids, y.Bids)
		maps.Copy(bids, x.Bids)
		x.Bids = bids
		return x, true
	case DoorwayFound:
		return x, true
	}
	return a, false
}
