package bidding

import (
	"maps"
	"slices"

	"github.com/Iron-Ham/minotaur/internal/doorway"
)

// Resolve returns the robot with the shortest path. Equal paths go to the
// lowest robot id. It reports false for an empty bid set.
func Resolve(bids map[int]int) (int, bool) {
	if len(bids) == 0 {
		return 0, false
	}
	ids := slices.Sorted(maps.Keys(bids))
	winner := ids[0]
	for _, id := range ids[1:] {
		if bids[id] < bids[winner] {
			winner = id
		}
	}
	return winner, true
}

// Auction collects bids for one (requester, doorway) pair.
type Auction struct {
	RequesterID int
	Doorway     doorway.Doorway
	Bids        map[int]int
	Deadline    int
}

// Outcome is a resolved auction.
type Outcome struct {
	RequesterID int
	Doorway     doorway.Doorway
	WinnerID    int
	Bids        map[int]int
	TimedOut    bool
}

// Ledger tracks the auctions a robot takes part in.
type Ledger struct {
	auctions []*Auction
	eps      float64
	teamSize int
	timeout  int
}

// NewLedger creates a ledger. An auction resolves once teamSize bids are
// in or timeout ticks have passed since it opened.
func NewLedger(teamSize, timeout int, eps float64) *Ledger {
	return &Ledger{teamSize: teamSize, timeout: timeout, eps: eps}
}

func (l *Ledger) find(requester int, d doorway.Doorway) *Auction {
	for _, a := range l.auctions {
		if a.RequesterID == requester && a.Doorway.Equal(d, l.eps) {
			return a
		}
	}
	return nil
}

// Open starts tracking an auction and records bid for bidder. Opening an
// auction that is already tracked only adds the bid.
func (l *Ledger) Open(requester int, d doorway.Doorway, bidder, bid, tick int) *Auction {
	a := l.find(requester, d)
	if a == nil {
		a = &Auction{
			RequesterID: requester,
			Doorway:     d.Clone(),
			Bids:        make(map[int]int),
			Deadline:    tick + l.timeout,
		}
		l.auctions = append(l.auctions, a)
	}
	if _, ok := a.Bids[bidder]; !ok {
		a.Bids[bidder] = bid
	}
	return a
}

// Add merges a Bidding message into its auction. Messages for auctions
// this robot does not track are ignored and Add reports false.
func (l *Ledger) Add(m Bidding) bool {
	a := l.find(m.RequesterID, m.Doorway)
	if a == nil {
		return false
	}
	merged, _ := Combine(Bidding{RequesterID: a.RequesterID, Bids: a.Bids, Doorway: a.Doorway}, m, l.eps)
	a.Bids = merged.(Bidding).Bids
	return true
}

// Pending returns the number of open auctions.
func (l *Ledger) Pending() int { return len(l.auctions) }

// Tracks reports whether an auction for the pair is open.
func (l *Ledger) Tracks(requester int, d doorway.Doorway) bool {
	return l.find(requester, d) != nil
}

// Due resolves and removes every auction that is complete or past its
// deadline at tick. Outcomes are ordered by requester.
func (l *Ledger) Due(tick int) []Outcome {
	var out []Outcome
	kept := l.auctions[:0]
	for _, a := range l.auctions {
		complete := len(a.Bids) >= l.teamSize
		expired := tick >= a.Deadline
		if !complete && !expired {
			kept = append(kept, a)
			continue
		}
		winner, ok := Resolve(a.Bids)
		if !ok {
			continue
		}
		out = append(out, Outcome{
			RequesterID: a.RequesterID,
			Doorway:     a.Doorway,
			WinnerID:    winner,
			Bids:        a.Bids,
			TimedOut:    !complete,
		})
	}
	clear(l.auctions[len(kept):])
	l.auctions = kept
	slices.SortStableFunc(out, func(a, b Outcome) int { return a.RequesterID - b.RequesterID })
	return out
}
