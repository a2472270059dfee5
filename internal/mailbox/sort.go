package mailbox

import (
	"cmp"
	"slices"
)

// sortRecords orders records by delivery tick, then recipient, keeping
// the write order otherwise.
func sortRecords(recs []Record) {
	slices.SortStableFunc(recs, func(a, b Record) int {
		return cmp.Or(cmp.Compare(a.Tick, b.Tick), cmp.Compare(a.To, b.To))
	})
}
