package mailbox

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Iron-Ham/minotaur/internal/bidding"
)

// FilterOptions controls which records FilterRecords keeps.
type FilterOptions struct {
	Kinds      []bidding.Kind // Only include these kinds (empty = all)
	From       int            // Only records from this robot (when HasFrom)
	HasFrom    bool
	SinceTick  int  // Only records delivered at or after this tick
	Duplicates bool // Keep duplicate deliveries
	MaxRecords int  // Maximum records to include, most recent kept (0 = unlimited)
}

// FilterRecords applies opts to recs and returns the matching subset.
func FilterRecords(recs []Record, opts FilterOptions) []Record {
	var result []Record
	for _, r := range recs {
		if len(opts.Kinds) > 0 && !slices.Contains(opts.Kinds, r.Kind) {
			continue
		}
		if opts.HasFrom && r.From != opts.From {
			continue
		}
		if r.Tick < opts.SinceTick {
			continue
		}
		if r.Duplicate && !opts.Duplicates {
			continue
		}
		result = append(result, r)
	}

	if opts.MaxRecords > 0 && len(result) > opts.MaxRecords {
		result = result[len(result)-opts.MaxRecords:]
	}
	return result
}

// FormatTrace renders records one per line, grouped by delivery tick.
// Returns an empty string if there are no records.
func FormatTrace(recs []Record) string {
	if len(recs) == 0 {
		return ""
	}

	var b strings.Builder
	tick := -1
	for _, r := range recs {
		if r.Tick != tick {
			if tick >= 0 {
				b.WriteString("\n")
			}
			tick = r.Tick
			fmt.Fprintf(&b, "[tick %d]\n", tick)
		}
		fmt.Fprintf(&b, "  %d -> %d %s", r.From, r.To, r.Kind)
		if r.Duplicate {
			b.WriteString(" (duplicate)")
		}
		if summary := summarize(r); summary != "" {
			fmt.Fprintf(&b, ": %s", summary)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// summarize describes a record's payload. Bids are sorted by robot id for
// deterministic output.
func summarize(r Record) string {
	msg, err := r.Message()
	if err != nil {
		return ""
	}
	switch m := msg.(type) {
	case bidding.DoorwayFound:
		return fmt.Sprintf("doorway %v requested by %d", m.Doorway.Center, m.RequesterID)
	case bidding.Bidding:
		parts := make([]string, 0, len(m.Bids))
		for _, id := range slices.Sorted(maps.Keys(m.Bids)) {
			parts = append(parts, fmt.Sprintf("%d=%d", id, m.Bids[id]))
		}
		return fmt.Sprintf("doorway %v requested by %d bids %s", m.Doorway.Center, m.RequesterID, strings.Join(parts, ", "))
	}
	return ""
}
