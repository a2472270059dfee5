package render

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/minotaur/internal/sim"
)

// Summary renders the outcome of a run.
func Summary(res sim.Result) string {
	done := "no"
	if res.AllDone {
		done = "yes"
	}

	var lines []string
	lines = append(lines,
		Title.Render("minotaur "+res.Scenario),
		fmt.Sprintf("ticks %d  coverage %.1f%%  all done %s", res.Ticks, res.Coverage*100, done),
		Muted.Render(fmt.Sprintf("messages posted %d, delivered %d", res.MessagesPosted, res.MessagesDelivered)),
		"",
	)
	for _, r := range res.Robots {
		lines = append(lines, fmt.Sprintf("robot %d  %s  at %v  travelled %d  doorways %d",
			r.ID, StateBadge(r.State), r.Position, r.Distance, r.Doorways))
	}
	if len(res.Doorways) > 0 {
		lines = append(lines, "")
		for _, d := range res.Doorways {
			lines = append(lines, d.String())
		}
	}
	return Box.Render(strings.Join(lines, "\n"))
}
