package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/minotaur/internal/render"
)

const sidebarWidth = 44

var (
	focusedRow = lipgloss.NewStyle().Foreground(render.PrimaryColor).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(render.CollideColor)
)

// View renders the viewer.
func (m Model) View() string {
	w := m.world
	team := w.Team()

	state := "running"
	switch {
	case w.Finished():
		state = "finished"
	case m.paused:
		state = "paused"
	}
	header := fmt.Sprintf("%s  %s  tick %d  coverage %.1f%%  %s",
		render.Title.Render("minotaur"),
		w.Scenario().Name,
		w.Tick(),
		w.Coverage()*100,
		render.Muted.Render(state),
	)

	var mapView string
	if len(team) > 0 {
		focused := team[m.focus]
		mapView = render.Box.Render(render.Map(focused.Robot.Known(), render.Focus(team, m.focus), false))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, mapView, " ", m.sidebar())

	var lines []string
	lines = append(lines, header, body)
	if m.errorMsg != "" {
		lines = append(lines, errorStyle.Render(m.truncate(m.errorMsg)))
	} else if m.status != "" {
		lines = append(lines, render.Muted.Render(m.truncate(m.status)))
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

// sidebar lists every robot, the focused one highlighted, followed by the
// focused robot's debug line.
func (m Model) sidebar() string {
	team := m.world.Team()
	var rows []string
	for i, member := range team {
		e := member.Explorer
		row := fmt.Sprintf("robot %d  %s  %v", e.ID(), render.StateBadge(e.State().String()), member.Robot.Position())
		if i == m.focus {
			row = focusedRow.Render("> ") + row
		} else {
			row = "  " + row
		}
		rows = append(rows, ansi.Truncate(row, sidebarWidth, "..."))
	}
	if len(team) > 0 {
		rows = append(rows, "")
		for _, part := range strings.Fields(team[m.focus].Explorer.DebugInfo()) {
			rows = append(rows, ansi.Truncate(render.Muted.Render(part), sidebarWidth, "..."))
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) truncate(s string) string {
	if m.width <= 0 {
		return s
	}
	return ansi.Truncate(s, m.width, "...")
}
