// Package render draws knowledge maps, robots and run summaries for the
// terminal.
package render

import "github.com/charmbracelet/lipgloss"

var (
	// Colors meet WCAG AA contrast on both black and dark surfaces.
	PrimaryColor = lipgloss.Color("#A78BFA") // Purple
	FloorColor   = lipgloss.Color("#4B5563") // Gray
	WallColor    = lipgloss.Color("#F9FAFB") // Light
	MutedColor   = lipgloss.Color("#9CA3AF") // Gray
	DoorColor    = lipgloss.Color("#F59E0B") // Amber
	ExploredDoor = lipgloss.Color("#10B981") // Green
	WaypointCol  = lipgloss.Color("#60A5FA") // Blue
	CollideColor = lipgloss.Color("#F87171") // Red
	BorderColor  = lipgloss.Color("#6B7280") // Gray

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	Muted = lipgloss.NewStyle().Foreground(MutedColor)

	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	wallStyle     = lipgloss.NewStyle().Foreground(WallColor)
	floorStyle    = lipgloss.NewStyle().Foreground(FloorColor)
	doorStyle     = lipgloss.NewStyle().Foreground(DoorColor).Bold(true)
	exploredStyle = lipgloss.NewStyle().Foreground(ExploredDoor)
	waypointStyle = lipgloss.NewStyle().Foreground(WaypointCol).Bold(true)
	robotStyle    = lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)
	focusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#111827")).Background(PrimaryColor).Bold(true)
	collideStyle  = lipgloss.NewStyle().Foreground(CollideColor).Bold(true)
)

// stateColors maps exploration state names to badge colors.
var stateColors = map[string]lipgloss.Color{
	"idle":                         MutedColor,
	"first_wall":                   WaypointCol,
	"explore_room":                 ExploredDoor,
	"auctioning":                   DoorColor,
	"moving_to_doorway":            PrimaryColor,
	"moving_to_nearest_unexplored": PrimaryColor,
	"done":                         MutedColor,
}

// StateBadge renders a state name in its color.
func StateBadge(state string) string {
	c, ok := stateColors[state]
	if !ok {
		c = MutedColor
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(state)
}
