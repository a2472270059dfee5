// Package tui is an interactive terminal viewer that steps a simulation
// and shows one robot's knowledge at a time.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/minotaur/internal/scenario"
	"github.com/Iron-Ham/minotaur/internal/sim"
)

// Builder creates a fresh world for a scenario. It is used when the
// scenario file changes on disk.
type Builder func(*scenario.Scenario) (*sim.World, error)

const (
	minInterval = 10 * time.Millisecond
	maxInterval = 2 * time.Second
)

// Messages

type tickMsg time.Time

// ReloadMsg carries a reloaded scenario, or the error that prevented it.
type ReloadMsg struct {
	Scenario *scenario.Scenario
	Err      error
}

// Model holds the viewer state.
type Model struct {
	world    *sim.World
	build    Builder
	interval time.Duration

	focus    int
	paused   bool
	width    int
	height   int
	status   string
	errorMsg string

	keys keyMap
	help help.Model
}

// NewModel creates a viewer over world ticking every interval.
func NewModel(world *sim.World, build Builder, interval time.Duration) Model {
	return Model{
		world:    world,
		build:    build,
		interval: clampInterval(interval),
		keys:     defaultKeys(),
		help:     help.New(),
	}
}

// World returns the simulation being viewed.
func (m Model) World() *sim.World { return m.world }

// Focus returns the index of the robot being viewed.
func (m Model) Focus() int { return m.focus }

// Paused reports whether automatic stepping is paused.
func (m Model) Paused() bool { return m.paused }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeypress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if !m.paused && !m.world.Finished() {
			m.world.Step()
		}
		return m, m.tick()

	case ReloadMsg:
		return m.reload(msg), nil
	}
	return m, nil
}

func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	team := len(m.world.Team())
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
	case key.Matches(msg, m.keys.Step):
		m.paused = true
		m.world.Step()
	case key.Matches(msg, m.keys.Next):
		if team > 0 {
			m.focus = (m.focus + 1) % team
		}
	case key.Matches(msg, m.keys.Prev):
		if team > 0 {
			m.focus = (m.focus + team - 1) % team
		}
	case key.Matches(msg, m.keys.Faster):
		m.interval = clampInterval(m.interval / 2)
	case key.Matches(msg, m.keys.Slower):
		m.interval = clampInterval(m.interval * 2)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// reload swaps in a world built from the new scenario. A failed reload
// keeps the current world running.
func (m Model) reload(msg ReloadMsg) Model {
	if msg.Err != nil {
		m.errorMsg = "reload failed: " + msg.Err.Error()
		return m
	}
	if m.build == nil {
		return m
	}
	w, err := m.build(msg.Scenario)
	if err != nil {
		m.errorMsg = "reload failed: " + err.Error()
		return m
	}
	m.world = w
	m.focus = 0
	m.errorMsg = ""
	m.status = "reloaded " + msg.Scenario.Name
	return m
}

func clampInterval(d time.Duration) time.Duration {
	return min(max(d, minInterval), maxInterval)
}
