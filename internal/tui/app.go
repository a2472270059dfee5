package tui

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/minotaur/internal/scenario"
	"github.com/Iron-Ham/minotaur/internal/sim"
)

// App wraps the Bubbletea program.
type App struct {
	program *tea.Program
	model   Model
}

// New creates a viewer application.
func New(world *sim.World, build Builder, interval time.Duration) *App {
	model := NewModel(world, build, interval)
	return &App{
		model:   model,
		program: tea.NewProgram(model, tea.WithAltScreen()),
	}
}

// Reload forwards a reloaded scenario to the running program. It is safe
// to call from a file watcher goroutine.
func (a *App) Reload(s *scenario.Scenario, err error) {
	a.program.Send(ReloadMsg{Scenario: s, Err: err})
}

// Run starts the viewer and blocks until it quits.
func (a *App) Run() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		if _, ok := <-sigChan; ok {
			a.program.Send(tea.Quit())
		}
	}()

	_, err := a.program.Run()
	signal.Stop(sigChan)
	close(sigChan)
	return err
}
