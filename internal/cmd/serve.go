package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/minotaur/internal/config"
	"github.com/Iron-Ham/minotaur/internal/event"
	"github.com/Iron-Ham/minotaur/internal/sim"
	"github.com/Iron-Ham/minotaur/internal/stream"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a simulation and stream it over websocket",
	Long: `Run a simulation paced by simulation.tick_interval_ms and stream every
tick as JSON to websocket clients on /ws. GET /snapshot returns the latest
tick.

Envelopes have the shape {"sequence": n, "type": t, "payload": p} where t
is "snapshot", "event" or "finished".`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default: server.addr)")
	serveCmd.Flags().StringP("scenario", "s", "", "scenario file (default: built-in two rooms)")
	serveCmd.Flags().IntP("ticks", "t", 0, "tick budget (default: simulation.max_ticks)")
	serveCmd.Flags().Int64("seed", 0, "message shuffling seed (default: simulation.seed)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	simFlags(cmd, cfg)
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
	}

	sc, err := loadScenario(scenarioPath(cmd, cfg))
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	bus := event.NewBus()
	world, err := sim.New(sc, cfg, sim.WithLogger(logger), sim.WithBus(bus))
	if err != nil {
		return err
	}
	srv := stream.NewServer(world, bus, cfg.Simulation.TickInterval(), logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	go srv.Run(ctx)

	logger.Info("streaming simulation", "addr", cfg.Server.Addr, "scenario", sc.Name)
	printf(cmd, "streaming %s on ws://%s/ws\n", sc.Name, cfg.Server.Addr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
