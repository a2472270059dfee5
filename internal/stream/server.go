package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/Iron-Ham/minotaur/internal/event"
	"github.com/Iron-Ham/minotaur/internal/logging"
	"github.com/Iron-Ham/minotaur/internal/sim"
)

// Envelope types.
const (
	TypeSnapshot = "snapshot"
	TypeEvent    = "event"
	TypeFinished = "finished"
)

// Envelope is one message pushed to clients.
type Envelope struct {
	Sequence uint64 `json:"sequence"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

// EventPayload wraps a bus event with its type name.
type EventPayload struct {
	Type  string      `json:"type"`
	Event event.Event `json:"event"`
}

// Server steps a world and streams it.
type Server struct {
	hub      *Hub
	logger   *logging.Logger
	interval time.Duration

	mu       sync.Mutex
	world    *sim.World
	sequence uint64
	latest   []byte
}

// NewServer creates a Server for world. When bus is not nil, the events it
// carries are forwarded to clients as they happen.
func NewServer(world *sim.World, bus *event.Bus, interval time.Duration, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NopLogger()
	}
	s := &Server{
		hub:      NewHub(),
		logger:   logger,
		interval: interval,
		world:    world,
	}
	s.latest = s.encode(TypeSnapshot, world.Snapshot(true))
	if bus != nil {
		for _, t := range []string{
			event.TypeStateChanged,
			event.TypeDoorwayRegistered,
			event.TypeAuctionOpened,
			event.TypeAuctionResolved,
			event.TypeRobotDone,
		} {
			bus.Subscribe(t, s.forward)
		}
	}
	return s
}

// Hub returns the client hub.
func (s *Server) Hub() *Hub { return s.hub }

// Handler serves /ws for the stream and /snapshot for the latest tick.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleStream)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	return mux
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.logger.Warn("websocket accept failed", "error", err)
		return
	}

	s.mu.Lock()
	hello := s.latest
	s.mu.Unlock()
	ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
	err = conn.Write(ctx, websocket.MessageText, hello)
	cancel()
	if err != nil {
		_ = conn.Close(websocket.StatusInternalError, "write failed")
		return
	}
	s.hub.Add(conn)
	s.logger.Debug("stream client connected", "clients", s.hub.Len())

	// Clients only listen; reading detects the close.
	go func(c *websocket.Conn) {
		defer s.hub.Remove(c)
		defer c.Close(websocket.StatusNormalClosure, "")
		for {
			if _, _, err := c.Read(context.Background()); err != nil {
				return
			}
		}
	}(conn)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	body := s.latest
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// Step advances the world one tick and pushes the new snapshot. It reports
// whether the run continues.
func (s *Server) Step() bool {
	s.mu.Lock()
	more := s.world.Step()
	snap := s.world.Snapshot(true)
	s.latest = s.encode(TypeSnapshot, snap)
	msg := s.latest
	var done []byte
	if !more {
		done = s.encode(TypeFinished, s.world.Result())
	}
	s.mu.Unlock()

	s.hub.Broadcast(msg)
	if done != nil {
		s.hub.Broadcast(done)
	}
	return more
}

// Run steps the world at the configured interval until it finishes or
// ctx is cancelled, then keeps serving the final snapshot until ctx ends.
func (s *Server) Run(ctx context.Context) {
	interval := s.interval
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.hub.CloseAll("server shutting down")
			return
		case <-ticker.C:
			if !s.Step() {
				s.logger.Info("stream run finished, serving final snapshot")
				<-ctx.Done()
				s.hub.CloseAll("server shutting down")
				return
			}
		}
	}
}

// forward runs synchronously inside World.Step, while s.mu is held.
func (s *Server) forward(ev event.Event) {
	msg := s.encode(TypeEvent, EventPayload{Type: ev.EventType(), Event: ev})
	s.hub.Broadcast(msg)
}

// encode must be called with s.mu held or before the server is shared.
func (s *Server) encode(kind string, payload any) []byte {
	s.sequence++
	b, err := json.Marshal(Envelope{Sequence: s.sequence, Type: kind, Payload: payload})
	if err != nil {
		s.logger.Error("encode stream message", "type", kind, "error", err)
		return nil
	}
	return b
}
