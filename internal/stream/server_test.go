package stream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/Iron-Ham/minotaur/internal/config"
	"github.com/Iron-Ham/minotaur/internal/event"
	"github.com/Iron-Ham/minotaur/internal/scenario"
	"github.com/Iron-Ham/minotaur/internal/sim"
)

type decoded struct {
	Sequence uint64          `json:"sequence"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
}

func newTestServer(t *testing.T, maxTicks int) (*Server, *httptest.Server) {
	t.Helper()
	cfg := config.Default()
	cfg.Simulation.MaxTicks = maxTicks
	bus := event.NewBus()
	w, err := sim.New(scenario.Builtin(), cfg, sim.WithBus(bus))
	if err != nil {
		t.Fatalf("sim.New() error = %v", err)
	}
	s := NewServer(w, bus, 0, nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) decoded {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	var env decoded
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return env
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Len() != n {
		if time.Now().After(deadline) {
			t.Fatalf("hub has %d clients, want %d", h.Len(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStream_HelloAndTicks(t *testing.T) {
	s, ts := newTestServer(t, 100)
	conn := dial(t, ts)

	hello := read(t, conn)
	if hello.Type != TypeSnapshot {
		t.Fatalf("hello type = %q, want snapshot", hello.Type)
	}
	var snap sim.Snapshot
	if err := json.Unmarshal(hello.Payload, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Tick != 0 || len(snap.Robots) != 2 || len(snap.Robots[0].Map) != 12 {
		t.Errorf("hello snapshot = %+v", snap)
	}

	waitForClients(t, s.Hub(), 1)
	if !s.Step() {
		t.Fatal("Step() ended the run early")
	}

	// the first tick changes both robots' state before the snapshot goes out
	var events int
	for {
		env := read(t, conn)
		if env.Sequence <= hello.Sequence {
			t.Errorf("sequence %d not after hello %d", env.Sequence, hello.Sequence)
		}
		if env.Type == TypeEvent {
			events++
			continue
		}
		if env.Type != TypeSnapshot {
			t.Fatalf("unexpected envelope %q", env.Type)
		}
		if err := json.Unmarshal(env.Payload, &snap); err != nil {
			t.Fatal(err)
		}
		break
	}
	if snap.Tick != 1 || events != 2 {
		t.Errorf("tick = %d with %d events, want 1 with 2 state changes", snap.Tick, events)
	}
}

func TestStream_Finished(t *testing.T) {
	s, ts := newTestServer(t, 1)
	conn := dial(t, ts)
	read(t, conn)
	waitForClients(t, s.Hub(), 1)

	if s.Step() {
		t.Fatal("Step() should end a one tick run")
	}
	for {
		env := read(t, conn)
		if env.Type == TypeFinished {
			var res sim.Result
			if err := json.Unmarshal(env.Payload, &res); err != nil {
				t.Fatal(err)
			}
			if res.Ticks != 1 {
				t.Errorf("Ticks = %d, want 1", res.Ticks)
			}
			return
		}
	}
}

func TestSnapshotEndpoint(t *testing.T) {
	s, ts := newTestServer(t, 100)
	s.Step()

	resp, err := http.Get(ts.URL + "/snapshot")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	var env decoded
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	var snap sim.Snapshot
	if err := json.Unmarshal(env.Payload, &snap); err != nil {
		t.Fatal(err)
	}
	if env.Type != TypeSnapshot || snap.Tick != 1 {
		t.Errorf("GET /snapshot = %s", body)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t, 1000000)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
