package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/minotaur/internal/errors"
	"github.com/Iron-Ham/minotaur/internal/grid"
)

const small = `name: corridor
map:
  - "#####"
  - "#...#"
  - "#####"
robots:
  - id: 1
    x: 1
    y: 1
    heading: 0
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(small))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.Name != "corridor" || len(s.Robots) != 1 {
		t.Errorf("Parse() = %+v", s)
	}
	world, err := s.World()
	if err != nil {
		t.Fatalf("World() error = %v", err)
	}
	if world.Status(grid.T(2, 1)) != grid.Open || world.Status(grid.T(2, 2)) != grid.Solid {
		t.Errorf("World() =\n%s", world)
	}
	if _, ok := world.Visible()[grid.T(2, 1)]; !ok {
		t.Error("ground truth should be fully visible")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		scenario Scenario
		want     error
		line     int
		contains string
	}{
		{
			name:     "empty map",
			scenario: Scenario{Robots: []Spawn{{ID: 1}}},
			want:     errors.ErrInvalidScenario,
			contains: "map is empty",
		},
		{
			name:     "unknown tile",
			scenario: Scenario{Map: []string{"###", "#?#", "###"}, Robots: []Spawn{{ID: 1, X: 1, Y: 1}}},
			want:     errors.ErrInvalidScenario,
			line:     2,
			contains: "column 2",
		},
		{
			name:     "ragged rows",
			scenario: Scenario{Map: []string{"###", "#.", "###"}, Robots: []Spawn{{ID: 1, X: 1, Y: 1}}},
			want:     errors.ErrInvalidScenario,
			line:     2,
		},
		{
			name:     "no robots",
			scenario: Scenario{Map: []string{"###", "#.#", "###"}},
			want:     errors.ErrNoRobots,
		},
		{
			name:     "duplicate ids",
			scenario: Scenario{Map: []string{"####", "#..#", "####"}, Robots: []Spawn{{ID: 1, X: 1, Y: 1}, {ID: 1, X: 2, Y: 1}}},
			want:     errors.ErrInvalidScenario,
			contains: "duplicate",
		},
		{
			name:     "spawn in wall",
			scenario: Scenario{Map: []string{"###", "#.#", "###"}, Robots: []Spawn{{ID: 1, X: 0, Y: 0}}},
			want:     errors.ErrInvalidScenario,
			contains: "inside a wall",
		},
		{
			name:     "spawn outside",
			scenario: Scenario{Map: []string{"###", "#.#", "###"}, Robots: []Spawn{{ID: 1, X: 9, Y: 1}}},
			want:     errors.ErrInvalidScenario,
			contains: "outside",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scenario.Validate()
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
			var scenErr *errors.ScenarioError
			if !errors.As(err, &scenErr) {
				t.Fatalf("Validate() = %T, want *ScenarioError", err)
			}
			if scenErr.Line != tt.line {
				t.Errorf("Line = %d, want %d", scenErr.Line, tt.line)
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not mention %q", err, tt.contains)
			}
		})
	}
}

func TestBuiltin(t *testing.T) {
	s := Builtin()
	if err := s.Validate(); err != nil {
		t.Fatalf("Builtin().Validate() = %v", err)
	}
	world, _ := s.World()
	if world.Width() != 24 || world.Height() != 12 {
		t.Errorf("size = %dx%d, want 24x12", world.Width(), world.Height())
	}
	for _, y := range []int{5, 6} {
		if world.Status(grid.T(11, y)) != grid.Open {
			t.Errorf("doorway tile (11,%d) should be open", y)
		}
	}
	if world.Status(grid.T(11, 3)) != grid.Solid {
		t.Error("dividing wall missing")
	}
	if ids := s.IDs(); len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("IDs() = %v", ids)
	}
}

func TestSharedRoom(t *testing.T) {
	s := SharedRoom()
	if err := s.Validate(); err != nil {
		t.Fatalf("SharedRoom().Validate() = %v", err)
	}
	world, _ := s.World()
	if world.Width() != 60 || world.Height() != 27 {
		t.Errorf("size = %dx%d, want 60x27", world.Width(), world.Height())
	}
	for y := 1; y < 26; y++ {
		want := grid.Solid
		if y == 12 || y == 13 {
			want = grid.Open
		}
		if got := world.Status(grid.T(29, y)); got != want {
			t.Errorf("(29,%d) = %v, want %v", y, got, want)
		}
	}
	for _, r := range s.Robots {
		if r.X >= 29 {
			t.Errorf("robot %d spawns at x=%d, want the west room", r.ID, r.X)
		}
	}
}

func TestNamed(t *testing.T) {
	tests := []struct {
		name   string
		wantOK bool
	}{
		{BuiltinName, true},
		{SharedRoomName, true},
		{"office.yaml", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := Named(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("Named(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if ok && s.Name != tt.name {
				t.Errorf("Named(%q).Name = %q", tt.name, s.Name)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Builtin().Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	s, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal()) error = %v", err)
	}
	if s.Name != BuiltinName || len(s.Map) != 12 {
		t.Errorf("round trip lost data: %+v", s)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "ok.yaml")
		if err := os.WriteFile(path, []byte(small), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err != nil {
			t.Errorf("Load() error = %v", err)
		}
	})

	t.Run("error carries path", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		bad := strings.Replace(small, `"#...#"`, `"#.x.#"`, 1)
		if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		var scenErr *errors.ScenarioError
		if !errors.As(err, &scenErr) || scenErr.Path != path || scenErr.Line != 2 {
			t.Errorf("Load() error = %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "nope.yaml")); err == nil {
			t.Error("Load() should fail for a missing file")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		if err := os.WriteFile(path, []byte("map: [unclosed"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); !errors.Is(err, errors.ErrInvalidScenario) {
			t.Errorf("Load() error = %v, want ErrInvalidScenario", err)
		}
	})
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.yaml")
	if err := os.WriteFile(path, []byte(small), 0o644); err != nil {
		t.Fatal(err)
	}

	type result struct {
		s   *Scenario
		err error
	}
	got := make(chan result, 4)
	w, err := NewWatcher(path, func(s *Scenario, err error) { got <- result{s, err} })
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.Start()
	defer w.Stop()

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	renamed := strings.Replace(small, "corridor", "hallway", 1)
	if err := os.WriteFile(path, []byte(renamed), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-got:
		if r.err != nil {
			t.Fatalf("reload error = %v", r.err)
		}
		if r.s.Name != "hallway" {
			t.Errorf("reloaded Name = %q, want hallway", r.s.Name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not report the change")
	}
}
