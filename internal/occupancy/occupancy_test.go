package occupancy

import (
	"testing"

	"github.com/Iron-Ham/minotaur/internal/errors"
	"github.com/Iron-Ham/minotaur/internal/grid"
	"github.com/zyedidia/generic/mapset"
)

func TestParse(t *testing.T) {
	g := MustParse(
		"###",
		"#.?",
	)
	if g.Width() != 3 || g.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", g.Width(), g.Height())
	}
	tests := []struct {
		tile grid.Tile
		want grid.Status
	}{
		{grid.T(0, 1), grid.Solid},
		{grid.T(1, 0), grid.Open},
		{grid.T(2, 0), grid.Unseen},
		{grid.T(5, 5), grid.Solid},
	}
	for _, tt := range tests {
		if got := g.Status(tt.tile); got != tt.want {
			t.Errorf("Status(%v) = %v, want %v", tt.tile, got, tt.want)
		}
	}
	if g.String() != "###\n#.?" {
		t.Errorf("String() = %q", g.String())
	}

	if _, err := Parse([]string{"#x"}); err == nil {
		t.Error("Parse should reject unknown runes")
	}
}

func TestPath(t *testing.T) {
	g := MustParse(
		"#######",
		"#.....#",
		"#.###.#",
		"#.#...#",
		"#######",
	)

	t.Run("around obstacle", func(t *testing.T) {
		path, err := g.Path(grid.T(1, 1), grid.T(3, 1))
		if err != nil {
			t.Fatalf("Path() error = %v", err)
		}
		if path[0] != grid.T(1, 1) || path[len(path)-1] != grid.T(3, 1) {
			t.Errorf("path endpoints = %v .. %v", path[0], path[len(path)-1])
		}
		for _, step := range path {
			if g.Status(step) != grid.Open {
				t.Errorf("path enters %v tile %v", g.Status(step), step)
			}
		}
		// up the left column, across the top, down the right and back west
		if len(path) != 11 {
			t.Errorf("len(path) = %d, want 11: %v", len(path), path)
		}
	})

	t.Run("same tile", func(t *testing.T) {
		path, err := g.Path(grid.T(1, 1), grid.T(1, 1))
		if err != nil || len(path) != 1 {
			t.Errorf("Path() = %v, %v", path, err)
		}
	})

	t.Run("solid target allowed", func(t *testing.T) {
		path, err := g.Path(grid.T(1, 1), grid.T(0, 1))
		if err != nil || len(path) != 2 {
			t.Errorf("Path() = %v, %v", path, err)
		}
	})

	t.Run("out of bounds", func(t *testing.T) {
		_, err := g.Path(grid.T(1, 1), grid.T(40, 1))
		if !errors.Is(err, errors.ErrOutOfBounds) {
			t.Errorf("error = %v, want ErrOutOfBounds", err)
		}
	})
}

func TestPath_NoCornerCutting(t *testing.T) {
	g := MustParse(
		"?.",
		"..",
	)
	path, err := g.Path(grid.T(1, 1), grid.T(0, 0))
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if len(path) != 3 {
		t.Errorf("diagonal past unseen tile should be refused, got %v", path)
	}
}

func TestPath_UnseenBlocks(t *testing.T) {
	g := MustParse(".?.")
	_, err := g.Path(grid.T(0, 0), grid.T(2, 0))
	if !errors.Is(err, errors.ErrNoPath) {
		t.Errorf("error = %v, want ErrNoPath", err)
	}
}

func TestNearestFloodFill_Exclusion(t *testing.T) {
	g := MustParse(
		"#######",
		"#.....?",
		"#######",
	)

	got, ok := g.NearestFloodFill(grid.T(1, 1), grid.Unseen, mapset.New[grid.Tile]())
	if !ok || got != grid.T(6, 1) {
		t.Errorf("NearestFloodFill() = %v, %v; want (6,1), true", got, ok)
	}

	barrier := mapset.New[grid.Tile]()
	barrier.Put(grid.T(3, 1))
	if got, ok := g.NearestFloodFill(grid.T(1, 1), grid.Unseen, barrier); ok {
		t.Errorf("NearestFloodFill() crossed the barrier and found %v", got)
	}

	got, ok = g.NearestFloodFill(grid.T(5, 1), grid.Open, barrier)
	if !ok || got != grid.T(5, 1) {
		t.Errorf("NearestFloodFill(Open) = %v, %v; want start tile", got, ok)
	}
}

func TestObserve(t *testing.T) {
	truth := MustParse(
		"#######",
		"#.....#",
		"#.....#",
		"###.###",
		"#.....#",
		"#######",
	)
	known := NewGrid(truth.Width(), truth.Height())
	known.Observe(truth, grid.T(3, 4), 3)

	if known.Revision() != 1 {
		t.Errorf("Revision() = %d, want 1", known.Revision())
	}
	if known.Status(grid.T(3, 4)) != grid.Open {
		t.Error("robot tile should be observed Open")
	}
	if known.Status(grid.T(3, 5)) != grid.Solid {
		t.Error("wall north of the robot should be observed Solid")
	}
	if known.Status(grid.T(1, 1)) != grid.Unseen {
		t.Error("tiles behind the wall should remain Unseen")
	}
	if _, ok := known.Visible()[grid.T(3, 5)]; !ok {
		t.Error("visible set should include the wall")
	}
}

func TestRay(t *testing.T) {
	m := MustParse(
		"#####",
		"#...#",
		"#####",
	)
	tiles := Ray(m, grid.T(1, 1), 0, 10, grid.Solid)
	want := []grid.Tile{grid.T(2, 1), grid.T(3, 1), grid.T(4, 1)}
	if len(tiles) != len(want) {
		t.Fatalf("Ray() = %v, want %v", tiles, want)
	}
	for i := range want {
		if tiles[i] != want[i] {
			t.Errorf("Ray()[%d] = %v, want %v", i, tiles[i], want[i])
		}
	}

	if got := Furthest(m, grid.T(1, 1), 180, 10, grid.Solid); got != grid.T(0, 1) {
		t.Errorf("Furthest() = %v, want (0,1)", got)
	}
	if got := Furthest(m, grid.T(1, 1), 0, 0); got != grid.T(1, 1) {
		t.Errorf("Furthest() with no range = %v, want origin", got)
	}
}

func TestCutsCorner(t *testing.T) {
	m := MustParse(
		".....",
		".#?..",
		".....",
	)
	tests := []struct {
		name     string
		from, to grid.Tile
		want     bool
	}{
		{"straight step", grid.T(0, 1), grid.T(0, 2), false},
		{"solid on the x side", grid.T(0, 1), grid.T(1, 2), true},
		{"solid on the y side", grid.T(1, 0), grid.T(0, 1), true},
		{"unseen side only", grid.T(3, 1), grid.T(2, 2), false},
		{"clear diagonal", grid.T(3, 0), grid.T(4, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CutsCorner(m, tt.from, tt.to); got != tt.want {
				t.Errorf("CutsCorner(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
