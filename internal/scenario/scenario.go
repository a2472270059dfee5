// Package scenario loads floor plans and robot spawn points from YAML.
//
// A scenario file looks like:
//
//	name: two-rooms
//	description: two rooms joined by a single doorway
//	map:
//	  - "#########"
//	  - "#...#...#"
//	  - "#.......#"
//	  - "#########"
//	robots:
//	  - id: 1
//	    x: 1
//	    y: 1
//	    heading: 0
//
// The first map row is the top of the world. Ground truth maps may only
// contain walls ('#') and floor ('.').
package scenario

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/minotaur/internal/errors"
	"github.com/Iron-Ham/minotaur/internal/grid"
	"github.com/Iron-Ham/minotaur/internal/occupancy"
)

// Scenario is a ground truth floor plan plus the robots placed in it.
type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Map         []string `yaml:"map"`
	Robots      []Spawn  `yaml:"robots"`
}

// Spawn places one robot. Heading is in degrees, counter-clockwise from east.
type Spawn struct {
	ID      int     `yaml:"id"`
	X       int     `yaml:"x"`
	Y       int     `yaml:"y"`
	Heading float64 `yaml:"heading"`
}

// Tile returns the spawn position.
func (s Spawn) Tile() grid.Tile { return grid.T(s.X, s.Y) }

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewScenarioError("read scenario", err).WithPath(path)
	}
	s, err := Parse(data)
	if err != nil {
		var scenErr *errors.ScenarioError
		if errors.As(err, &scenErr) {
			return nil, scenErr.WithPath(path)
		}
		return nil, err
	}
	return s, nil
}

// Parse decodes and validates a scenario from YAML.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.NewScenarioError("decode yaml", errors.Join(errors.ErrInvalidScenario, err))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the floor plan and spawn points. Floor plan problems
// carry the 1-based row they were found on.
func (s *Scenario) Validate() error {
	if len(s.Map) == 0 {
		return errors.NewScenarioError("map is empty", errors.ErrInvalidScenario)
	}
	width := len([]rune(s.Map[0]))
	if width == 0 {
		return errors.NewScenarioError("map row is empty", errors.ErrInvalidScenario).WithLine(1)
	}
	for i, row := range s.Map {
		runes := []rune(row)
		if len(runes) != width {
			msg := fmt.Sprintf("row has %d tiles, want %d", len(runes), width)
			return errors.NewScenarioError(msg, errors.ErrInvalidScenario).WithLine(i + 1)
		}
		for x, c := range runes {
			if c != occupancy.RuneSolid && c != occupancy.RuneOpen {
				msg := fmt.Sprintf("unknown tile %q at column %d", c, x+1)
				return errors.NewScenarioError(msg, errors.ErrInvalidScenario).WithLine(i + 1)
			}
		}
	}

	if len(s.Robots) == 0 {
		return errors.NewScenarioError("no robots", errors.ErrNoRobots)
	}
	world, err := s.World()
	if err != nil {
		return err
	}
	seen := make(map[int]bool, len(s.Robots))
	for _, r := range s.Robots {
		if r.ID <= 0 {
			return errors.NewScenarioError(fmt.Sprintf("robot id %d must be positive", r.ID), errors.ErrInvalidScenario)
		}
		if seen[r.ID] {
			return errors.NewScenarioError(fmt.Sprintf("duplicate robot id %d", r.ID), errors.ErrInvalidScenario)
		}
		seen[r.ID] = true
		if !world.InBounds(r.Tile()) {
			return errors.NewScenarioError(fmt.Sprintf("robot %d spawns outside the map at %v", r.ID, r.Tile()), errors.ErrInvalidScenario)
		}
		if world.Status(r.Tile()) != grid.Open {
			return errors.NewScenarioError(fmt.Sprintf("robot %d spawns inside a wall at %v", r.ID, r.Tile()), errors.ErrInvalidScenario)
		}
	}
	return nil
}

// World builds the ground truth grid. Every tile is visible.
func (s *Scenario) World() (*occupancy.Grid, error) {
	g, err := occupancy.Parse(s.Map)
	if err != nil {
		return nil, errors.NewScenarioError("parse map", errors.Join(errors.ErrInvalidScenario, err))
	}
	g.RevealAll()
	return g, nil
}

// IDs returns the robot ids in ascending order.
func (s *Scenario) IDs() []int {
	ids := make([]int, len(s.Robots))
	for i, r := range s.Robots {
		ids[i] = r.ID
	}
	slices.Sort(ids)
	return ids
}

// Marshal encodes the scenario back to YAML.
func (s *Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
