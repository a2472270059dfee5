package occupancy

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/Iron-Ham/minotaur/internal/errors"
	"github.com/Iron-Ham/minotaur/internal/grid"
)

type pathNode struct {
	tile      grid.Tile
	cost      float64
	heuristic float64
	index     int
}

func (n *pathNode) total() float64 { return n.cost + n.heuristic }

// pathHeap is a min-heap of candidates ordered by total cost, then heuristic.
type pathHeap []*pathNode

func (h pathHeap) Len() int { return len(h) }
func (h pathHeap) Less(i, j int) bool {
	if math.Abs(h[i].total()-h[j].total()) < 0.01 {
		return h[i].heuristic < h[j].heuristic
	}
	return h[i].total() < h[j].total()
}
func (h pathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *pathHeap) Push(x any) {
	n := x.(*pathNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *pathHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

func octile(from, to grid.Tile) float64 {
	d := from.Sub(to).Abs()
	lo, hi := min(d.X, d.Y), max(d.X, d.Y)
	return float64(hi-lo) + float64(lo)*math.Sqrt2
}

// blocked reports whether a path may not enter t. Only observed Open tiles
// are traversable.
func (g *Grid) blocked(t grid.Tile) bool {
	return g.Status(t) != grid.Open
}

// Path returns the shortest 8-connected path between two tiles using A*
// with an octile heuristic. Diagonal steps require both adjacent orthogonal
// tiles to be free. The target itself may be any status.
func (g *Grid) Path(from, to grid.Tile) ([]grid.Tile, error) {
	if !g.InBounds(from) || !g.InBounds(to) {
		return nil, fmt.Errorf("path %v -> %v: %w", from, to, errors.ErrOutOfBounds)
	}
	if from == to {
		return []grid.Tile{from}, nil
	}

	parents := make(map[grid.Tile]grid.Tile)
	best := make(map[grid.Tile]*pathNode)
	closed := make(map[grid.Tile]bool)

	start := &pathNode{tile: from, heuristic: octile(from, to)}
	open := &pathHeap{start}
	best[from] = start

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if current.tile == to {
			return reconstruct(parents, from, to), nil
		}
		closed[current.tile] = true

		for _, dir := range grid.AllDirections() {
			next := current.tile.Add(dir.Vector())
			if !g.InBounds(next) || closed[next] {
				continue
			}
			if g.blocked(next) && next != to {
				continue
			}
			if dir.IsDiagonal() {
				if g.blocked(current.tile.Add(dir.Previous().Vector())) ||
					g.blocked(current.tile.Add(dir.Next().Vector())) {
					continue
				}
			}

			cost := current.cost + current.tile.Dist(next)
			if existing, ok := best[next]; ok {
				if existing.cost <= cost {
					continue
				}
				existing.cost = cost
				parents[next] = current.tile
				heap.Fix(open, existing.index)
				continue
			}
			node := &pathNode{tile: next, cost: cost, heuristic: octile(next, to)}
			best[next] = node
			parents[next] = current.tile
			heap.Push(open, node)
		}
	}
	return nil, fmt.Errorf("path %v -> %v: %w", from, to, errors.ErrNoPath)
}

func reconstruct(parents map[grid.Tile]grid.Tile, from, to grid.Tile) []grid.Tile {
	path := []grid.Tile{to}
	for current := to; current != from; {
		current = parents[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
