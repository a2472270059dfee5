// Package grid provides the integer tile geometry shared by every part of
// the exploration core.
//
// Coordinates are tile indices with x growing east and y growing north.
// Bearings are expressed in degrees, counter-clockwise from the +x axis and
// normalized to [0, 360).
//
// # Main Types
//
//   - [Tile]: a single map cell
//   - [Status]: occupancy classification of a tile (Unseen, Open, Solid)
//   - [Direction]: one of the eight compass directions
//   - [Line]: a segment between two tiles with tolerant comparison helpers
package grid
