package grid

import (
	"math"
	"testing"
)

func TestTileBearing(t *testing.T) {
	tests := []struct {
		v    Tile
		want float64
	}{
		{T(1, 0), 0},
		{T(0, 1), 90},
		{T(-1, 0), 180},
		{T(0, -1), 270},
		{T(1, 1), 45},
		{T(0, 0), 0},
	}

	for _, tt := range tests {
		if got := tt.v.Bearing(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%v.Bearing() = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{-90, 270},
		{450, 90},
		{-720, 0},
	}

	for _, tt := range tests {
		if got := NormalizeDegrees(tt.in); got != tt.want {
			t.Errorf("NormalizeDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDirectionFromDegrees(t *testing.T) {
	tests := []struct {
		deg  float64
		want Direction
	}{
		{0, East},
		{20, East},
		{23, NorthEast},
		{90, North},
		{180, West},
		{270, South},
		{350, East},
		{-45, SouthEast},
	}

	for _, tt := range tests {
		if got := DirectionFromDegrees(tt.deg); got != tt.want {
			t.Errorf("DirectionFromDegrees(%v) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}

func TestDirectionRotation(t *testing.T) {
	for _, d := range AllDirections() {
		if d.Next().Previous() != d {
			t.Errorf("%v.Next().Previous() = %v", d, d.Next().Previous())
		}
		if d.Opposite().Vector() != d.Vector().Mul(-1) {
			t.Errorf("%v.Opposite() vector = %v, want %v", d, d.Opposite().Vector(), d.Vector().Mul(-1))
		}
	}
	if PerpendicularTo(T(1, 0)) != North {
		t.Errorf("PerpendicularTo(east) = %v, want north", PerpendicularTo(T(1, 0)))
	}
}

func TestLineRasterize(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want []Tile
	}{
		{
			name: "single tile",
			line: L(T(2, 2), T(2, 2)),
			want: []Tile{T(2, 2)},
		},
		{
			name: "horizontal",
			line: L(T(-2, -3), T(2, -3)),
			want: []Tile{T(-2, -3), T(-1, -3), T(0, -3), T(1, -3), T(2, -3)},
		},
		{
			name: "reverse vertical",
			line: L(T(0, 2), T(0, 0)),
			want: []Tile{T(0, 2), T(0, 1), T(0, 0)},
		},
		{
			name: "diagonal",
			line: L(T(0, 0), T(3, 3)),
			want: []Tile{T(0, 0), T(1, 1), T(2, 2), T(3, 3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.line.Rasterize()
			if len(got) != len(tt.want) {
				t.Fatalf("Rasterize() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Rasterize()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLineComparisons(t *testing.T) {
	long := L(T(0, 0), T(6, 0))
	short := L(T(1, 0), T(4, 0))
	offAxis := L(T(1, 2), T(4, 2))

	if !long.Contains(short, 0.01) {
		t.Error("long should contain short")
	}
	if !long.StrictlyContains(short, 0.01) {
		t.Error("long should strictly contain short")
	}
	if short.StrictlyContains(long, 0.01) {
		t.Error("short should not strictly contain long")
	}
	if long.StrictlyContains(long.Reversed(), 0.01) {
		t.Error("a line should not strictly contain itself")
	}
	if long.Contains(offAxis, 0.5) {
		t.Error("parallel offset line should not be contained")
	}
	if !long.Equal(long.Reversed(), 0) {
		t.Error("Equal should ignore orientation")
	}
	if !long.Equal(L(T(0, 1), T(6, 0)), 1.0) {
		t.Error("Equal should accept endpoints within tolerance")
	}
	if long.Equal(short, 0.5) {
		t.Error("different segments should not be equal")
	}
}
