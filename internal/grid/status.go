package grid

// Status is the occupancy classification of a tile.
type Status uint8

const (
	// Unseen tiles have never been observed.
	Unseen Status = iota
	// Open tiles are observed free space.
	Open
	// Solid tiles are observed obstacles.
	Solid
)

func (s Status) String() string {
	switch s {
	case Unseen:
		return "unseen"
	case Open:
		return "open"
	case Solid:
		return "solid"
	default:
		return "unknown"
	}
}
