package game

// Coord is a position on the battlefield using axial hex coordinates.
// The third cube coordinate s is derived: s = -q - r.
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (c Coord) S() int { return -c.Q - c.R }

// Distance returns the hex distance between two coordinates.
func (c Coord) Distance(o Coord) int {
	dq := absInt(c.Q - o.Q)
	dr := absInt(c.R - o.R)
	ds := absInt(c.S() - o.S())
	return (dq + dr + ds) / 2
}

// Adjacent reports whether o is exactly one hex away.
func (c Coord) Adjacent(o Coord) bool { return c.Distance(o) == 1 }

// hexNeighborDirections defines the six neighbor offsets in axial coordinates.
var hexNeighborDirections = [6]Coord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent coordinates.
func (c Coord) Neighbors() [6]Coord {
	var out [6]Coord
	for i, d := range hexNeighborDirections {
		out[i] = Coord{Q: c.Q + d.Q, R: c.R + d.R}
	}
	return out
}

// Facing is one of the eight compass directions a unit may face.
type Facing string

const (
	FacingNorth     Facing = "N"
	FacingNorthEast Facing = "NE"
	FacingEast      Facing = "E"
	FacingSouthEast Facing = "SE"
	FacingSouth     Facing = "S"
	FacingSouthWest Facing = "SW"
	FacingWest      Facing = "W"
	FacingNorthWest Facing = "NW"
)

// ValidFacing reports whether f is one of the eight compass directions.
func ValidFacing(f Facing) bool {
	switch f {
	case FacingNorth, FacingNorthEast, FacingEast, FacingSouthEast,
		FacingSouth, FacingSouthWest, FacingWest, FacingNorthWest:
		return true
	}
	return false
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
