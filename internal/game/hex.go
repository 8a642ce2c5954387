package game

// Axial is a hex-grid coordinate in axial form. The implied cube
// coordinate is (q, -q-r, r).
type Axial struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// DistanceTo returns the hex distance between two axial coordinates using
// the cube-coordinate max-abs formula. Distance 0 means same tile.
func (a Axial) DistanceTo(b Axial) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	ds := -dq - dr
	return maxInt(absInt(dq), maxInt(absInt(dr), absInt(ds)))
}

// axialDirections lists the six hex neighbor offsets.
var axialDirections = [6]Axial{
	{Q: 1, R: 0}, {Q: 1, R: -1}, {Q: 0, R: -1},
	{Q: -1, R: 0}, {Q: -1, R: 1}, {Q: 0, R: 1},
}

// Neighbors returns the six adjacent axial coordinates in a fixed order.
func (a Axial) Neighbors() []Axial {
	out := make([]Axial, 0, 6)
	for _, d := range axialDirections {
		out = append(out, Axial{Q: a.Q + d.Q, R: a.R + d.R})
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
