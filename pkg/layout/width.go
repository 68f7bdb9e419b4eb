package layout

// WidthClass buckets container widths into the three supported geometries.
type WidthClass string

// Width classes.
const (
	Small  WidthClass = "small"
	Medium WidthClass = "medium"
	Large  WidthClass = "large"
)

// Breakpoints in pixels. A width below SmallBreakpoint is Small, below
// MediumBreakpoint is Medium, anything else Large.
const (
	SmallBreakpoint  = 480
	MediumBreakpoint = 800
)

// Params are the arc bounds and seat glyph size of a width class.
type Params struct {
	MinRadius float64
	MaxRadius float64
	Margin    float64
	SeatSize  float64
}

var params = map[WidthClass]Params{
	Small:  {MinRadius: 50, MaxRadius: 190, Margin: 20, SeatSize: 6},
	Medium: {MinRadius: 75, MaxRadius: 285, Margin: 30, SeatSize: 9},
	Large:  {MinRadius: 100, MaxRadius: 380, Margin: 40, SeatSize: 12},
}

// ClassFor returns the width class of a container width.
func ClassFor(width float64) WidthClass {
	switch {
	case width < SmallBreakpoint:
		return Small
	case width < MediumBreakpoint:
		return Medium
	default:
		return Large
	}
}

// Params returns the geometry parameters of c. Unknown classes get Large.
func (c WidthClass) Params() Params {
	if p, ok := params[c]; ok {
		return p
	}
	return params[Large]
}
