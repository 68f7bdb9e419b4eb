// Package layout computes the hemicycle seat positions for an ordered list
// of members.
//
// Seats sit on Rows concentric semicircular arcs. Every arc receives a share
// of the seats proportional to its radius, and seats are then ordered by
// angle from left (π) to right (0), inner arc first when angles coincide.
// Assigning a seating-sorted member list to that order produces contiguous
// wedge-shaped party blocks.
package layout

import (
	"math"
	"sort"

	"github.com/agentstation/hemicycle/pkg/errors"
)

// Rows is the number of concentric arcs.
const Rows = 12

// AngleEpsilon is the tolerance under which two seat angles count as equal.
const AngleEpsilon = 1e-4

// Seat is one computed seat position. X grows to the right, Y grows down,
// both in pixels relative to the container's top-left corner.
type Seat struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Angle  float64 `json:"angle" yaml:"angle"`
	Radius float64 `json:"radius" yaml:"radius"`
	Row    int     `json:"row" yaml:"row"`
}

// Geometry describes the arcs for one container width.
type Geometry struct {
	Class     WidthClass `json:"class" yaml:"class"`
	Width     float64    `json:"width" yaml:"width"`
	MinRadius float64    `json:"min_radius" yaml:"min_radius"`
	MaxRadius float64    `json:"max_radius" yaml:"max_radius"`
	Margin    float64    `json:"margin" yaml:"margin"`
	SeatSize  float64    `json:"seat_size" yaml:"seat_size"`
	CenterX   float64    `json:"center_x" yaml:"center_x"`
	CenterY   float64    `json:"center_y" yaml:"center_y"`
}

// Height is the container height needed to show every seat.
func (g Geometry) Height() float64 {
	return g.CenterY + g.SeatSize
}

// RowRadius returns the radius of arc i (0 is innermost).
func (g Geometry) RowRadius(i int) float64 {
	return g.MinRadius + float64(i)*(g.MaxRadius-g.MinRadius)/float64(Rows-1)
}

// GeometryFor returns the arc geometry for a container width.
func GeometryFor(width float64) (Geometry, error) {
	if err := validateWidth(width); err != nil {
		return Geometry{}, err
	}
	class := ClassFor(width)
	p := class.Params()
	return Geometry{
		Class:     class,
		Width:     width,
		MinRadius: p.MinRadius,
		MaxRadius: p.MaxRadius,
		Margin:    p.Margin,
		SeatSize:  p.SeatSize,
		CenterX:   width / 2,
		CenterY:   p.MaxRadius + p.Margin,
	}, nil
}

func validateWidth(width float64) error {
	if math.IsNaN(width) || math.IsInf(width, 0) || width <= 0 {
		return errors.NewValidationError("width", width, "must be a positive finite number")
	}
	return nil
}

// RowCounts splits n seats across the arcs. Each arc gets
// round(n × r / Σr); earlier arcs are capped so the running total never
// exceeds n, and the outermost arc takes whatever remains.
func RowCounts(n int, g Geometry) []int {
	counts := make([]int, Rows)
	if n <= 0 {
		return counts
	}
	total := float64(Rows) * (g.MinRadius + g.MaxRadius) / 2

	assigned := 0
	for i := 0; i < Rows-1; i++ {
		k := int(math.Round(float64(n) * g.RowRadius(i) / total))
		if assigned+k > n {
			k = n - assigned
		}
		counts[i] = k
		assigned += k
	}
	counts[Rows-1] = n - assigned
	return counts
}

// Compute returns n seats for a container of the given width, ordered left
// to right. n of zero yields an empty slice.
func Compute(n int, width float64) ([]Seat, error) {
	g, err := GeometryFor(width)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.NewValidationError("count", n, "cannot be negative")
	}
	return Seats(n, g), nil
}

// Seats generates and orders n seats for g.
func Seats(n int, g Geometry) []Seat {
	seats := make([]Seat, 0, n)
	for row, k := range RowCounts(n, g) {
		r := g.RowRadius(row)
		for s := 0; s < k; s++ {
			angle := math.Pi / 2
			if k > 1 {
				angle = math.Pi - float64(s)/float64(k-1)*math.Pi
			}
			seats = append(seats, Seat{
				X:      g.CenterX + r*math.Cos(angle),
				Y:      g.CenterY - r*math.Sin(angle),
				Angle:  angle,
				Radius: r,
				Row:    row,
			})
		}
	}

	sort.SliceStable(seats, func(i, j int) bool {
		a, b := seats[i], seats[j]
		if math.Abs(a.Angle-b.Angle) > AngleEpsilon {
			return a.Angle > b.Angle
		}
		return a.Radius < b.Radius
	})
	return seats
}
