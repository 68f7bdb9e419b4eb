// Package chart draws the hemicycle in the terminal. Seats computed for a
// pixel container are projected onto a character grid, one glyph per
// member, colored by party.
package chart

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentstation/hemicycle"
	"github.com/agentstation/hemicycle/internal/cmd/table"
	"github.com/agentstation/hemicycle/pkg/layout"
	"github.com/agentstation/hemicycle/pkg/members"
	"github.com/agentstation/hemicycle/pkg/parties"
)

// DefaultCols is the grid width used when Options.Cols is zero.
const DefaultCols = 80

// MinCols is the narrowest grid that still shows the arc shape.
const MinCols = 20

// Glyphs.
const (
	SeatGlyph   = "●"
	DimmedGlyph = "·"
	emptyCell   = -1
)

// palette maps party classes to seat colors.
var palette = map[parties.Class]lipgloss.Color{
	parties.TIP:         lipgloss.Color("#B71C1C"),
	parties.DBP:         lipgloss.Color("#6A1B9A"),
	parties.EMEP:        lipgloss.Color("#C62828"),
	parties.DEM:         lipgloss.Color("#8E24AA"),
	parties.CHP:         lipgloss.Color("#E53935"),
	parties.DSP:         lipgloss.Color("#F06292"),
	parties.IYI:         lipgloss.Color("#1E88E5"),
	parties.DP:          lipgloss.Color("#6D4C41"),
	parties.DEVA:        lipgloss.Color("#0097A7"),
	parties.Gelecek:     lipgloss.Color("#00897B"),
	parties.AKP:         lipgloss.Color("#FB8C00"),
	parties.MHP:         lipgloss.Color("#AD1457"),
	parties.YeniYol:     lipgloss.Color("#43A047"),
	parties.Saadet:      lipgloss.Color("#D81B60"),
	parties.HudaPar:     lipgloss.Color("#2E7D32"),
	parties.YRP:         lipgloss.Color("#9E9D24"),
	parties.Independent: lipgloss.Color("#9E9E9E"),
}

var fallbackColor = lipgloss.Color("#BDBDBD")

// Color returns the seat color of a class.
func Color(c parties.Class) lipgloss.Color {
	if col, ok := palette[c]; ok {
		return col
	}
	return fallbackColor
}

// Options controls the drawing.
type Options struct {
	// Width is the pixel container width the seats are computed for.
	Width float64
	// Cols is the grid width in characters.
	Cols int
	// NoColor draws party initials instead of colored glyphs.
	NoColor bool
	// Highlight dims every member it does not match. The zero value
	// highlights everyone.
	Highlight members.Filter
}

// Grid is the projected chamber: Cells[row][col] holds a seating index or
// -1 for an empty cell.
type Grid struct {
	Cells    [][]int
	Geometry layout.Geometry
	// Dropped counts seats that found no free cell in their row.
	Dropped int
}

// Project places every seat of c on a cols-wide grid. Terminal cells are
// about twice as tall as they are wide, so the grid has half as many rows as
// the pixel aspect ratio suggests. A seat whose cell is taken moves to the
// nearest free cell in the same row.
func Project(c *hemicycle.Chamber, width float64, cols int) (*Grid, error) {
	if cols < MinCols {
		return nil, fmt.Errorf("chart needs at least %d columns, got %d", MinCols, cols)
	}
	g, err := layout.GeometryFor(width)
	if err != nil {
		return nil, err
	}
	seats, err := c.Seats(width)
	if err != nil {
		return nil, err
	}

	rows := int(math.Ceil(float64(cols) * g.Height() / g.Width / 2))
	rows = max(rows, 1)
	cells := make([][]int, rows)
	for r := range cells {
		cells[r] = make([]int, cols)
		for col := range cells[r] {
			cells[r][col] = emptyCell
		}
	}

	grid := &Grid{Cells: cells, Geometry: g}
	for i, s := range seats {
		row := clamp(int(math.Round(s.Y/g.Height()*float64(rows-1))), 0, rows-1)
		col := clamp(int(math.Round(s.X/g.Width*float64(cols-1))), 0, cols-1)
		if free, ok := nearestFree(cells[row], col); ok {
			cells[row][free] = i
			continue
		}
		grid.Dropped++
	}
	return grid, nil
}

func nearestFree(row []int, col int) (int, bool) {
	for d := 0; d < len(row); d++ {
		if l := col - d; l >= 0 && row[l] == emptyCell {
			return l, true
		}
		if r := col + d; r < len(row) && row[r] == emptyCell {
			return r, true
		}
	}
	return 0, false
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// Render writes the chart and its legend to w.
func Render(w io.Writer, c *hemicycle.Chamber, opts Options) error {
	if opts.Cols == 0 {
		opts.Cols = DefaultCols
	}
	grid, err := Project(c, opts.Width, opts.Cols)
	if err != nil {
		return err
	}

	r := lipgloss.NewRenderer(w)
	styles := make(map[parties.Class]lipgloss.Style)
	style := func(cl parties.Class) lipgloss.Style {
		s, ok := styles[cl]
		if !ok {
			s = r.NewStyle()
			if !opts.NoColor {
				s = s.Foreground(Color(cl))
			}
			styles[cl] = s
		}
		return s
	}

	var body strings.Builder
	for _, row := range trimEmptyRows(grid.Cells) {
		for _, idx := range row {
			if idx == emptyCell {
				body.WriteByte(' ')
				continue
			}
			m := &c.Members[idx]
			body.WriteString(style(m.Class).Render(glyph(m, opts)))
		}
		body.WriteByte('\n')
	}

	title := r.NewStyle().Bold(true).Render(
		fmt.Sprintf("%d seats, %s layout, %.0fpx", c.Len(), grid.Geometry.Class, grid.Geometry.Width))

	var legend []string
	for _, cl := range table.ChamberClasses(c) {
		n := 0
		for i := range c.Members {
			if c.Members[i].Class == cl {
				n++
			}
		}
		legend = append(legend, fmt.Sprintf("%s %s (%d)", style(cl).Render(legendGlyph(cl, opts)), parties.Label(cl), n))
	}
	if grid.Dropped > 0 {
		legend = append(legend, fmt.Sprintf("%d seats hidden; widen with --cols", grid.Dropped))
	}

	box := r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	out := lipgloss.JoinVertical(lipgloss.Left,
		title,
		box.Render(strings.TrimRight(body.String(), "\n")),
		strings.Join(legend, "\n"),
	)
	_, err = fmt.Fprintln(w, out)
	return err
}

func glyph(m *members.Member, opts Options) string {
	if !opts.Highlight.Empty() && !opts.Highlight.Matches(m) {
		return DimmedGlyph
	}
	return legendGlyph(m.Class, opts)
}

func legendGlyph(cl parties.Class, opts Options) string {
	if opts.NoColor {
		return Initial(cl)
	}
	return SeatGlyph
}

// Initial is the one-letter party mark used without colors.
func Initial(cl parties.Class) string {
	if cl == "" {
		return "?"
	}
	return strings.ToUpper(string(cl)[:1])
}

func trimEmptyRows(cells [][]int) [][]int {
	start, end := 0, len(cells)
	for start < end && isEmptyRow(cells[start]) {
		start++
	}
	for end > start && isEmptyRow(cells[end-1]) {
		end--
	}
	return cells[start:end]
}

func isEmptyRow(row []int) bool {
	for _, v := range row {
		if v != emptyCell {
			return false
		}
	}
	return true
}
