// Package table converts chamber data into rows for table and CSV output.
package table

import (
	"fmt"
	"strconv"

	"github.com/agentstation/hemicycle/pkg/analytics"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// Empty is the placeholder for a missing value.
const Empty = "-"

// FormatRate renders a percentage, or Empty when undefined.
func FormatRate(rate *int) string {
	if rate == nil {
		return Empty
	}
	return FormatPercent(*rate)
}

// FormatPercent renders n as "n%".
func FormatPercent(n int) string {
	return strconv.Itoa(n) + "%"
}

// FormatCoord renders a pixel coordinate with one decimal.
func FormatCoord(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// OrEmpty returns s, or Empty when s is blank.
func OrEmpty(s string) string {
	if s == "" {
		return Empty
	}
	return s
}

// countsColumns renders the raw counts behind the rates.
func countsColumns(c analytics.Counts) []string {
	return []string{
		strconv.Itoa(c.Recorded),
		strconv.Itoa(c.Present),
		strconv.Itoa(c.Comparable),
		strconv.Itoa(c.Dissents),
	}
}

var countsHeaders = []string{"Recorded", "Present", "Comparable", "Dissents"}

func repeatAlign(a Align, n int) []Align {
	out := make([]Align, n)
	for i := range out {
		out[i] = a
	}
	return out
}
