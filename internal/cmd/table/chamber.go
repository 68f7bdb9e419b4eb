package table

import (
	"strconv"

	"github.com/agentstation/hemicycle"
	"github.com/agentstation/hemicycle/pkg/analytics"
	"github.com/agentstation/hemicycle/pkg/ballots"
	"github.com/agentstation/hemicycle/pkg/layout"
	"github.com/agentstation/hemicycle/pkg/parties"
)

// PartiesToTableData lists party statistics in the order given (highest
// dissent first, as computed).
func PartiesToTableData(stats []analytics.PartyStats, wide bool) Data {
	headers := []string{"Party", "Class", "Members", "Attendance", "Dissent"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight}
	if wide {
		headers = append(headers, countsHeaders...)
		align = append(align, repeatAlign(AlignRight, len(countsHeaders))...)
	}

	rows := make([][]string, 0, len(stats))
	for _, ps := range stats {
		row := []string{
			ps.Label,
			string(ps.Class),
			strconv.Itoa(ps.Members),
			FormatPercent(ps.AttendanceRate),
			FormatRate(ps.DissentRate),
		}
		if wide {
			row = append(row, countsColumns(ps.Counts)...)
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// SeatsToTableData lists seat positions next to their members.
func SeatsToTableData(c *hemicycle.Chamber, seats []layout.Seat, wide bool) Data {
	headers := []string{"Seat", "Slug", "Party", "Row", "X", "Y"}
	if wide {
		headers = append(headers, "Angle", "Radius")
	}
	rows := make([][]string, 0, len(seats))
	for i, s := range seats {
		row := []string{
			strconv.Itoa(i + 1),
			c.Slugs[i],
			string(c.Members[i].Class),
			strconv.Itoa(s.Row + 1),
			FormatCoord(s.X),
			FormatCoord(s.Y),
		}
		if wide {
			row = append(row, strconv.FormatFloat(s.Angle, 'f', 4, 64), FormatCoord(s.Radius))
		}
		rows = append(rows, row)
	}
	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: repeatAlign(AlignRight, len(headers)),
	}
}

// MajoritiesToTableData renders one row per catalog bill and one column per
// party class of the chamber, in seating order. Cells without a majority
// are Empty.
func MajoritiesToTableData(c *hemicycle.Chamber, wide bool) Data {
	classes := ChamberClasses(c)
	headers := []string{"Bill"}
	if wide {
		headers = append(headers, "Title")
	}
	for _, cl := range classes {
		headers = append(headers, parties.Label(cl))
	}

	bills := c.Bills()
	rows := make([][]string, 0, len(bills))
	for _, b := range bills {
		row := []string{b.ID}
		if wide {
			row = append(row, b.Title)
		}
		for _, cl := range classes {
			o, ok := c.Majorities.Get(b.ID, cl)
			row = append(row, outcomeCell(o, ok))
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows}
}

// MajorityToTableData renders the party majorities of a single bill.
func MajorityToTableData(c *hemicycle.Chamber, row map[parties.Class]ballots.Outcome) Data {
	classes := ChamberClasses(c)
	rows := make([][]string, 0, len(classes))
	for _, cl := range classes {
		o, ok := row[cl]
		rows = append(rows, []string{parties.Label(cl), outcomeCell(o, ok)})
	}
	return Data{Headers: []string{"Party", "Majority"}, Rows: rows}
}

// ChamberClasses returns the classes that have at least one member, in
// seating order.
func ChamberClasses(c *hemicycle.Chamber) []parties.Class {
	seen := make(map[parties.Class]bool)
	var out []parties.Class
	for i := range c.Members {
		cl := c.Members[i].Class
		if !seen[cl] {
			seen[cl] = true
			out = append(out, cl)
		}
	}
	return out
}

func outcomeCell(o ballots.Outcome, ok bool) string {
	if !ok {
		return Empty
	}
	return o.Label()
}
