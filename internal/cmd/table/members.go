package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/hemicycle"
	"github.com/agentstation/hemicycle/pkg/members"
)

// MembersToTableData lists members in seating order. wide adds the contact
// columns and the raw counts.
func MembersToTableData(profiles []*hemicycle.Profile, wide bool) Data {
	headers := []string{"Seat", "Slug", "Name", "Party", "Province", "Attendance", "Dissent"}
	if wide {
		headers = append(headers, "Email", "Phones")
		headers = append(headers, countsHeaders...)
	}
	align := []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight}
	if wide {
		align = append(align, AlignLeft, AlignLeft)
		align = append(align, repeatAlign(AlignRight, len(countsHeaders))...)
	}

	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		row := []string{
			strconv.Itoa(p.Index + 1),
			p.Slug,
			p.Record.Name,
			partyCell(p.Member),
			p.Record.Province,
			FormatPercent(p.Stats.AttendanceRate),
			FormatRate(p.Stats.DissentRate),
		}
		if wide {
			row = append(row, OrEmpty(p.Record.Email), OrEmpty(p.Record.Phones))
			row = append(row, countsColumns(p.Stats.Counts)...)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// ProfileToTableData renders one member as property/value pairs.
func ProfileToTableData(p *hemicycle.Profile) Data {
	m := p.Member
	rows := [][]string{
		{"Slug", p.Slug},
		{"Seat", strconv.Itoa(p.Index + 1)},
		{"Name", p.Record.Name},
		{"Party", partyCell(m)},
		{"Province", p.Record.Province},
		{"Email", OrEmpty(p.Record.Email)},
		{"Phones", OrEmpty(p.Record.Phones)},
		{"Address", OrEmpty(p.Record.Address)},
		{"Image", m.Image()},
		{"Attendance", FormatPercent(p.Stats.AttendanceRate)},
		{"Dissent", FormatRate(p.Stats.DissentRate)},
		{"Votes", strconv.Itoa(len(p.VoteLines))},
	}
	if len(m.Aliases) > 0 {
		rows = append(rows, []string{"Aliases", strings.Join(m.Aliases, ", ")})
	}
	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

// VoteLinesToTableData lists a member's votes in bill catalog order.
func VoteLinesToTableData(lines []members.VoteLine, wide bool) Data {
	headers := []string{"Bill", "Date", "Title", "Vote"}
	if wide {
		headers = append(headers, "Outcome", "Search")
	}
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		title := l.ShortTitle
		if wide {
			title = l.Title
		}
		row := []string{l.BillID, OrEmpty(l.Date), title, l.Vote}
		if wide {
			row = append(row, l.Outcome.Label(), l.SearchURL)
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows}
}

// RecordsToTableData is the flat export of every member.
func RecordsToTableData(profiles []*hemicycle.Profile) Data {
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, p.Record.Values())
	}
	return Data{Headers: members.RecordHeader, Rows: rows}
}

func partyCell(m *members.Member) string {
	return members.OrUnknown(m.DisplayParty())
}
