package table

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hemicycle"
	"github.com/agentstation/hemicycle/pkg/members"
	"github.com/agentstation/hemicycle/pkg/parties"
)

func loadChamber(t *testing.T) *hemicycle.Chamber {
	t.Helper()
	dir := filepath.Join("..", "..", "..", "testdata")
	c, err := hemicycle.Load(context.Background(),
		hemicycle.WithVotingSource(filepath.Join(dir, "data.json")),
		hemicycle.WithContactsSource(filepath.Join(dir, "contacts.json")),
	)
	require.NoError(t, err)
	return c
}

func allProfiles(c *hemicycle.Chamber) []*hemicycle.Profile {
	return c.Profiles(c.Filter(members.Filter{}))
}

func column(d Data, name string) []string {
	idx := -1
	for i, h := range d.Headers {
		if h == name {
			idx = i
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]string, 0, len(d.Rows))
	for _, r := range d.Rows {
		out = append(out, r[idx])
	}
	return out
}

func TestFormatHelpers(t *testing.T) {
	fifty := 50
	assert.Equal(t, "50%", FormatRate(&fifty))
	assert.Equal(t, Empty, FormatRate(nil))
	assert.Equal(t, "12.3", FormatCoord(12.345))
	assert.Equal(t, Empty, OrEmpty(""))
	assert.Equal(t, "x", OrEmpty("x"))
}

func TestMembersToTableData(t *testing.T) {
	c := loadChamber(t)
	d := MembersToTableData(allProfiles(c), false)

	assert.Len(t, d.Headers, 7)
	assert.Len(t, d.ColumnAlignment, len(d.Headers))
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, column(d, "Seat"))
	assert.Equal(t, c.Slugs, column(d, "Slug"))
	assert.Equal(t, []string{"Fatma DEMİR", "Mehmet KAYA", "Ayşe YILMAZ", "Hasan ÇELİK", "Ali VELİ"}, column(d, "Name"))
	assert.Equal(t, []string{"0%", "50%", "0%", "0%", Empty}, column(d, "Dissent"))

	wide := MembersToTableData(allProfiles(c), true)
	assert.Len(t, wide.Headers, 13)
	assert.Len(t, wide.ColumnAlignment, len(wide.Headers))
	assert.Equal(t, "(312) 420 51 01, (312) 420 51 02", column(wide, "Phones")[2])
	assert.Equal(t, Empty, column(wide, "Email")[0])
	for _, row := range wide.Rows {
		assert.Len(t, row, len(wide.Headers))
	}
}

func TestProfileAndVoteLines(t *testing.T) {
	c := loadChamber(t)
	p, err := c.Profile("mehmet-kaya")
	require.NoError(t, err)

	d := ProfileToTableData(p)
	props := map[string]string{}
	for _, r := range d.Rows {
		props[r[0]] = r[1]
	}
	assert.Equal(t, "2", props["Seat"])
	assert.Equal(t, "mehmet.kaya@tbmm.gov.tr", props["Email"])
	assert.Equal(t, "100%", props["Attendance"])
	assert.Equal(t, "50%", props["Dissent"])
	assert.Equal(t, "2", props["Votes"])

	lines := VoteLinesToTableData(p.VoteLines, false)
	assert.Equal(t, []string{"2024-101", "2024-102"}, column(lines, "Bill"))
	assert.Equal(t, []string{"Ret", "Ret"}, column(lines, "Vote"))

	wide := VoteLinesToTableData(p.VoteLines, true)
	assert.Equal(t, []string{"Ret", "Ret"}, column(wide, "Outcome"))
	assert.Contains(t, column(wide, "Search")[0], "q=")
}

func TestPartiesToTableData(t *testing.T) {
	c := loadChamber(t)
	d := PartiesToTableData(c.PartyStats, false)

	assert.Equal(t, []string{"chp", "akp", "mhp", "bagimsiz"}, column(d, "Class"))
	assert.Equal(t, []string{"2", "1", "1", "1"}, column(d, "Members"))
	assert.Equal(t, []string{"25%", "0%", "0%", Empty}, column(d, "Dissent"))

	wide := PartiesToTableData(c.PartyStats, true)
	assert.Equal(t, []string{"4", "2", "2", "1"}, column(wide, "Recorded"))
}

func TestSeatsToTableData(t *testing.T) {
	c := loadChamber(t)
	seats, err := c.Seats(1000)
	require.NoError(t, err)

	d := SeatsToTableData(c, seats, true)
	require.Len(t, d.Rows, 5)
	assert.Equal(t, c.Slugs, column(d, "Slug"))
	assert.Equal(t, "chp", column(d, "Party")[0])
	assert.Len(t, d.Headers, 8)
}

func TestMajoritiesToTableData(t *testing.T) {
	c := loadChamber(t)

	assert.Equal(t, []parties.Class{parties.CHP, parties.AKP, parties.MHP, parties.Independent}, ChamberClasses(c))

	d := MajoritiesToTableData(c, false)
	assert.Equal(t, []string{"Bill", "Cumhuriyet Halk Partisi", "AK Parti", "Milliyetçi Hareket Partisi", "Bağımsız"}, d.Headers)
	require.Len(t, d.Rows, 2)
	assert.Equal(t, []string{"2024-101", "Kabul", "Kabul", "Kabul", "Kabul"}, d.Rows[0])
	assert.Equal(t, []string{"2024-102", "Ret", "Ret", Empty, Empty}, d.Rows[1])

	row, err := c.Majority("2024-102")
	require.NoError(t, err)
	single := MajorityToTableData(c, row)
	assert.Equal(t, []string{"Ret", "Ret", Empty, Empty}, column(single, "Majority"))
}

func TestRecordsToTableData(t *testing.T) {
	c := loadChamber(t)
	d := RecordsToTableData(allProfiles(c))
	assert.Equal(t, members.RecordHeader, d.Headers)
	require.Len(t, d.Rows, 5)
	assert.Equal(t, "Ayşe YILMAZ", d.Rows[2][0])
	assert.Equal(t, "AK Parti", d.Rows[2][1])
}
