package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hemicycle/pkg/analytics"
	"github.com/agentstation/hemicycle/pkg/ballots"
	"github.com/agentstation/hemicycle/pkg/datasets"
	"github.com/agentstation/hemicycle/pkg/members"
	"github.com/agentstation/hemicycle/pkg/parties"
)

func catalog(ids ...string) *datasets.Voting {
	bills := make([]datasets.Bill, len(ids))
	for i, id := range ids {
		bills[i] = datasets.Bill{ID: id, Title: "Bill " + id}
	}
	return datasets.NewVoting(nil, bills, "")
}

func member(name string, class parties.Class, votes map[string]string) members.Member {
	return members.Member{Name: name, Class: class, Votes: votes}
}

func intPtr(v int) *int { return &v }

func TestTallyMajority(t *testing.T) {
	tests := []struct {
		name  string
		tally analytics.Tally
		want  ballots.Outcome
		ok    bool
	}{
		{"empty", analytics.Tally{}, ballots.Absent, false},
		{"absent only", analytics.Tally{ballots.Absent: 4}, ballots.Absent, false},
		{"clear reject", analytics.Tally{ballots.Accept: 1, ballots.Reject: 3}, ballots.Reject, true},
		{"accept beats reject on tie", analytics.Tally{ballots.Accept: 2, ballots.Reject: 2}, ballots.Accept, true},
		{"reject beats abstain on tie", analytics.Tally{ballots.Reject: 2, ballots.Abstain: 2}, ballots.Reject, true},
		{"three way tie", analytics.Tally{ballots.Accept: 1, ballots.Reject: 1, ballots.Abstain: 1}, ballots.Accept, true},
		{"abstain majority", analytics.Tally{ballots.Abstain: 3, ballots.Accept: 1}, ballots.Abstain, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.tally.Majority()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMajorities(t *testing.T) {
	voting := catalog("b1", "b2")
	ms := []members.Member{
		member("A1", parties.CHP, map[string]string{"b1": "Kabul", "b2": "Katılmadı", "x": "Kabul"}),
		member("A2", parties.CHP, map[string]string{"b1": "Kabul"}),
		member("A3", parties.CHP, map[string]string{"b1": "Ret"}),
		member("B1", parties.AKP, map[string]string{"b1": "Ret", "b2": "Ret"}),
		member("B2", parties.AKP, map[string]string{"b1": "Kabul", "b2": ""}),
	}

	table := analytics.Majorities(ms, voting)

	assert.Equal(t, analytics.MajorityTable{
		"b1": {parties.CHP: ballots.Accept, parties.AKP: ballots.Accept},
		"b2": {parties.AKP: ballots.Reject},
	}, table)

	_, ok := table.Get("b2", parties.CHP)
	assert.False(t, ok, "party with only absent votes has no majority")
	_, ok = table.Get("x", parties.CHP)
	assert.False(t, ok, "bills outside the catalog are ignored")

	assert.Empty(t, analytics.Majorities(ms, nil))
}

func TestForMember(t *testing.T) {
	voting := catalog("b1", "b2", "b3", "b4")
	ms := []members.Member{
		member("Loyal", parties.CHP, map[string]string{"b1": "Kabul", "b2": "Ret", "b3": "Kabul"}),
		member("Rebel", parties.CHP, map[string]string{"b1": "Ret", "b2": "Ret", "b3": "Kabul", "b4": "Katılmadı"}),
		member("Other", parties.CHP, map[string]string{"b1": "Kabul", "b3": "Kabul"}),
		member("Solo", parties.Independent, map[string]string{"b1": "Ret", "b2": "Katılmadı"}),
		member("Ghost", parties.MHP, map[string]string{}),
		member("Orphan", parties.MHP, map[string]string{"zz": "Kabul"}),
	}
	table := analytics.Majorities(ms, voting)

	stats := analytics.ForMembers(ms, voting, table)
	require.Len(t, stats, len(ms))

	loyal := stats[0]
	assert.Equal(t, analytics.Counts{Recorded: 3, Present: 3, Comparable: 3, Dissents: 0}, loyal.Counts)
	assert.Equal(t, 100, loyal.AttendanceRate)
	assert.Equal(t, intPtr(0), loyal.DissentRate)

	rebel := stats[1]
	assert.Equal(t, analytics.Counts{Recorded: 4, Present: 3, Comparable: 3, Dissents: 1}, rebel.Counts)
	assert.Equal(t, 75, rebel.AttendanceRate)
	assert.Equal(t, intPtr(33), rebel.DissentRate)

	solo := stats[3]
	assert.Equal(t, 50, solo.AttendanceRate)
	assert.False(t, solo.HasDissentRate(), "independents have no dissent rate")

	ghost := stats[4]
	assert.Equal(t, 0, ghost.AttendanceRate)
	assert.Nil(t, ghost.DissentRate)

	orphan := stats[5]
	assert.Equal(t, analytics.Counts{}, orphan.Counts)
	assert.Nil(t, orphan.DissentRate)
}

func TestDissentIsBoundedAndUndefinedWithoutMajority(t *testing.T) {
	voting := catalog("b1")
	m := member("Only", parties.DEVA, map[string]string{"b1": "Katılmadı"})
	table := analytics.Majorities([]members.Member{m}, voting)

	s := analytics.ForMember(&m, voting, table)
	assert.Equal(t, 0, s.AttendanceRate)
	assert.Nil(t, s.DissentRate)
}

func TestForParties(t *testing.T) {
	voting := catalog("b1", "b2")
	ms := []members.Member{
		member("C1", parties.CHP, map[string]string{"b1": "Kabul", "b2": "Kabul"}),
		member("C2", parties.CHP, map[string]string{"b1": "Ret", "b2": "Kabul"}),
		member("C3", parties.CHP, map[string]string{"b1": "Kabul", "b2": "Katılmadı"}),
		member("A1", parties.AKP, map[string]string{"b1": "Ret", "b2": "Ret"}),
		member("T1", parties.TIP, map[string]string{"b1": "Kabul"}),
		member("I1", parties.Independent, map[string]string{"b1": "Kabul"}),
		member("M1", parties.MHP, map[string]string{}),
	}
	table := analytics.Majorities(ms, voting)
	got := analytics.ForParties(ms, voting, table)

	order := make([]parties.Class, len(got))
	for i, ps := range got {
		order[i] = ps.Class
	}
	assert.Equal(t, []parties.Class{parties.CHP, parties.TIP, parties.AKP, parties.MHP, parties.Independent}, order)

	chp := got[0]
	assert.Equal(t, 3, chp.Members)
	assert.Equal(t, analytics.Counts{Recorded: 6, Present: 5, Comparable: 5, Dissents: 1}, chp.Counts)
	assert.Equal(t, 83, chp.AttendanceRate)
	assert.Equal(t, intPtr(20), chp.DissentRate)
	assert.Equal(t, "Cumhuriyet Halk Partisi", chp.Label)

	assert.Equal(t, intPtr(0), got[1].DissentRate)
	assert.Nil(t, got[3].DissentRate)
	assert.Nil(t, got[4].DissentRate)
	assert.Equal(t, 100, got[4].AttendanceRate)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, analytics.Percent(3, 0))
	assert.Equal(t, 67, analytics.Percent(2, 3))
	assert.Equal(t, 50, analytics.Percent(1, 2))
	assert.Equal(t, 100, analytics.Percent(7, 7))
}
