package analytics

import (
	"math"
	"sort"

	"github.com/agentstation/hemicycle/pkg/ballots"
	"github.com/agentstation/hemicycle/pkg/datasets"
	"github.com/agentstation/hemicycle/pkg/members"
	"github.com/agentstation/hemicycle/pkg/parties"
)

// Counts are the raw numbers behind attendance and dissent.
type Counts struct {
	// Recorded is the number of vote entries on catalog bills.
	Recorded int `json:"recorded" yaml:"recorded"`
	// Present is the number of those entries that were cast.
	Present int `json:"present" yaml:"present"`
	// Comparable is the number of cast votes on bills where the member's
	// party has a majority.
	Comparable int `json:"comparable" yaml:"comparable"`
	// Dissents is the number of comparable votes differing from the party.
	Dissents int `json:"dissents" yaml:"dissents"`
}

func (c *Counts) add(o Counts) {
	c.Recorded += o.Recorded
	c.Present += o.Present
	c.Comparable += o.Comparable
	c.Dissents += o.Dissents
}

// MemberStats summarizes one member's record.
type MemberStats struct {
	Counts
	// AttendanceRate is Present/Recorded as a rounded percentage, 0 when
	// nothing was recorded.
	AttendanceRate int `json:"attendance_rate" yaml:"attendance_rate"`
	// DissentRate is Dissents/Comparable as a rounded percentage. It is nil
	// for independents and when no vote is comparable.
	DissentRate *int `json:"dissent_rate" yaml:"dissent_rate"`
}

// HasDissentRate reports whether DissentRate is defined.
func (s MemberStats) HasDissentRate() bool {
	return s.DissentRate != nil
}

// PartyStats aggregates the members of one party class.
type PartyStats struct {
	Class   parties.Class `json:"class" yaml:"class"`
	Label   string        `json:"label" yaml:"label"`
	Members int           `json:"members" yaml:"members"`
	Counts
	AttendanceRate int  `json:"attendance_rate" yaml:"attendance_rate"`
	DissentRate    *int `json:"dissent_rate" yaml:"dissent_rate"`
}

// Percent returns round(num/den*100), or 0 when den is 0.
func Percent(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(float64(num) / float64(den) * 100))
}

func percentPtr(num, den int) *int {
	if den == 0 {
		return nil
	}
	p := Percent(num, den)
	return &p
}

// count tallies a member's record against the catalog and majority table.
func count(m *members.Member, voting *datasets.Voting, table MajorityTable) Counts {
	var c Counts
	for billID, raw := range m.Votes {
		if !voting.HasBill(billID) {
			continue
		}
		c.Recorded++
		o := ballots.Classify(raw)
		if !o.Cast() {
			continue
		}
		c.Present++
		if m.Class.IsIndependent() {
			continue
		}
		majority, ok := table.Get(billID, m.Class)
		if !ok {
			continue
		}
		c.Comparable++
		if o != majority {
			c.Dissents++
		}
	}
	return c
}

// ForMember computes attendance and dissent for m.
func ForMember(m *members.Member, voting *datasets.Voting, table MajorityTable) MemberStats {
	c := count(m, voting, table)
	s := MemberStats{
		Counts:         c,
		AttendanceRate: Percent(c.Present, c.Recorded),
	}
	if !m.Class.IsIndependent() {
		s.DissentRate = percentPtr(c.Dissents, c.Comparable)
	}
	return s
}

// ForMembers computes stats for every member, index-aligned with ms.
func ForMembers(ms []members.Member, voting *datasets.Voting, table MajorityTable) []MemberStats {
	out := make([]MemberStats, len(ms))
	for i := range ms {
		out[i] = ForMember(&ms[i], voting, table)
	}
	return out
}

// ForParties aggregates member counts per class and ranks the result by
// dissent rate, highest first. Classes without a dissent rate come last;
// ties keep seating order.
func ForParties(ms []members.Member, voting *datasets.Voting, table MajorityTable) []PartyStats {
	byClass := make(map[parties.Class]*PartyStats)
	for i := range ms {
		m := &ms[i]
		ps, ok := byClass[m.Class]
		if !ok {
			ps = &PartyStats{Class: m.Class, Label: parties.Label(m.Class)}
			byClass[m.Class] = ps
		}
		ps.Members++
		ps.add(count(m, voting, table))
	}

	out := make([]PartyStats, 0, len(byClass))
	for _, ps := range byClass {
		ps.AttendanceRate = Percent(ps.Present, ps.Recorded)
		if !ps.Class.IsIndependent() {
			ps.DissentRate = percentPtr(ps.Dissents, ps.Comparable)
		}
		out = append(out, *ps)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.DissentRate != nil && b.DissentRate == nil:
			return true
		case a.DissentRate == nil && b.DissentRate != nil:
			return false
		case a.DissentRate != nil && *a.DissentRate != *b.DissentRate:
			return *a.DissentRate > *b.DissentRate
		}
		return parties.Less(a.Class, b.Class)
	})
	return out
}
