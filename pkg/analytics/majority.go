// Package analytics derives voting statistics from the reconciled member
// list: the majority position of every party on every bill, and per-member
// and per-party attendance and dissent rates.
package analytics

import (
	"github.com/agentstation/hemicycle/pkg/ballots"
	"github.com/agentstation/hemicycle/pkg/datasets"
	"github.com/agentstation/hemicycle/pkg/members"
	"github.com/agentstation/hemicycle/pkg/parties"
)

// MajorityTable maps bill id to the majority outcome of each party on that
// bill. A party appears for a bill only if at least one of its members cast
// a non-absent vote on it.
type MajorityTable map[string]map[parties.Class]ballots.Outcome

// Get returns the majority of party on bill.
func (t MajorityTable) Get(billID string, party parties.Class) (ballots.Outcome, bool) {
	byParty, ok := t[billID]
	if !ok {
		return ballots.Absent, false
	}
	o, ok := byParty[party]
	return o, ok
}

// Tally counts cast votes per outcome.
type Tally map[ballots.Outcome]int

// Majority returns the outcome with the strictly highest count. Ties go to
// the outcome with the higher ballots.Outcome.Priority. An empty tally has
// no majority.
func (t Tally) Majority() (ballots.Outcome, bool) {
	best, bestCount := ballots.Absent, 0
	for _, o := range ballots.CastOutcomes {
		n := t[o]
		if n == 0 {
			continue
		}
		if n > bestCount || (n == bestCount && o.Priority() > best.Priority()) {
			best, bestCount = o, n
		}
	}
	return best, bestCount > 0
}

// Majorities computes the majority table over the bill catalog. Votes on
// bill ids outside the catalog are ignored.
func Majorities(ms []members.Member, voting *datasets.Voting) MajorityTable {
	table := make(MajorityTable)
	if voting == nil {
		return table
	}

	tallies := make(map[string]map[parties.Class]Tally, len(voting.Bills))
	for i := range ms {
		m := &ms[i]
		for billID, raw := range m.Votes {
			if !voting.HasBill(billID) {
				continue
			}
			o := ballots.Classify(raw)
			if !o.Cast() {
				continue
			}
			byParty, ok := tallies[billID]
			if !ok {
				byParty = make(map[parties.Class]Tally)
				tallies[billID] = byParty
			}
			tally, ok := byParty[m.Class]
			if !ok {
				tally = make(Tally)
				byParty[m.Class] = tally
			}
			tally[o]++
		}
	}

	for billID, byParty := range tallies {
		row := make(map[parties.Class]ballots.Outcome, len(byParty))
		for class, tally := range byParty {
			if o, ok := tally.Majority(); ok {
				row[class] = o
			}
		}
		table[billID] = row
	}
	return table
}
