package reconciler

import (
	"sort"

	"github.com/agentstation/hemicycle/pkg/members"
	"github.com/agentstation/hemicycle/pkg/parties"
	"github.com/agentstation/hemicycle/pkg/textnorm"
)

// SortBySeating orders members left to right: by party seating position,
// then by cleaned name in Turkish alphabetical order. The sort is stable.
func SortBySeating(ms []members.Member) {
	collator := textnorm.NewCollator()
	names := make([]string, len(ms))
	for i := range ms {
		names[i] = ms[i].DisplayName()
	}

	idx := make([]int, len(ms))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ma, mb := &ms[idx[a]], &ms[idx[b]]
		oa, ob := parties.SeatingOrder(ma.Class), parties.SeatingOrder(mb.Class)
		if oa != ob {
			return oa < ob
		}
		return collator.Compare(names[idx[a]], names[idx[b]]) < 0
	})

	sorted := make([]members.Member, len(ms))
	for i, j := range idx {
		sorted[i] = ms[j]
	}
	copy(ms, sorted)
}
