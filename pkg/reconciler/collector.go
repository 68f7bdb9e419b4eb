package reconciler

import (
	"github.com/agentstation/hemicycle/pkg/datasets"
	"github.com/agentstation/hemicycle/pkg/matcher"
)

// collector finds the voting entries behind each directory name. Voting
// names are parsed once up front.
type collector struct {
	voting  *datasets.Voting
	index   *matcher.Index
	compare CompareFunc
	hits    []int // per voting entry, number of directory names it matched
}

// newCollector indexes the voting entries.
func newCollector(voting *datasets.Voting, compare CompareFunc) *collector {
	names := make([]string, len(voting.Entries))
	for i, e := range voting.Entries {
		names[i] = e.Name
	}
	return &collector{
		voting:  voting,
		index:   matcher.NewIndex(names),
		compare: compare,
		hits:    make([]int, len(names)),
	}
}

// matches returns every voting entry matching contactName, in dataset order.
func (c *collector) matches(contactName string) []matcher.Hit {
	hits := c.index.LookupFunc(matcher.Parse(contactName), c.compare)
	for _, h := range hits {
		c.hits[h.Index]++
	}
	return hits
}

// entry returns the i-th voting entry.
func (c *collector) entry(i int) datasets.VotingEntry {
	return c.voting.Entries[i]
}

// unmatched lists voting names that matched no directory entry.
func (c *collector) unmatched() []string {
	var out []string
	for i, n := range c.hits {
		if n == 0 {
			out = append(out, c.voting.Entries[i].Name)
		}
	}
	return out
}

// matchedCount is the number of voting entries that reached a member.
func (c *collector) matchedCount() int {
	count := 0
	for _, n := range c.hits {
		if n > 0 {
			count++
		}
	}
	return count
}

type sharedEntry struct {
	name  string
	count int
}

// shared lists voting entries merged into more than one member.
func (c *collector) shared() []sharedEntry {
	var out []sharedEntry
	for i, n := range c.hits {
		if n > 1 {
			out = append(out, sharedEntry{name: c.voting.Entries[i].Name, count: n})
		}
	}
	return out
}
