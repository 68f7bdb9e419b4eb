package members

import (
	"github.com/agentstation/hemicycle/pkg/parties"
	"github.com/agentstation/hemicycle/pkg/textnorm"
)

// Filter selects members for display. Zero-valued fields match everything.
type Filter struct {
	// Search matches any member whose folded name contains the folded term.
	Search string
	// Province matches the cleaned province exactly.
	Province string
	// Party restricts to one party class.
	Party parties.Class
}

// Empty reports whether f selects every member.
func (f Filter) Empty() bool {
	return f.Search == "" && f.Province == "" && f.Party == ""
}

// Matches reports whether m passes every criterion of f.
func (f Filter) Matches(m *Member) bool {
	if f.Party != "" && m.Class != f.Party {
		return false
	}
	if f.Province != "" && m.DisplayProvince() != textnorm.Clean(f.Province) {
		return false
	}
	if f.Search != "" && !textnorm.Contains(m.Name, f.Search) {
		return false
	}
	return true
}

// Apply returns the indexes of members matching f, in order. Callers keep
// the full list for seat assignment and use the indexes to highlight.
func (f Filter) Apply(ms []Member) []int {
	out := make([]int, 0, len(ms))
	for i := range ms {
		if f.Matches(&ms[i]) {
			out = append(out, i)
		}
	}
	return out
}

// Provinces returns the distinct cleaned provinces in Turkish alphabetical
// order.
func Provinces(ms []Member) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range ms {
		p := ms[i].DisplayProvince()
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	textnorm.SortStrings(out)
	return out
}
