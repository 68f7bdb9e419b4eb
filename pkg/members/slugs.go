package members

import (
	"strconv"

	"github.com/agentstation/hemicycle/pkg/textnorm"
)

// fallbackSlug names members whose name folds to nothing.
const fallbackSlug = "member"

// Slugs assigns a unique slug to every member, in order. The first member
// with a given base slug gets it bare; later ones get "-2", "-3", ...
// skipping any suffix already taken by an earlier base.
func Slugs(ms []Member) []string {
	out := make([]string, len(ms))
	taken := make(map[string]bool, len(ms))
	next := make(map[string]int, len(ms))

	for i := range ms {
		base := textnorm.Slug(ms[i].Name)
		if base == "" {
			base = fallbackSlug
		}

		slug := base
		if taken[slug] {
			n := next[base]
			if n < 2 {
				n = 2
			}
			for {
				slug = base + "-" + strconv.Itoa(n)
				n++
				if !taken[slug] {
					break
				}
			}
			next[base] = n
		}
		taken[slug] = true
		out[i] = slug
	}
	return out
}
