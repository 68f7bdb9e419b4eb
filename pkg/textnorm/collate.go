package textnorm

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator orders strings by Turkish alphabetical rules (ç after c, ğ after g,
// ı before i, ...). A Collator is not safe for concurrent use; create one per
// goroutine.
type Collator struct {
	c *collate.Collator
}

// NewCollator returns a Turkish collator.
func NewCollator() *Collator {
	return &Collator{c: collate.New(language.Turkish)}
}

// Compare returns -1, 0 or 1.
func (c *Collator) Compare(a, b string) int {
	return c.c.CompareString(a, b)
}

// Compare orders a and b with a fresh Turkish collator.
func Compare(a, b string) int {
	return NewCollator().Compare(a, b)
}

// SortStrings sorts ss in place in Turkish alphabetical order.
func SortStrings(ss []string) {
	c := NewCollator()
	sort.SliceStable(ss, func(i, j int) bool {
		return c.Compare(ss[i], ss[j]) < 0
	})
}
