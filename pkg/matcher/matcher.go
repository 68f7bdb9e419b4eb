// Package matcher decides whether two differently spelled person names refer
// to the same member.
//
// Two names match exactly when their normalized tokens spell the same string
// once the spaces between them are dropped, so "Abdul Kadir" and "Abdulkadir"
// are one person. Otherwise they match partially when one name's tokens are
// all contained in the other's and that shorter name has at least two tokens. Single-token names therefore only ever
// match exactly, which keeps "Ali" from absorbing every Ali in the chamber.
package matcher

import (
	"strings"

	"github.com/agentstation/hemicycle/pkg/textnorm"
)

// MinPartialTokens is the smallest token count a name needs to be matched
// as a subset of a longer name.
const MinPartialTokens = 2

// Kind describes how two names matched.
type Kind int

const (
	// None means the names refer to different people.
	None Kind = iota
	// Exact means the concatenated normalized tokens are identical.
	Exact
	// Partial means one name's tokens are a subset of the other's.
	Partial
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Partial:
		return "partial"
	default:
		return "none"
	}
}

// Name is a pre-normalized person name. Parse once and compare many times.
type Name struct {
	Raw    string
	Tokens []string
	Key    string // tokens joined by single spaces
	Joined string // tokens concatenated without separators

	set map[string]struct{}
}

// Parse normalizes raw into a Name.
func Parse(raw string) Name {
	tokens := textnorm.Tokens(raw)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return Name{
		Raw:    raw,
		Tokens: tokens,
		Key:    strings.Join(tokens, " "),
		Joined: strings.Join(tokens, ""),
		set:    set,
	}
}

// Empty reports whether the name has no tokens.
func (n Name) Empty() bool {
	return len(n.Tokens) == 0
}

// joined returns the separator-free form, deriving it for hand-built names.
func (n Name) joined() string {
	if n.Joined != "" {
		return n.Joined
	}
	return strings.Join(n.Tokens, "")
}

// has reports whether tok is one of n's tokens.
func (n Name) has(tok string) bool {
	if n.set == nil {
		for _, t := range n.Tokens {
			if t == tok {
				return true
			}
		}
		return false
	}
	_, ok := n.set[tok]
	return ok
}

// within reports whether every token of n occurs in other.
func (n Name) within(other Name) bool {
	for _, tok := range n.Tokens {
		if !other.has(tok) {
			return false
		}
	}
	return true
}

// Compare classifies the relation between a and b. It is symmetric.
func Compare(a, b Name) Kind {
	if a.Empty() || b.Empty() {
		return None
	}
	if a.joined() == b.joined() {
		return Exact
	}

	shorter, longer := a, b
	if len(b.Tokens) < len(a.Tokens) {
		shorter, longer = b, a
	}
	if len(shorter.Tokens) < MinPartialTokens {
		return None
	}
	if !shorter.within(longer) {
		return None
	}
	// Equal lengths need containment both ways for symmetry.
	if len(shorter.Tokens) == len(longer.Tokens) && !longer.within(shorter) {
		return None
	}
	return Partial
}

// Match reports whether two raw names refer to the same person.
func Match(a, b string) bool {
	return Compare(Parse(a), Parse(b)) != None
}

// Index holds pre-parsed candidate names for repeated lookups.
type Index struct {
	names []Name
}

// NewIndex parses every candidate once, preserving order.
func NewIndex(candidates []string) *Index {
	names := make([]Name, len(candidates))
	for i, c := range candidates {
		names[i] = Parse(c)
	}
	return &Index{names: names}
}

// Len returns the number of candidates.
func (ix *Index) Len() int {
	return len(ix.names)
}

// Name returns the i-th parsed candidate.
func (ix *Index) Name(i int) Name {
	return ix.names[i]
}

// Hit is a candidate that matched a query.
type Hit struct {
	Index int
	Kind  Kind
}

// Lookup returns every candidate matching query, in candidate order.
func (ix *Index) Lookup(query Name) []Hit {
	return ix.LookupFunc(query, Compare)
}

// LookupFunc is Lookup with a caller-supplied comparison. compare receives
// the query first and the candidate second.
func (ix *Index) LookupFunc(query Name, compare func(query, candidate Name) Kind) []Hit {
	var hits []Hit
	for i, n := range ix.names {
		if k := compare(query, n); k != None {
			hits = append(hits, Hit{Index: i, Kind: k})
		}
	}
	return hits
}
