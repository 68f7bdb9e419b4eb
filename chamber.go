package hemicycle

import (
	"context"
	"time"

	"github.com/agentstation/hemicycle/pkg/analytics"
	"github.com/agentstation/hemicycle/pkg/ballots"
	"github.com/agentstation/hemicycle/pkg/datasets"
	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/layout"
	"github.com/agentstation/hemicycle/pkg/logging"
	"github.com/agentstation/hemicycle/pkg/members"
	"github.com/agentstation/hemicycle/pkg/parties"
	"github.com/agentstation/hemicycle/pkg/reconciler"
)

// Chamber is the reconciled state of the legislature: the member list in
// seating order and everything derived from it. A Chamber is built once and
// never mutated, so it is safe to share between goroutines. Callers must
// treat the exported slices and maps as read-only.
type Chamber struct {
	Voting   *datasets.Voting
	Contacts *datasets.Contacts

	// Members in seating order. Every index-aligned slice below follows it.
	Members     []members.Member
	Slugs       []string
	MemberStats []analytics.MemberStats

	Majorities analytics.MajorityTable
	PartyStats []analytics.PartyStats

	// Result carries the reconciliation metadata and warnings.
	Result   *reconciler.Result
	LoadedAt time.Time

	bySlug map[string]int
}

// Build reconciles already decoded datasets into a Chamber.
func Build(ctx context.Context, contacts *datasets.Contacts, voting *datasets.Voting, opts ...reconciler.Option) (*Chamber, error) {
	logger := logging.FromContext(ctx)

	rec, err := reconciler.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "reconciler", "", err)
	}
	result, err := rec.Members(ctx, contacts, voting)
	if err != nil {
		return nil, err
	}

	ms := result.Members
	table := analytics.Majorities(ms, voting)
	c := &Chamber{
		Voting:      voting,
		Contacts:    contacts,
		Members:     ms,
		Slugs:       members.Slugs(ms),
		MemberStats: analytics.ForMembers(ms, voting, table),
		Majorities:  table,
		PartyStats:  analytics.ForParties(ms, voting, table),
		Result:      result,
		LoadedAt:    time.Now(),
	}
	c.bySlug = make(map[string]int, len(c.Slugs))
	for i, slug := range c.Slugs {
		c.bySlug[slug] = i
	}

	for _, w := range result.Warnings {
		logger.Warn().Msg(w)
	}
	logger.Debug().
		Int("members", len(ms)).
		Int("bills", len(voting.Bills)).
		Int("parties", len(c.PartyStats)).
		Msg("Chamber built")
	return c, nil
}

// Len returns the number of members.
func (c *Chamber) Len() int {
	return len(c.Members)
}

// Index returns the seating index of the member with slug.
func (c *Chamber) Index(slug string) (int, bool) {
	i, ok := c.bySlug[slug]
	return i, ok
}

// Profile is everything known about one member.
type Profile struct {
	Slug      string                `json:"slug" yaml:"slug"`
	Index     int                   `json:"index" yaml:"index"`
	Member    *members.Member       `json:"member" yaml:"member"`
	Record    members.Record        `json:"record" yaml:"record"`
	Stats     analytics.MemberStats `json:"stats" yaml:"stats"`
	VoteLines []members.VoteLine    `json:"votes" yaml:"votes"`
}

// Profile returns the member with slug.
func (c *Chamber) Profile(slug string) (*Profile, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return nil, errors.NewNotFoundError("member", slug)
	}
	return c.profileAt(i), nil
}

func (c *Chamber) profileAt(i int) *Profile {
	m := &c.Members[i]
	return &Profile{
		Slug:      c.Slugs[i],
		Index:     i,
		Member:    m,
		Record:    m.Record(),
		Stats:     c.MemberStats[i],
		VoteLines: m.VoteLines(c.Voting),
	}
}

// Seats computes a seat for every member at the given container width. The
// i-th seat belongs to Members[i].
func (c *Chamber) Seats(width float64) ([]layout.Seat, error) {
	return layout.Compute(len(c.Members), width)
}

// Bills returns the bill catalog in dataset order.
func (c *Chamber) Bills() []datasets.Bill {
	if c.Voting == nil {
		return nil
	}
	return c.Voting.Bills
}

// Majority returns the per-party majority of a catalog bill.
func (c *Chamber) Majority(billID string) (map[parties.Class]ballots.Outcome, error) {
	if !c.Voting.HasBill(billID) {
		return nil, errors.NewNotFoundError("bill", billID)
	}
	out := make(map[parties.Class]ballots.Outcome, len(c.Majorities[billID]))
	for class, o := range c.Majorities[billID] {
		out[class] = o
	}
	return out, nil
}

// Provinces returns the distinct provinces in Turkish alphabetical order.
func (c *Chamber) Provinces() []string {
	return members.Provinces(c.Members)
}

// Filter returns the seating indexes of the members that pass f.
func (c *Chamber) Filter(f members.Filter) []int {
	return f.Apply(c.Members)
}

// Profiles returns the profiles at the given seating indexes.
func (c *Chamber) Profiles(indexes []int) []*Profile {
	out := make([]*Profile, 0, len(indexes))
	for _, i := range indexes {
		if i < 0 || i >= len(c.Members) {
			continue
		}
		out = append(out, c.profileAt(i))
	}
	return out
}
