// Package reconciler merges the contact directory and the voting dataset
// into one authoritative, seating-ordered member list.
//
// The contact directory is the master list: every directory entry yields
// exactly one member and nothing else does. Voting entries only contribute
// votes, and an entry contributes to every directory name it matches.
package reconciler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/hemicycle/pkg/datasets"
	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/logging"
	"github.com/agentstation/hemicycle/pkg/matcher"
	"github.com/agentstation/hemicycle/pkg/members"
)

// Reconciler builds the member list from the two input datasets.
type Reconciler interface {
	// Members merges voting records into the contact directory and returns
	// the members in seating order.
	Members(ctx context.Context, contacts *datasets.Contacts, voting *datasets.Voting) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	compare  CompareFunc
	strategy Strategy
	sort     bool
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		compare:  options.compare,
		strategy: options.strategy,
		sort:     options.sort,
	}, nil
}

// reconcileContext holds shared state for one run.
type reconcileContext struct {
	collector *collector
	logger    *zerolog.Logger
	startTime time.Time
}

// Members performs reconciliation step by step.
func (r *reconciler) Members(ctx context.Context, contacts *datasets.Contacts, voting *datasets.Voting) (*Result, error) {
	// Step 1: Validate inputs and index voting names
	rctx, err := r.initialize(ctx, contacts, voting)
	if err != nil {
		return nil, err
	}

	// Step 2: Build one member per directory entry
	result := NewResult()
	result.Metadata.StartTime = rctx.startTime
	result.Metadata.Strategy = r.strategy.Name()

	ms := make([]members.Member, 0, len(contacts.Entries))
	for i, contact := range contacts.Entries {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.WrapResource("merge", "members", "", err)
			}
		}
		ms = append(ms, r.member(ctx, rctx, contact, result))
	}

	// Step 3: Record voting entries that reached no member
	result.Unmatched = rctx.collector.unmatched()
	if len(result.Unmatched) > 0 {
		rctx.logger.Debug().
			Int("unmatched", len(result.Unmatched)).
			Msg("Voting entries without a directory match")
	}

	// Step 4: Seating order
	if r.sort {
		SortBySeating(ms)
	}

	result.Members = ms
	r.stats(rctx, contacts, voting, result)
	result.Finalize()

	rctx.logger.Info().
		Int("members", len(ms)).
		Int("matched_entries", result.Metadata.Stats.MatchedEntries).
		Int("collisions", result.Metadata.Stats.Collisions).
		Dur("duration", result.Metadata.Duration).
		Msg("Reconciled member list")

	return result, nil
}

// initialize validates input and sets up the run.
func (r *reconciler) initialize(ctx context.Context, contacts *datasets.Contacts, voting *datasets.Voting) (*reconcileContext, error) {
	if contacts == nil {
		return nil, &errors.ValidationError{Field: "contacts", Message: "cannot be nil"}
	}
	if voting == nil {
		return nil, &errors.ValidationError{Field: "voting", Message: "cannot be nil"}
	}

	logger := logging.FromContext(ctx)
	logger.Debug().
		Int("contacts", len(contacts.Entries)).
		Int("voting_entries", len(voting.Entries)).
		Str("strategy", r.strategy.Name()).
		Msg("Starting reconciliation")

	return &reconcileContext{
		collector: newCollector(voting, r.compare),
		logger:    logger,
		startTime: time.Now(),
	}, nil
}

// member builds the record for one directory entry.
func (r *reconciler) member(ctx context.Context, rctx *reconcileContext, contact datasets.Contact, result *Result) members.Member {
	m := members.FromContact(contact)
	logger := logging.FromContext(logging.WithMember(logging.WithLogger(ctx, rctx.logger), contact.Name))

	hits := rctx.collector.matches(contact.Name)
	for _, hit := range hits {
		entry := rctx.collector.entry(hit.Index)
		result.Metadata.Stats.Collisions += r.strategy.Merge(m.Votes, entry.Votes)
		if entry.Name != contact.Name {
			m.Aliases = append(m.Aliases, entry.Name)
		}
		if hit.Kind == matcher.Partial {
			result.Metadata.Stats.PartialMatches++
		}
		logger.Trace().
			Str("voting_name", entry.Name).
			Stringer("match", hit.Kind).
			Msg("Merged voting entry")
	}
	if len(hits) == 0 {
		result.Metadata.Stats.WithoutVotes++
		logger.Debug().Msg("No voting entry matched")
	}
	return m
}

// stats fills the counters that depend on the whole run.
func (r *reconciler) stats(rctx *reconcileContext, contacts *datasets.Contacts, voting *datasets.Voting, result *Result) {
	s := &result.Metadata.Stats
	s.Contacts = len(contacts.Entries)
	s.VotingEntries = len(voting.Entries)
	s.MatchedEntries = rctx.collector.matchedCount()

	for _, shared := range rctx.collector.shared() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("voting entry %q matched %d directory entries", shared.name, shared.count))
	}
}
