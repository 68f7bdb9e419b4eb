package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/hemicycle/pkg/members"
)

// Result represents the outcome of a reconciliation.
type Result struct {
	// Members in seating order, one per directory entry.
	Members []members.Member

	// Unmatched holds voting names that reached no member.
	Unmatched []string

	Metadata ResultMetadata

	Warnings []string
}

// ResultMetadata contains metadata about the reconciliation process.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Strategy used for vote collisions
	Strategy string

	Stats ResultStatistics
}

// ResultStatistics counts what happened during the merge.
type ResultStatistics struct {
	Contacts       int
	VotingEntries  int
	MatchedEntries int // voting entries merged into at least one member
	PartialMatches int // merges made on a token subset rather than exact equality
	WithoutVotes   int // members no voting entry matched
	Collisions     int // bill ids present in more than one merged entry
	TotalTimeMs    int64
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		Warnings: []string{},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
		},
	}
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	return fmt.Sprintf("%d members from %d directory entries; %d of %d voting entries matched, %d unmatched, %d members without votes",
		len(r.Members), s.Contacts, s.MatchedEntries, s.VotingEntries, len(r.Unmatched), s.WithoutVotes)
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	r.Metadata.Stats.TotalTimeMs = r.Metadata.Duration.Milliseconds()
}
