package reconciler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hemicycle/pkg/datasets"
	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/logging"
	"github.com/agentstation/hemicycle/pkg/matcher"
	"github.com/agentstation/hemicycle/pkg/members"
	"github.com/agentstation/hemicycle/pkg/parties"
	"github.com/agentstation/hemicycle/pkg/reconciler"
)

func contactsOf(entries ...datasets.Contact) *datasets.Contacts {
	return &datasets.Contacts{Entries: entries}
}

func votingOf(entries ...datasets.VotingEntry) *datasets.Voting {
	return datasets.NewVoting(entries, []datasets.Bill{{ID: "b1"}, {ID: "b2"}, {ID: "b3"}}, "")
}

func names(ms []members.Member) []string {
	out := make([]string, len(ms))
	for i := range ms {
		out[i] = ms[i].Name
	}
	return out
}

func TestMembersUnionAndOverwrite(t *testing.T) {
	r, err := reconciler.New()
	require.NoError(t, err)

	contacts := contactsOf(datasets.Contact{Name: "MEHMET ALİ ŞAHİN", Party: "AK Parti", Province: "Ankara"})
	voting := votingOf(
		datasets.VotingEntry{Name: "Mehmet Ali Şahin", Votes: map[string]string{"b1": "Kabul", "b2": "Ret"}},
		datasets.VotingEntry{Name: "Mehmet Şahin", Votes: map[string]string{"b2": "Kabul", "b3": "Çekimser"}},
		datasets.VotingEntry{Name: "Zeynep Ak", Votes: map[string]string{"b1": "Ret"}},
	)

	res, err := r.Members(context.Background(), contacts, voting)
	require.NoError(t, err)
	require.Len(t, res.Members, 1)

	m := res.Members[0]
	assert.Equal(t, "MEHMET ALİ ŞAHİN", m.Name)
	assert.Equal(t, parties.AKP, m.Class)
	assert.Equal(t, map[string]string{"b1": "Kabul", "b2": "Kabul", "b3": "Çekimser"}, m.Votes)
	assert.Equal(t, []string{"Mehmet Ali Şahin", "Mehmet Şahin"}, m.Aliases)

	assert.Equal(t, []string{"Zeynep Ak"}, res.Unmatched)
	stats := res.Metadata.Stats
	assert.Equal(t, 1, stats.Contacts)
	assert.Equal(t, 3, stats.VotingEntries)
	assert.Equal(t, 2, stats.MatchedEntries)
	assert.Equal(t, 1, stats.Collisions)
	assert.Equal(t, 1, stats.PartialMatches)
	assert.Equal(t, "last-wins", res.Metadata.Strategy)
	assert.Contains(t, res.Summary(), "1 members from 1 directory entries")
}

func TestMembersFirstWins(t *testing.T) {
	r, err := reconciler.New(reconciler.WithStrategy(reconciler.FirstWins()))
	require.NoError(t, err)

	res, err := r.Members(context.Background(),
		contactsOf(datasets.Contact{Name: "Ali Veli Kaya"}),
		votingOf(
			datasets.VotingEntry{Name: "Ali Veli Kaya", Votes: map[string]string{"b1": "Kabul"}},
			datasets.VotingEntry{Name: "Ali Kaya", Votes: map[string]string{"b1": "Ret"}},
		))
	require.NoError(t, err)
	assert.Equal(t, "Kabul", res.Members[0].Votes["b1"])
}

func TestMembersDirectoryIsMaster(t *testing.T) {
	r, err := reconciler.New()
	require.NoError(t, err)

	contacts := contactsOf(
		datasets.Contact{Name: "Ayşe Kaya", Party: "CHP"},
		datasets.Contact{Name: "Ayşe Kaya", Party: "CHP"},
		datasets.Contact{Name: "Can Demir", Party: "MHP"},
	)
	res, err := r.Members(context.Background(), contacts, votingOf())
	require.NoError(t, err)

	assert.Len(t, res.Members, 3, "one member per directory entry")
	assert.Equal(t, 3, res.Metadata.Stats.WithoutVotes)
	for _, m := range res.Members {
		assert.NotNil(t, m.Votes)
		assert.Empty(t, m.Votes)
	}
}

func TestMembersSharedEntryWarning(t *testing.T) {
	r, err := reconciler.New()
	require.NoError(t, err)

	contacts := contactsOf(
		datasets.Contact{Name: "Ali Veli Kaya", Party: "CHP"},
		datasets.Contact{Name: "Ali Veli Demir", Party: "CHP"},
	)
	voting := votingOf(datasets.VotingEntry{Name: "Ali Veli", Votes: map[string]string{"b1": "Kabul"}})

	res, err := r.Members(context.Background(), contacts, voting)
	require.NoError(t, err)

	for _, m := range res.Members {
		assert.Equal(t, "Kabul", m.Votes["b1"])
	}
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], `"Ali Veli" matched 2`)
}

func TestMembersSeatingOrder(t *testing.T) {
	r, err := reconciler.New()
	require.NoError(t, err)

	contacts := contactsOf(
		datasets.Contact{Name: "Zafer Ünal", Party: "AK Parti"},
		datasets.Contact{Name: "Çiğdem Bal", Party: "CHP"},
		datasets.Contact{Name: "Cem Ak", Party: "CHP"},
		datasets.Contact{Name: "Deniz Yıldız", Party: "Türkiye İşçi Partisi"},
		datasets.Contact{Name: "Ömer Tan", Party: "Bağımsız"},
		datasets.Contact{Name: "Ali Er", Party: "AK Parti"},
	)
	res, err := r.Members(context.Background(), contacts, votingOf())
	require.NoError(t, err)

	assert.Equal(t, []string{"Deniz Yıldız", "Cem Ak", "Çiğdem Bal", "Ali Er", "Zafer Ünal", "Ömer Tan"}, names(res.Members))

	r, err = reconciler.New(reconciler.WithSeatingOrder(false))
	require.NoError(t, err)
	res, err = r.Members(context.Background(), contacts, votingOf())
	require.NoError(t, err)
	assert.Equal(t, "Zafer Ünal", res.Members[0].Name)
}

func TestMembersCustomCompare(t *testing.T) {
	exactOnly := func(a, b matcher.Name) matcher.Kind {
		if k := matcher.Compare(a, b); k == matcher.Exact {
			return k
		}
		return matcher.None
	}
	r, err := reconciler.New(reconciler.WithCompare(exactOnly))
	require.NoError(t, err)

	res, err := r.Members(context.Background(),
		contactsOf(datasets.Contact{Name: "Mehmet Ali Şahin"}),
		votingOf(datasets.VotingEntry{Name: "Mehmet Şahin", Votes: map[string]string{"b1": "Kabul"}}))
	require.NoError(t, err)
	assert.Empty(t, res.Members[0].Votes)
	assert.Equal(t, []string{"Mehmet Şahin"}, res.Unmatched)
}

func TestNewValidation(t *testing.T) {
	_, err := reconciler.New(reconciler.WithStrategy(nil))
	assert.True(t, errors.IsValidationError(err))

	_, err = reconciler.New(reconciler.WithCompare(nil))
	assert.True(t, errors.IsValidationError(err))

	r, err := reconciler.New()
	require.NoError(t, err)
	_, err = r.Members(context.Background(), nil, votingOf())
	assert.True(t, errors.IsValidationError(err))
	_, err = r.Members(context.Background(), contactsOf(), nil)
	assert.True(t, errors.IsValidationError(err))
}

func TestMembersCanceled(t *testing.T) {
	r, err := reconciler.New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Members(ctx, contactsOf(datasets.Contact{Name: "A B"}), votingOf())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMembersMergedGivenNames(t *testing.T) {
	r, err := reconciler.New(reconciler.WithSeatingOrder(false))
	require.NoError(t, err)

	res, err := r.Members(context.Background(),
		contactsOf(
			datasets.Contact{Name: "Ayşe Nur Yılmaz"},
			datasets.Contact{Name: "Abdulkadir Özel"},
		),
		votingOf(
			datasets.VotingEntry{Name: "AYŞENUR YILMAZ", Votes: map[string]string{"b1": "Kabul"}},
			datasets.VotingEntry{Name: "Abdul Kadir Özel", Votes: map[string]string{"b2": "Ret"}},
		))
	require.NoError(t, err)
	require.Len(t, res.Members, 2)
	assert.Equal(t, map[string]string{"b1": "Kabul"}, res.Members[0].Votes)
	assert.Equal(t, map[string]string{"b2": "Ret"}, res.Members[1].Votes)
	assert.Empty(t, res.Unmatched)
}

func TestMembersLogsPerMember(t *testing.T) {
	r, err := reconciler.New()
	require.NoError(t, err)

	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	_, err = r.Members(ctx,
		contactsOf(
			datasets.Contact{Name: "Ali Veli Kaya"},
			datasets.Contact{Name: "Zeynep Ak"},
		),
		votingOf(datasets.VotingEntry{Name: "Ali Kaya", Votes: map[string]string{"b1": "Kabul"}}))
	require.NoError(t, err)

	merged := tl.Find("Merged voting entry")
	require.NotNil(t, merged)
	assert.Equal(t, "Ali Veli Kaya", merged["member"])
	assert.Equal(t, "Ali Kaya", merged["voting_name"])
	assert.Equal(t, "partial", merged["match"])

	missing := tl.Find("No voting entry matched")
	require.NotNil(t, missing)
	assert.Equal(t, "Zeynep Ak", missing["member"])
}
