package sources_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hemicycle/pkg/sources"
)

type staticSource struct {
	id   sources.ID
	data []byte
}

func (s *staticSource) ID() sources.ID                        { return s.id }
func (s *staticSource) Location() string                      { return "memory" }
func (s *staticSource) Fetch(context.Context) ([]byte, error) { return s.data, nil }

func TestIDs(t *testing.T) {
	assert.Equal(t, []sources.ID{sources.VotingID, sources.ContactsID}, sources.IDs())
	assert.True(t, sources.VotingID.IsValid())
	assert.False(t, sources.ID("parliament").IsValid())
	assert.Equal(t, "contacts", sources.ContactsID.String())
}

func TestSources(t *testing.T) {
	set := sources.NewSources()
	assert.Equal(t, []sources.ID{sources.VotingID, sources.ContactsID}, set.Missing())

	set.Set(sources.ContactsID, &staticSource{id: sources.ContactsID})
	set.Set(sources.VotingID, &staticSource{id: sources.VotingID, data: []byte("{}")})
	assert.Equal(t, 2, set.Len())
	assert.Empty(t, set.Missing())

	list := set.List()
	require.Len(t, list, 2)
	assert.Equal(t, sources.VotingID, list[0].ID())
	assert.Equal(t, sources.ContactsID, list[1].ID())

	src, ok := set.Get(sources.VotingID)
	require.True(t, ok)
	raw, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))

	set.Delete(sources.VotingID)
	_, ok = set.Get(sources.VotingID)
	assert.False(t, ok)
	assert.Equal(t, []sources.ID{sources.VotingID}, set.Missing())
}

func TestSourcesConcurrentAccess(t *testing.T) {
	set := sources.NewSources()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := sources.VotingID
			if i%2 == 0 {
				id = sources.ContactsID
			}
			set.Set(id, &staticSource{id: id})
			_ = set.List()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 2, set.Len())
}
