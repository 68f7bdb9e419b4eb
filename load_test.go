package hemicycle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/logging"
	"github.com/agentstation/hemicycle/pkg/sources"
)

var (
	votingFixture   = filepath.Join("testdata", "data.json")
	contactsFixture = filepath.Join("testdata", "contacts.json")
)

// blockingSource waits until its context is canceled.
type blockingSource struct {
	id       sources.ID
	canceled atomic.Bool
}

func (s *blockingSource) ID() sources.ID   { return s.id }
func (s *blockingSource) Location() string { return "blocking" }
func (s *blockingSource) Fetch(ctx context.Context) ([]byte, error) {
	<-ctx.Done()
	s.canceled.Store(true)
	return nil, ctx.Err()
}

func TestLoadLocal(t *testing.T) {
	c, err := Load(context.Background(),
		WithVotingSource(votingFixture),
		WithContactsSource(contactsFixture),
	)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Len())
	assert.Equal(t, "2024-11-20", c.Voting.LastUpdated)
}

func TestLoadRemote(t *testing.T) {
	voting, err := os.ReadFile(votingFixture)
	require.NoError(t, err)
	contacts, err := os.ReadFile(contactsFixture)
	require.NoError(t, err)

	var authorized atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer s3cret" {
			authorized.Add(1)
		}
		switch r.URL.Path {
		case "/data.json":
			_, _ = w.Write(voting)
		case "/contacts.json":
			_, _ = w.Write(contacts)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c, err := Load(context.Background(),
		WithVotingSource(srv.URL+"/data.json"),
		WithContactsSource(srv.URL+"/contacts.json"),
		WithSourceAuth("bearer", "s3cret"),
		WithHTTPTimeout(5*time.Second),
	)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Len())
	assert.Equal(t, int32(2), authorized.Load())
}

func TestLoadFetchFailureAbortsAndCancels(t *testing.T) {
	blocking := &blockingSource{id: sources.VotingID}

	_, err := Load(context.Background(),
		WithSource(blocking),
		WithContactsSource(filepath.Join(t.TempDir(), "missing.json")),
	)
	require.Error(t, err)
	assert.True(t, errors.IsLoadFailed(err))

	var loadErr *errors.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "contacts", loadErr.Source)
	assert.Equal(t, "fetch", loadErr.Stage)
	assert.True(t, blocking.canceled.Load(), "sibling fetch must be canceled")
}

func TestLoadRemoteFailureNamesSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := Load(context.Background(),
		WithVotingSource(srv.URL+"/data.json"),
		WithContactsSource(contactsFixture),
	)
	require.Error(t, err)
	var loadErr *errors.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "voting", loadErr.Source)
	assert.True(t, errors.IsSourceUnavailable(err))
}

func TestLoadDecodeFailure(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "contacts.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))

	_, err := Load(context.Background(),
		WithVotingSource(votingFixture),
		WithContactsSource(bad),
	)
	var loadErr *errors.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "decode", loadErr.Stage)
	assert.Equal(t, "contacts", loadErr.Source)

	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestLoadLogsPipeline(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	_, err := Load(ctx, WithVotingSource(votingFixture), WithContactsSource(contactsFixture))
	require.NoError(t, err)
	tl.AssertContains(t, "Chamber loaded")
	tl.AssertContains(t, `"operation":"load"`)
}

func TestOptionValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"empty voting", WithVotingSource("")},
		{"empty contacts", WithContactsSource("")},
		{"nil source", WithSource(nil)},
		{"zero timeout", WithHTTPTimeout(0)},
		{"zero load timeout", WithLoadTimeout(0)},
		{"bad auth", WithSourceAuth("digest", "x")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tt.opt)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}
