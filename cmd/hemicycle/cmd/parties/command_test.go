package parties

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hemicycle"
	"github.com/agentstation/hemicycle/internal/appcontext"
	"github.com/agentstation/hemicycle/pkg/analytics"
	"github.com/agentstation/hemicycle/pkg/parties"
)

func newMock(t *testing.T, format string) *appcontext.Mock {
	t.Helper()
	dir := filepath.Join("..", "..", "..", "..", "testdata")
	c, err := hemicycle.Load(context.Background(),
		hemicycle.WithVotingSource(filepath.Join(dir, "data.json")),
		hemicycle.WithContactsSource(filepath.Join(dir, "contacts.json")),
	)
	require.NoError(t, err)
	return &appcontext.Mock{
		ChamberFunc: func(context.Context) (*hemicycle.Chamber, error) { return c, nil },
		Format:      format,
	}
}

func TestPartiesYAML(t *testing.T) {
	cmd := NewCommand(newMock(t, "yaml"))
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Equal(t, "4 parties, 5 members, 2 bills\n", stderr.String())

	var got []analytics.PartyStats
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &got))
	require.Len(t, got, 4)
	assert.Equal(t, parties.CHP, got[0].Class)
	require.NotNil(t, got[0].DissentRate)
	assert.Equal(t, 25, *got[0].DissentRate)
	assert.Nil(t, got[3].DissentRate)
}

func TestPartiesWide(t *testing.T) {
	mock := newMock(t, "wide")
	mock.QuietOutput = true

	cmd := NewCommand(mock)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Empty(t, stderr.String())
	assert.Contains(t, stdout.String(), "Cumhuriyet Halk Partisi")
	assert.Contains(t, stdout.String(), "25%")
}
