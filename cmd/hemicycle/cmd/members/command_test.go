package members

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hemicycle"
	"github.com/agentstation/hemicycle/internal/appcontext"
	"github.com/agentstation/hemicycle/pkg/errors"
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

func run(t *testing.T, app appcontext.Interface, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestListMembersJSON(t *testing.T) {
	out, stderr, err := run(t, newMock(t, "json"), "--party", "chp")
	require.NoError(t, err)
	assert.Equal(t, "Found 2 of 5 members\n", stderr)

	var got []hemicycle.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "fatma-demir", got[0].Slug)
	assert.Equal(t, "mehmet-kaya", got[1].Slug)
}

func TestListMembersTableWithLimit(t *testing.T) {
	mock := newMock(t, "table")
	mock.QuietOutput = true

	out, stderr, err := run(t, mock, "--limit", "2")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, out, "fatma-demir")
	assert.Contains(t, out, "mehmet-kaya")
	assert.NotContains(t, out, "ali-veli")
}

func TestListMembersSearch(t *testing.T) {
	out, _, err := run(t, newMock(t, "csv"), "--search", "CELIK")
	require.NoError(t, err)
	assert.Contains(t, out, "hasan-celik")
	assert.NotContains(t, out, "ayse-yilmaz")
}

func TestListMembersInvalidParty(t *testing.T) {
	_, _, err := run(t, newMock(t, "json"), "--party", "nope")
	assert.True(t, errors.IsValidationError(err))
}

func TestShowMember(t *testing.T) {
	out, _, err := run(t, newMock(t, "json"), "mehmet-kaya")
	require.NoError(t, err)

	var got hemicycle.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Index)
	assert.Equal(t, "mehmet.kaya@tbmm.gov.tr", got.Record.Email)
	assert.Len(t, got.VoteLines, 2)
}

func TestShowMemberTable(t *testing.T) {
	out, _, err := run(t, newMock(t, "table"), "ayse-yilmaz")
	require.NoError(t, err)
	assert.Contains(t, out, "ayse.yilmaz@tbmm.gov.tr")
	assert.Contains(t, out, "2024-102")
}

func TestShowMemberNotFound(t *testing.T) {
	_, _, err := run(t, newMock(t, "json"), "nobody")
	assert.True(t, errors.IsNotFound(err))
}
