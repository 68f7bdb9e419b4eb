package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hemicycle"
	"github.com/agentstation/hemicycle/internal/appcontext"
	"github.com/agentstation/hemicycle/pkg/members"
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

func TestExportCSV(t *testing.T) {
	// table is not an export format, so CSV is written
	out, _, err := run(t, newMock(t, "table"))
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, members.RecordHeader, rows[0])
	assert.Equal(t, []string{"Ayşe YILMAZ", "AK Parti", "İstanbul", "ayse.yilmaz@tbmm.gov.tr", "(312) 420 51 01, (312) 420 51 02", ""}, rows[3])
}

func TestExportJSONFiltered(t *testing.T) {
	out, _, err := run(t, newMock(t, "json"), "--party", "chp")
	require.NoError(t, err)

	var got []members.Record
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Fatma DEMİR", got[0].Name)
	assert.Equal(t, "Cumhuriyet Halk Partisi", got[1].Party)
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.csv")

	out, stderr, err := run(t, newMock(t, ""), "--file", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "Exported 5 members")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Name,Party,Province,Email,Phones,Address\n"))
}

func TestExportFileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "members.csv")
	_, _, err := run(t, newMock(t, ""), "--file", path)
	assert.Error(t, err)
}
