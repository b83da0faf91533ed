package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/marketplace-console/internal/domain/model"
)

func TestWriteCSV_OneLinePerRow(t *testing.T) {
	rows := []model.User{
		{ID: "u-1", Email: "a@example.com", FirstName: "Ada", LastName: "Lovelace, Countess", Status: model.UserActive},
		{ID: "u-2", Email: "b@example.com", FirstName: `Bob "The Builder"`, Status: model.UserSuspended},
		{ID: "u-3", Email: "c@example.com", FirstName: "Cy"},
	}
	columns := []Column{
		{Header: "ID", Expr: "id"},
		{Header: "Name", Expr: "join(' ', [firstName, lastName])"},
		{Header: "Status", Expr: "status"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, columns, rows))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(rows)+1)
	assert.Equal(t, "ID,Name,Status", lines[0])
	assert.Equal(t, `u-1,"Ada Lovelace, Countess",ACTIVE`, lines[1])
	assert.Equal(t, `u-2,"Bob ""The Builder"" ",SUSPENDED`, lines[2])

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "Ada Lovelace, Countess", records[1][1])
}

func TestWriteCSV_EmbeddedNewlineStaysOneRecord(t *testing.T) {
	rows := []model.Transaction{{ID: "tx-1", Description: "line one\nline two", Amount: model.Pounds(12)}}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []Column{
		{Header: "ID", Expr: "id"},
		{Header: "Description", Expr: "description"},
		{Header: "Amount", Expr: "amount"},
	}, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"tx-1", "line one\nline two", "12.00"}, records[1])
}

func TestWriteCSV_MoneyKeepsPence(t *testing.T) {
	rows := []model.Transaction{
		{ID: "tx-1", Amount: model.Money(12050), Description: "Lead unlock, Leeds"},
		{ID: "tx-2", Amount: model.Money(1999999999999999901)},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []Column{
		{Header: "ID", Expr: "id"},
		{Header: "Amount", Expr: "amount"},
		{Header: "Description", Expr: "description"},
		{Header: "Amounts", Expr: "[amount, amount]"},
		{Header: "Over 100", Expr: "amount > `100`"},
	}, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"tx-1", "120.50", "Lead unlock, Leeds", "120.50; 120.50", "true"}, records[1])
	assert.Equal(t, "19999999999999999.01", records[2][1])
}

func TestWriteCSV_ComputedNumbersUseFloatForm(t *testing.T) {
	rows := []map[string]any{{"items": []int{1, 2, 3}}}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []Column{{Header: "Count", Expr: "length(items)"}, {Header: "Sum", Expr: "sum(items)"}}, rows))
	assert.Equal(t, "Count,Sum\n3,6\n", buf.String())
}

func TestWriteCSV_NoRowsWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV[model.User](&buf, []Column{{Header: "ID", Expr: "id"}}, nil))
	assert.Equal(t, "ID\n", buf.String())
}

func TestWriteCSV_RejectsBadColumns(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, WriteCSV[model.User](&buf, nil, nil))
	require.Error(t, WriteCSV[model.User](&buf, []Column{{Header: "", Expr: "id"}}, nil))
	require.ErrorContains(t, WriteCSV[model.User](&buf, []Column{{Header: "X", Expr: "id[["}}, nil), "invalid expression")
}

func TestCell(t *testing.T) {
	assert.Empty(t, cell(nil, nil))
	assert.Equal(t, "true", cell(true, nil))
	assert.Equal(t, "120.5", cell(120.5, nil))
	assert.Equal(t, "120.50", cell(120.5, json.Number("120.50")))
	assert.Equal(t, "120.5", cell(120.5, json.Number("99.00")), "mismatched exact value is ignored")
	assert.Equal(t, "a; b", cell([]any{"a", "b"}, nil))
	assert.JSONEq(t, `{"k":"v"}`, cell(map[string]any{"k": "v"}, nil))
}

func TestLoadPresets(t *testing.T) {
	p, err := LoadPresets("")
	require.NoError(t, err)
	for _, d := range Datasets {
		pr, err := p.Resolve(d, "")
		require.NoError(t, err, "dataset %s has a default preset", d)
		assert.NotEmpty(t, pr.Columns)
	}
	assert.Equal(t, []string{"users", "users-contact"}, p.Names(DatasetUsers))

	_, err = p.Resolve(DatasetAdmins, "users")
	require.ErrorContains(t, err, "not admins")
	_, err = p.Resolve(DatasetUsers, "nope")
	require.Error(t, err)
}

func TestLoadPresets_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
presets:
  - name: users
    dataset: users
    columns:
      - {header: Email, expr: email}
  - name: finance
    dataset: transactions
    columns:
      - {header: Amount, expr: amount}
`), 0o600))

	p, err := LoadPresets(path)
	require.NoError(t, err)
	users, err := p.Resolve(DatasetUsers, "")
	require.NoError(t, err)
	assert.Equal(t, []Column{{Header: "Email", Expr: "email"}}, users.Columns)
	_, err = p.Resolve(DatasetTransactions, "finance")
	require.NoError(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("presets:\n  - name: x\n    dataset: jobs\n    columns: [{header: A, expr: a}]\n"), 0o600))
	_, err = LoadPresets(bad)
	require.ErrorContains(t, err, "unknown dataset")
}
