package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cartload/pkg/errors"
)

const invoicesCSV = `Order Id,Date,Meal Id,Company Id,Date of Meal,Participants,Meal Price,Type of Meal
ORD-1,10-01-2023,MEAL-1,CMP-1,2023-01-05 12:30:00+01:00,"['Alice Mann', 'Bob Day']",120,Lunch
ORD-2,11-01-2023,MEAL-2,CMP-2,2023-01-06 19:00:00+00:00,"['Alice Mann']",85,Dinner
`

func TestFetchFromHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(invoicesCSV))
	}))
	defer server.Close()

	table, err := NewFetcher().Fetch(context.Background(), "invoices", server.URL)
	require.NoError(t, err)

	assert.Equal(t, "invoices", table.Name)
	assert.Equal(t, []string{"Order Id", "Date", "Meal Id", "Company Id", "Date of Meal", "Participants", "Meal Price", "Type of Meal"}, table.Columns)
	assert.Len(t, table.Rows, 2)

	value, err := table.Get(table.Rows[0], "Participants")
	require.NoError(t, err)
	assert.Equal(t, "['Alice Mann', 'Bob Day']", value)
}

func TestFetchFromHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewFetcher().Fetch(context.Background(), "invoices", server.URL)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSourceUnavailable, errors.GetErrorCode(err))
}

func TestFetchFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.csv")
	require.NoError(t, os.WriteFile(path, []byte(invoicesCSV), 0600))

	table, err := NewFetcher().Fetch(context.Background(), "invoices", path)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestFetchMissingFile(t *testing.T) {
	_, err := NewFetcher().Fetch(context.Background(), "invoices", "/does/not/exist.csv")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSourceUnavailable, errors.GetErrorCode(err))
}

func TestNewRawTable(t *testing.T) {
	t.Run("rejects empty header", func(t *testing.T) {
		_, err := NewRawTable("orders", nil, nil)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeSourceFormat, errors.GetErrorCode(err))
	})

	t.Run("rejects ragged rows", func(t *testing.T) {
		_, err := NewRawTable("orders", []string{"a", "b"}, [][]string{{"1"}})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeSourceFormat, errors.GetErrorCode(err))
	})
}

func TestColumnLookup(t *testing.T) {
	table, err := NewRawTable("orders", []string{"Order Id", "Company Id"}, [][]string{{"ORD-1", "CMP-1"}})
	require.NoError(t, err)

	_, err = table.Get(table.Rows[0], "Nope")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMissingColumn, errors.GetErrorCode(err))
}

func TestRenameColumns(t *testing.T) {
	table, err := NewRawTable("orders", []string{"Order Id", "Company Id"}, [][]string{{"ORD-1", "CMP-1"}})
	require.NoError(t, err)

	table.RenameColumns(func(s string) string { return s + "_x" })

	value, err := table.Get(table.Rows[0], "Order Id_x")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", value)

	_, err = table.Get(table.Rows[0], "Order Id")
	assert.Error(t, err)
}

func TestAudit(t *testing.T) {
	table, err := NewRawTable("salesteam",
		[]string{"Sales Rep", "Company Id"},
		[][]string{
			{"Smith", "CMP-1"},
			{"Smith", "CMP-1"},
			{"", "CMP-2"},
			{"Jones", "  "},
		})
	require.NoError(t, err)

	audit := table.Audit()
	assert.Equal(t, 4, audit.Rows)
	assert.Equal(t, 2, audit.Missing)
	assert.Equal(t, 1, audit.Duplicates)
}
