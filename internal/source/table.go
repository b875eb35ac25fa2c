package source

import (
	"strings"

	"cartload/pkg/errors"
)

// RawTable is one delimited dataset as fetched: a header row plus string
// records. All typing happens later in the transform layer.
type RawTable struct {
	Name    string
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewRawTable builds a table and its column index. Every row must have
// exactly as many fields as the header.
func NewRawTable(name string, columns []string, rows [][]string) (*RawTable, error) {
	if len(columns) == 0 {
		return nil, errors.New(errors.ErrCodeSourceFormat, "dataset has no header row").
			WithContext("table", name)
	}

	index := make(map[string]int, len(columns))
	for i, col := range columns {
		index[col] = i
	}

	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, errors.New(errors.ErrCodeSourceFormat, "row width does not match header").
				WithContext("table", name).
				WithContext("row", i+1).
				WithContext("fields", len(row)).
				WithContext("columns", len(columns))
		}
	}

	return &RawTable{Name: name, Columns: columns, Rows: rows, index: index}, nil
}

// Column returns the index of a column by name.
func (t *RawTable) Column(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, errors.New(errors.ErrCodeMissingColumn, "column not found").
			WithContext("table", t.Name).
			WithContext("column", name)
	}
	return i, nil
}

// Get returns the value of the named column in the given row.
func (t *RawTable) Get(row []string, name string) (string, error) {
	i, err := t.Column(name)
	if err != nil {
		return "", err
	}
	return row[i], nil
}

// RenameColumns rewrites every column name through fn and rebuilds the index.
func (t *RawTable) RenameColumns(fn func(string) string) {
	index := make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		t.Columns[i] = fn(col)
		index[t.Columns[i]] = i
	}
	t.index = index
}

// Audit summarizes the data-quality checks run before staging. The counts are
// informational; nothing here fails a run.
type Audit struct {
	Table      string
	Rows       int
	Missing    int // cells that are empty or whitespace only
	Duplicates int // rows identical to an earlier row
}

// Audit counts missing cells and fully duplicated rows.
func (t *RawTable) Audit() Audit {
	a := Audit{Table: t.Name, Rows: len(t.Rows)}

	seen := make(map[string]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) == "" {
				a.Missing++
			}
		}
		key := strings.Join(row, "\x1f")
		if _, ok := seen[key]; ok {
			a.Duplicates++
		} else {
			seen[key] = struct{}{}
		}
	}

	return a
}
