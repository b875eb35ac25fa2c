package warehouse

import (
	"context"
	"fmt"
	"time"

	"cartload/pkg/errors"
)

// ViewNamed reports whether name is one of the declared analytical views.
func ViewNamed(name string) bool {
	for _, v := range Views {
		if v.Name == name {
			return true
		}
	}
	return false
}

// QueryView reads rows from one of the analytical views, returning column
// names and stringified cells for display. limit <= 0 reads everything.
func (s *Service) QueryView(ctx context.Context, view string, limit int) ([]string, [][]string, error) {
	if !s.connected {
		return nil, nil, errors.New(errors.ErrCodeConnectionFailed, "Not connected to database")
	}
	if !ViewNamed(view) {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "unknown view").
			WithContext("view", view)
	}

	query := fmt.Sprintf("SELECT * FROM `%s`.`%s`", s.config.Database, view)
	if limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, errors.SQLError("Failed to query view", query, err).
			WithContext("view", view)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		values := make([]interface{}, len(cols))
		valuePtrs := make([]interface{}, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, nil, err
		}

		record := make([]string, len(cols))
		for i, v := range values {
			record[i] = formatCell(v)
		}
		out = append(out, record)
	}

	return cols, out, rows.Err()
}

func formatCell(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(value)
	case time.Time:
		return value.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", value)
	}
}
