package transform

import (
	"strings"
	"time"

	"cartload/internal/source"
	"cartload/pkg/errors"
)

// Date layouts used by the raw feeds. Order and invoice service dates arrive
// day-month-year; the meal timestamp is year-month-day with a trailing UTC
// offset that is stripped, not applied.
const (
	layoutOrderDate    = "02-01-2006"
	layoutMealDatetime = "2006-01-02 15:04:05"
)

// NormalizeColumnName canonicalizes a raw column name: spaces become
// underscores ("Order Id" -> "Order_Id").
func NormalizeColumnName(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// NormalizeColumns applies NormalizeColumnName to every column of the table.
func NormalizeColumns(t *source.RawTable) {
	t.RenameColumns(NormalizeColumnName)
}

// ParseOrderDate parses a day-month-year date field. Any mismatch is fatal
// for the run.
func ParseOrderDate(table, column, value string) (time.Time, error) {
	ts, err := time.Parse(layoutOrderDate, value)
	if err != nil {
		return time.Time{}, errors.MalformedInputError(table, column, value, err)
	}
	return ts, nil
}

// ParseMealDatetime parses the meal timestamp. The feed records timestamps
// like "2023-01-05 12:30:00+01:00"; everything from the first '+' on is the
// source offset and is discarded so the stored value stays the naive local
// time as recorded.
func ParseMealDatetime(table, column, value string) (time.Time, error) {
	head, _, _ := strings.Cut(value, "+")
	ts, err := time.Parse(layoutMealDatetime, strings.TrimSpace(head))
	if err != nil {
		return time.Time{}, errors.MalformedInputError(table, column, value, err)
	}
	return ts, nil
}
