package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderTable(t *testing.T) {
	out := RenderTable("avg_meal_price",
		[]string{"Type_of_Meal", "average_meal_price"},
		[][]string{
			{"Breakfast", "42.50"},
			{"Lunch", "55.10"},
		},
	)

	assert.Contains(t, out, "avg_meal_price")
	assert.Contains(t, out, "Breakfast")
	assert.Contains(t, out, "55.10")
	assert.Contains(t, out, "2 row(s)")
}

func TestRenderTableEmpty(t *testing.T) {
	out := RenderTable("sales_by_year", []string{"year", "total_invoices"}, nil)
	assert.Contains(t, out, "(no rows)")
}

func TestRenderAudit(t *testing.T) {
	clean := RenderAudit("orders", 500, 0, 0)
	assert.Contains(t, clean, "orders")
	assert.Contains(t, clean, "500")
	assert.Contains(t, clean, "clean")

	dirty := RenderAudit("invoice", 1000, 3, 2)
	assert.Contains(t, dirty, "3 missing")
	assert.Contains(t, dirty, "2 duplicate")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{500 * time.Millisecond, "500ms"},
		{3500 * time.Millisecond, "3.5s"},
		{90 * time.Second, "1m30s"},
		{90 * time.Minute, "1h30m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.duration))
	}
}

func TestGetSuggestion(t *testing.T) {
	assert.Contains(t, getSuggestion("Access denied for user 'etl'"), "username and password")
	assert.Contains(t, getSuggestion("dial tcp: connection refused"), "host/port")
	assert.Contains(t, getSuggestion("a foreign key constraint fails"), "never loaded")
	assert.Empty(t, getSuggestion("something else entirely"))
}
