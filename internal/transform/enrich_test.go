package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cartload/pkg/models"
)

func TestPartOfDayForHourBoundaries(t *testing.T) {
	tests := []struct {
		hour int
		want models.PartOfDay
	}{
		{0, models.LateNight},
		{4, models.LateNight},
		{5, models.EarlyMorning},
		{8, models.EarlyMorning}, // upper bound inclusive
		{9, models.LateMorning},
		{12, models.LateMorning},
		{13, models.EarlyAfternoon},
		{15, models.EarlyAfternoon},
		{16, models.Evening},
		{19, models.Evening},
		{20, models.Night},
		{23, models.Night},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PartOfDayForHour(tt.hour), "hour %d", tt.hour)
	}
}

func TestPartOfDayPartitionsAllHours(t *testing.T) {
	// Every hour maps to exactly one of the six buckets, and every bucket is
	// reachable: no gaps, no overlaps.
	counts := make(map[models.PartOfDay]int)
	for hour := 0; hour < 24; hour++ {
		label := PartOfDayForHour(hour)
		assert.Contains(t, models.PartsOfDay, label, "hour %d produced unknown label", hour)
		counts[label]++
	}

	assert.Len(t, counts, 6)
	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, 24, total)
}

func TestClassifyTimeOfDayUsesHourOnly(t *testing.T) {
	// Minutes and seconds never move a meal between buckets.
	ts := time.Date(2023, 1, 5, 8, 59, 59, 0, time.UTC)
	assert.Equal(t, models.EarlyMorning, ClassifyTimeOfDay(ts))

	ts = time.Date(2023, 1, 5, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, models.LateMorning, ClassifyTimeOfDay(ts))
}

func TestExtractParticipants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "two names",
			raw:  "['Alice Mann', 'Bob Day']",
			want: []string{"Alice Mann", "Bob Day"},
		},
		{
			name: "single name",
			raw:  "['Alice Mann']",
			want: []string{"Alice Mann"},
		},
		{
			name: "empty list",
			raw:  "[]",
			want: nil,
		},
		{
			name: "empty field",
			raw:  "",
			want: nil,
		},
		{
			name: "order preserved",
			raw:  "['Zed', 'Amy', 'Mia']",
			want: []string{"Zed", "Amy", "Mia"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractParticipants(tt.raw))
		})
	}
}

func TestCountQuoteDelimited(t *testing.T) {
	assert.Equal(t, 2, CountQuoteDelimited("['Alice', 'Bob']"))
	assert.Equal(t, 0, CountQuoteDelimited(""))
	assert.Equal(t, 0, CountQuoteDelimited("[]"))
}

func TestCountMatchesExtractorOnWellFormedInput(t *testing.T) {
	inputs := []string{
		"['Alice Mann', 'Bob Day']",
		"['Alice Mann']",
		"[]",
		"['A', 'B', 'C', 'D']",
	}
	for _, raw := range inputs {
		assert.Equal(t, len(ExtractParticipants(raw)), CountQuoteDelimited(raw), "input %q", raw)
	}
}

func TestCountDivergesOnEmbeddedQuote(t *testing.T) {
	// A quote inside a name breaks the halving heuristic: five quote
	// characters floor-divide to 2, and the extractor mis-splits as well.
	// This is the documented structural-proxy boundary, not a runtime error.
	raw := "['Bryon O'Neal', 'Bob Day']"
	assert.Equal(t, 2, CountQuoteDelimited(raw))
	assert.NotEqual(t, []string{"Bryon O'Neal", "Bob Day"}, ExtractParticipants(raw))
}
