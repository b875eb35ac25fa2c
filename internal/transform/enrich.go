package transform

import (
	"regexp"
	"strings"
	"time"

	"cartload/pkg/models"
)

// participantPattern extracts every single-quoted substring from the raw
// participant field, e.g. "['Alice Mann', 'Bob Day']".
var participantPattern = regexp.MustCompile(`'(.*?)'`)

// ClassifyTimeOfDay maps a meal timestamp to its part-of-day bucket using the
// hour component only. The six inclusive ranges partition all 24 hours:
//
//	 5-8   Early Morning
//	 9-12  Late Morning
//	13-15  Early Afternoon
//	16-19  Evening
//	20-23  Night
//	 0-4   Late Night
func ClassifyTimeOfDay(ts time.Time) models.PartOfDay {
	return PartOfDayForHour(ts.Hour())
}

// PartOfDayForHour classifies a bare hour of day (0-23).
func PartOfDayForHour(hour int) models.PartOfDay {
	switch {
	case hour >= 5 && hour <= 8:
		return models.EarlyMorning
	case hour >= 9 && hour <= 12:
		return models.LateMorning
	case hour >= 13 && hour <= 15:
		return models.EarlyAfternoon
	case hour >= 16 && hour <= 19:
		return models.Evening
	case hour >= 20 && hour <= 23:
		return models.Night
	default: // 0-4
		return models.LateNight
	}
}

// ExtractParticipants returns every quoted name in the raw field, in the
// order it appears. An empty or unquoted field yields no names.
func ExtractParticipants(raw string) []string {
	matches := participantPattern.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// CountQuoteDelimited is the legacy participant count: half the number of
// quote characters in the raw field. It matches len(ExtractParticipants) on
// well-formed input but undercounts silently when a name itself contains a
// quote, which is why the stored count uses the extractor instead.
func CountQuoteDelimited(raw string) int {
	return strings.Count(raw, "'") / 2
}
