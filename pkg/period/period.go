package period

import (
	"github.com/farmledger/farmledger/internal/utils"
)

// Period is an inclusive calendar-day range. All aggregation in the
// application is keyed on calendar months, but the range itself is generic.
type Period struct {
	Start utils.Date
	End   utils.Date
}

// MonthOf returns the calendar month containing the reference day, inclusive
// on both ends.
func MonthOf(reference utils.Date) Period {
	return Period{
		Start: reference.StartOfMonth(),
		End:   reference.EndOfMonth(),
	}
}

// Contains reports whether d falls inside the period, boundaries included.
func (p Period) Contains(d utils.Date) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

// FilterByDate returns the subset of records whose date, as reported by
// dateOf, lies within the period. Input order is preserved. An empty input
// yields an empty (nil) output.
func FilterByDate[T any](p Period, records []T, dateOf func(T) utils.Date) []T {
	var filtered []T
	for _, record := range records {
		if p.Contains(dateOf(record)) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}
