package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateFormat is the canonical wire and storage format for calendar days.
const DateFormat = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar day with no time-of-day and no timezone. All day-level
// comparisons in the application go through this type, in the UTC calendar,
// so that a record stored on the last day of a month never drifts into the
// neighbouring month depending on the server timezone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates t to its UTC calendar day.
func DateOf(t time.Time) Date {
	year, month, day := t.UTC().Date()
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a YYYY-MM-DD string. A non-parseable value is an error,
// never silently coerced to the current day.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return d.Time().Format(DateFormat)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Equal(other Date) bool {
	return d == other
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// Compare returns -1, 0 or 1 depending on whether d is before, equal to or
// after other. Suitable for slices.SortFunc.
func (d Date) Compare(other Date) int {
	switch {
	case d.Before(other):
		return -1
	case d.After(other):
		return 1
	default:
		return 0
	}
}

func (d Date) AddDays(days int) Date {
	return DateOf(d.Time().AddDate(0, 0, days))
}

// StartOfMonth returns the first day of the month containing d.
func (d Date) StartOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// EndOfMonth returns the last day of the month containing d.
func (d Date) EndOfMonth() Date {
	firstOfNext := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return DateOf(firstOfNext.AddDate(0, 0, -1))
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, data)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
