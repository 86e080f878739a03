package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("should parse a valid date", func(t *testing.T) {
		date, err := ParseDate("2024-03-15")
		require.NoError(t, err)
		assert.Equal(t, NewDate(2024, time.March, 15), date)
	})

	t.Run("should fail on a non-parseable date instead of coercing", func(t *testing.T) {
		_, err := ParseDate("15/03/2024")
		assert.ErrorIs(t, err, ErrInvalidDate)

		_, err = ParseDate("")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestDateOf(t *testing.T) {
	t.Run("should truncate to the UTC calendar day", func(t *testing.T) {
		warsaw, err := time.LoadLocation("Europe/Warsaw")
		require.NoError(t, err)

		// 00:30 local on March 1st is still February 29th in UTC
		local := time.Date(2024, time.March, 1, 0, 30, 0, 0, warsaw)
		assert.Equal(t, NewDate(2024, time.February, 29), DateOf(local))
	})
}

func TestDate_MonthBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		date  Date
		start Date
		end   Date
	}{
		{
			name:  "mid-month reference",
			date:  NewDate(2024, time.March, 15),
			start: NewDate(2024, time.March, 1),
			end:   NewDate(2024, time.March, 31),
		},
		{
			name:  "february in a leap year",
			date:  NewDate(2024, time.February, 10),
			start: NewDate(2024, time.February, 1),
			end:   NewDate(2024, time.February, 29),
		},
		{
			name:  "december rolls into next year correctly",
			date:  NewDate(2023, time.December, 31),
			start: NewDate(2023, time.December, 1),
			end:   NewDate(2023, time.December, 31),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.start, tt.date.StartOfMonth())
			assert.Equal(t, tt.end, tt.date.EndOfMonth())
		})
	}
}

func TestDate_Compare(t *testing.T) {
	earlier := NewDate(2024, time.March, 5)
	later := NewDate(2024, time.March, 12)

	assert.Equal(t, -1, earlier.Compare(later))
	assert.Equal(t, 1, later.Compare(earlier))
	assert.Equal(t, 0, earlier.Compare(earlier))
	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
}

func TestDate_JSON(t *testing.T) {
	t.Run("should round-trip through JSON as YYYY-MM-DD", func(t *testing.T) {
		date := NewDate(2024, time.March, 2)
		encoded, err := json.Marshal(date)
		require.NoError(t, err)
		assert.Equal(t, `"2024-03-02"`, string(encoded))

		var decoded Date
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, date, decoded)
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		var decoded Date
		err := json.Unmarshal([]byte(`"yesterday"`), &decoded)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}
