package period

import (
	"testing"
	"time"

	"github.com/farmledger/farmledger/internal/utils"
	"github.com/stretchr/testify/assert"
)

type datedRecord struct {
	date utils.Date
	name string
}

func recordDate(r datedRecord) utils.Date {
	return r.date
}

func TestMonthOf(t *testing.T) {
	p := MonthOf(utils.NewDate(2024, time.March, 15))

	assert.Equal(t, utils.NewDate(2024, time.March, 1), p.Start)
	assert.Equal(t, utils.NewDate(2024, time.March, 31), p.End)
}

func TestPeriod_Contains_Boundaries(t *testing.T) {
	p := MonthOf(utils.NewDate(2024, time.March, 15))

	tests := []struct {
		name string
		date utils.Date
		want bool
	}{
		{"first day of month is included", utils.NewDate(2024, time.March, 1), true},
		{"last day of month is included", utils.NewDate(2024, time.March, 31), true},
		{"day before month start is excluded", utils.NewDate(2024, time.February, 28), false},
		{"last day of previous month is excluded", utils.NewDate(2024, time.February, 29), false},
		{"day after month end is excluded", utils.NewDate(2024, time.April, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Contains(tt.date))
		})
	}
}

func TestFilterByDate(t *testing.T) {
	t.Run("should keep only records within the month", func(t *testing.T) {
		p := MonthOf(utils.NewDate(2024, time.March, 15))
		records := []datedRecord{
			{utils.NewDate(2024, time.February, 29), "before"},
			{utils.NewDate(2024, time.March, 1), "start"},
			{utils.NewDate(2024, time.March, 20), "middle"},
			{utils.NewDate(2024, time.March, 31), "end"},
			{utils.NewDate(2024, time.April, 1), "after"},
		}

		filtered := FilterByDate(p, records, recordDate)

		assert.Len(t, filtered, 3)
		assert.Equal(t, "start", filtered[0].name)
		assert.Equal(t, "middle", filtered[1].name)
		assert.Equal(t, "end", filtered[2].name)
	})

	t.Run("should return empty result for empty input", func(t *testing.T) {
		p := MonthOf(utils.NewDate(2024, time.March, 15))

		filtered := FilterByDate(p, nil, recordDate)

		assert.Empty(t, filtered)
	})

	t.Run("should preserve input order", func(t *testing.T) {
		p := MonthOf(utils.NewDate(2024, time.March, 15))
		records := []datedRecord{
			{utils.NewDate(2024, time.March, 20), "later"},
			{utils.NewDate(2024, time.March, 5), "earlier"},
		}

		filtered := FilterByDate(p, records, recordDate)

		assert.Equal(t, "later", filtered[0].name)
		assert.Equal(t, "earlier", filtered[1].name)
	})
}
