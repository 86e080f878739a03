// Package feed projects daily feed rations for a shrimp pond from its
// stocking parameters. Rations follow the usual body-weight-tiered feed
// chart: small animals are fed a large share of their biomass, large animals
// a small one.
package feed

import (
	"github.com/shopspring/decimal"
)

// feedRateTier maps a mean body weight (in grams, upper bound inclusive) to
// the daily feeding rate as a percentage of biomass.
type feedRateTier struct {
	maxBodyWeightG decimal.Decimal
	ratePercent    decimal.Decimal
}

var feedRateTiers = []feedRateTier{
	{decimal.NewFromInt(1), decimal.NewFromFloat(10.0)},
	{decimal.NewFromInt(3), decimal.NewFromFloat(7.0)},
	{decimal.NewFromInt(5), decimal.NewFromFloat(5.5)},
	{decimal.NewFromInt(10), decimal.NewFromFloat(4.0)},
	{decimal.NewFromInt(15), decimal.NewFromFloat(3.2)},
	{decimal.NewFromInt(20), decimal.NewFromFloat(2.8)},
	{decimal.NewFromInt(25), decimal.NewFromFloat(2.4)},
}

// defaultRatePercent applies above the last tier.
var defaultRatePercent = decimal.NewFromFloat(2.0)

// weeklyGrowthG is the assumed mean weight gain per week used for
// projections.
var weeklyGrowthG = decimal.NewFromFloat(1.2)

// FeedRatePercent returns the daily feeding rate for the given mean body
// weight, as a percentage of total biomass.
func FeedRatePercent(bodyWeightG decimal.Decimal) decimal.Decimal {
	for _, tier := range feedRateTiers {
		if bodyWeightG.LessThanOrEqual(tier.maxBodyWeightG) {
			return tier.ratePercent
		}
	}
	return defaultRatePercent
}

// Biomass returns the stock biomass in kilograms for a population of the
// given size and mean body weight in grams.
func Biomass(population decimal.Decimal, bodyWeightG decimal.Decimal) decimal.Decimal {
	return population.Mul(bodyWeightG).Div(decimal.NewFromInt(1000))
}

// DailyRationKg is the daily feed quantity for the given biomass and mean
// body weight.
func DailyRationKg(biomassKg decimal.Decimal, bodyWeightG decimal.Decimal) decimal.Decimal {
	return biomassKg.Mul(FeedRatePercent(bodyWeightG)).Div(decimal.NewFromInt(100))
}

// ChartRow is one projected week of a feed chart.
type ChartRow struct {
	Week           int
	BodyWeightG    decimal.Decimal
	BiomassKg      decimal.Decimal
	RatePercent    decimal.Decimal
	DailyRationKg  decimal.Decimal
	WeeklyRationKg decimal.Decimal
}

// Chart projects a feed chart over the given number of weeks, starting from
// the current population and mean body weight. Growth is assumed linear at
// the default weekly gain.
func Chart(population decimal.Decimal, startWeightG decimal.Decimal, weeks int) []ChartRow {
	rows := make([]ChartRow, 0, weeks)
	weight := startWeightG
	for week := 1; week <= weeks; week++ {
		biomass := Biomass(population, weight)
		rate := FeedRatePercent(weight)
		daily := DailyRationKg(biomass, weight)

		rows = append(rows, ChartRow{
			Week:           week,
			BodyWeightG:    weight,
			BiomassKg:      biomass,
			RatePercent:    rate,
			DailyRationKg:  daily,
			WeeklyRationKg: daily.Mul(decimal.NewFromInt(7)),
		})
		weight = weight.Add(weeklyGrowthG)
	}
	return rows
}
