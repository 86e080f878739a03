package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func profitableMetrics() ProductionMetrics {
	return ProductionMetrics{
		PondAreaHa:         decimal.RequireFromString("0.5"),
		StockingDensity:    decimal.NewFromInt(60),
		AverageBodyWeightG: decimal.NewFromInt(20),
		SurvivalRatePct:    decimal.NewFromInt(80),
		FCR:                decimal.RequireFromString("1.4"),
		CulturePeriodD:     120,
		MarketPricePerKg:   decimal.NewFromInt(6),
	}
}

func TestProjectedYieldKg(t *testing.T) {
	// 0.5 ha = 5000 m2, x60/m2 = 300000 stocked, x80% = 240000 harvested,
	// x20 g = 4800 kg
	yield := ProjectedYieldKg(profitableMetrics())

	assert.True(t, decimal.NewFromInt(4800).Equal(yield), "got %s", yield)
}

func TestAnalyze_ProfitableCycle(t *testing.T) {
	fixed := FixedCosts{Equipment: decimal.NewFromInt(5000)}
	variable := VariableCosts{
		Feed:  decimal.NewFromInt(8000),
		Labor: decimal.NewFromInt(3000),
	}

	result := Analyze(fixed, variable, profitableMetrics())

	// revenue 4800 x 6 = 28800, costs 16000, profit 12800
	assert.True(t, decimal.NewFromInt(28800).Equal(result.TotalRevenue))
	assert.True(t, decimal.NewFromInt(16000).Equal(result.TotalCosts))
	assert.True(t, decimal.NewFromInt(12800).Equal(result.NetProfit))
	assert.True(t, decimal.NewFromInt(80).Equal(result.ROIPct), "got %s", result.ROIPct)
	// break-even price = 16000 / 4800
	assert.True(t, result.BreakEvenPrice.LessThan(profitableMetrics().MarketPricePerKg))
	assert.True(t, result.BenefitCostRatio.GreaterThan(decimal.NewFromInt(1)))
	assert.True(t, result.PaybackPeriodMonths.LessThan(decimal.NewFromInt(12)))
}

func TestAnalyze_UnprofitableCycle(t *testing.T) {
	fixed := FixedCosts{Equipment: decimal.NewFromInt(20000)}
	variable := VariableCosts{Feed: decimal.NewFromInt(15000)}
	metrics := profitableMetrics()
	metrics.SurvivalRatePct = decimal.NewFromInt(40)

	result := Analyze(fixed, variable, metrics)

	assert.True(t, result.NetProfit.IsNegative())
	assert.True(t, result.ROIPct.IsNegative())
	assert.True(t, decimal.NewFromInt(999).Equal(result.PaybackPeriodMonths))
	assert.Contains(t, result.RiskFactors, "negative ROI, operation not profitable")
	assert.Contains(t, result.RiskFactors, "low survival rate (<60%)")
}

func TestAnalyze_RiskScoreIsCapped(t *testing.T) {
	fixed := FixedCosts{Equipment: decimal.NewFromInt(100000)}
	variable := VariableCosts{Feed: decimal.NewFromInt(50000)}
	metrics := profitableMetrics()
	metrics.SurvivalRatePct = decimal.NewFromInt(30)
	metrics.FCR = decimal.RequireFromString("2.5")

	result := Analyze(fixed, variable, metrics)

	assert.Equal(t, 100, result.RiskScore)
}

func TestAnalyze_ZeroYieldDoesNotPanic(t *testing.T) {
	metrics := profitableMetrics()
	metrics.SurvivalRatePct = decimal.Zero

	result := Analyze(FixedCosts{}, VariableCosts{}, metrics)

	assert.True(t, result.TotalYieldKg.IsZero())
	assert.True(t, result.BreakEvenPrice.IsZero())
}

func TestAnalyze_HealthyCycleHasFewRecommendations(t *testing.T) {
	fixed := FixedCosts{Equipment: decimal.NewFromInt(1000)}
	variable := VariableCosts{Feed: decimal.NewFromInt(5000)}

	result := Analyze(fixed, variable, profitableMetrics())

	assert.Empty(t, result.RiskFactors)
	assert.Zero(t, result.RiskScore)
}
