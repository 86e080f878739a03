// Package finance evaluates the economics of a single production cycle:
// projected yield, return on investment, break-even points and risk factors.
package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FixedCosts are capital investments that do not vary with the cycle.
type FixedCosts struct {
	PondLease       decimal.Decimal
	Equipment       decimal.Decimal
	Infrastructure  decimal.Decimal
	PermitsLicenses decimal.Decimal
	Insurance       decimal.Decimal
	Depreciation    decimal.Decimal
}

func (c FixedCosts) Total() decimal.Decimal {
	return c.PondLease.
		Add(c.Equipment).
		Add(c.Infrastructure).
		Add(c.PermitsLicenses).
		Add(c.Insurance).
		Add(c.Depreciation)
}

// VariableCosts are operating costs of one cycle.
type VariableCosts struct {
	Postlarvae     decimal.Decimal
	Feed           decimal.Decimal
	Labor          decimal.Decimal
	Electricity    decimal.Decimal
	Fuel           decimal.Decimal
	Medication     decimal.Decimal
	WaterTreatment decimal.Decimal
	Maintenance    decimal.Decimal
	Miscellaneous  decimal.Decimal
}

func (c VariableCosts) Total() decimal.Decimal {
	return c.Postlarvae.
		Add(c.Feed).
		Add(c.Labor).
		Add(c.Electricity).
		Add(c.Fuel).
		Add(c.Medication).
		Add(c.WaterTreatment).
		Add(c.Maintenance).
		Add(c.Miscellaneous)
}

type ProductionMetrics struct {
	// PondAreaHa is the culture area in hectares.
	PondAreaHa decimal.Decimal
	// StockingDensity is animals per square meter.
	StockingDensity decimal.Decimal
	// AverageBodyWeightG is the mean harvest weight in grams.
	AverageBodyWeightG decimal.Decimal
	// SurvivalRatePct is a percentage between 0 and 100.
	SurvivalRatePct  decimal.Decimal
	FCR              decimal.Decimal
	CulturePeriodD   int
	MarketPricePerKg decimal.Decimal
}

type AnalysisResult struct {
	TotalInvestment decimal.Decimal
	TotalCosts      decimal.Decimal
	TotalRevenue    decimal.Decimal
	NetProfit       decimal.Decimal
	ROIPct          decimal.Decimal
	ProfitMarginPct decimal.Decimal

	BreakEvenPrice decimal.Decimal
	BreakEvenYield decimal.Decimal
	BreakEvenDays  int

	TotalYieldKg decimal.Decimal
	CostPerKg    decimal.Decimal
	RevenuePerKg decimal.Decimal
	ProfitPerKg  decimal.Decimal

	BenefitCostRatio    decimal.Decimal
	PaybackPeriodMonths decimal.Decimal

	RiskScore       int
	RiskFactors     []string
	Recommendations []string
}

var (
	hundred        = decimal.NewFromInt(100)
	thousand       = decimal.NewFromInt(1000)
	m2PerHectare   = decimal.NewFromInt(10000)
	daysPerYear    = decimal.NewFromInt(365)
	monthsPerYear  = decimal.NewFromInt(12)
	noPaybackValue = decimal.NewFromInt(999)
)

// ProjectedYieldKg computes the expected harvest weight from the stocking
// parameters: area times density gives the stocked population, survival
// shrinks it, and the mean body weight converts animals to kilograms.
func ProjectedYieldKg(metrics ProductionMetrics) decimal.Decimal {
	areaM2 := metrics.PondAreaHa.Mul(m2PerHectare)
	stocked := areaM2.Mul(metrics.StockingDensity)
	harvested := stocked.Mul(metrics.SurvivalRatePct).Div(hundred)
	return harvested.Mul(metrics.AverageBodyWeightG).Div(thousand)
}

// Analyze computes the full financial picture of one production cycle.
func Analyze(fixed FixedCosts, variable VariableCosts, metrics ProductionMetrics) AnalysisResult {
	totalYield := ProjectedYieldKg(metrics)

	totalInvestment := fixed.Total()
	operationalCosts := variable.Total()
	totalCosts := totalInvestment.Add(operationalCosts)

	totalRevenue := totalYield.Mul(metrics.MarketPricePerKg)
	netProfit := totalRevenue.Sub(totalCosts)

	result := AnalysisResult{
		TotalInvestment: totalInvestment,
		TotalCosts:      totalCosts,
		TotalRevenue:    totalRevenue,
		NetProfit:       netProfit,
		TotalYieldKg:    totalYield,
	}

	if totalCosts.IsPositive() {
		result.ROIPct = netProfit.Div(totalCosts).Mul(hundred)
		result.BenefitCostRatio = totalRevenue.Div(totalCosts)
	}
	if totalRevenue.IsPositive() {
		result.ProfitMarginPct = netProfit.Div(totalRevenue).Mul(hundred)
	}

	if totalYield.IsPositive() {
		result.BreakEvenPrice = totalCosts.Div(totalYield)
		result.CostPerKg = totalCosts.Div(totalYield)
		result.RevenuePerKg = totalRevenue.Div(totalYield)
		result.ProfitPerKg = netProfit.Div(totalYield)
	}
	if metrics.MarketPricePerKg.IsPositive() {
		result.BreakEvenYield = totalCosts.Div(metrics.MarketPricePerKg)
	}

	result.BreakEvenDays = breakEvenDays(totalInvestment, operationalCosts, totalRevenue, metrics.CulturePeriodD)
	result.PaybackPeriodMonths = paybackMonths(totalInvestment, netProfit, metrics.CulturePeriodD)

	result.RiskScore, result.RiskFactors = assessRisk(result, metrics)
	result.Recommendations = recommendations(result, metrics)
	return result
}

func breakEvenDays(investment, operationalCosts, revenue decimal.Decimal, culturePeriod int) int {
	if culturePeriod <= 0 {
		return 0
	}
	period := decimal.NewFromInt(int64(culturePeriod))
	dailyRevenue := revenue.Div(period)
	dailyCosts := operationalCosts.Div(period)
	if dailyRevenue.GreaterThan(dailyCosts) {
		return int(investment.Div(dailyRevenue.Sub(dailyCosts)).IntPart())
	}
	return culturePeriod * 2
}

func paybackMonths(investment, netProfit decimal.Decimal, culturePeriod int) decimal.Decimal {
	if culturePeriod <= 0 || !netProfit.IsPositive() {
		return noPaybackValue
	}
	cyclesPerYear := daysPerYear.Div(decimal.NewFromInt(int64(culturePeriod)))
	annualProfit := netProfit.Mul(cyclesPerYear)
	return investment.Div(annualProfit).Mul(monthsPerYear)
}

func assessRisk(result AnalysisResult, metrics ProductionMetrics) (int, []string) {
	var factors []string
	score := 0

	if result.ProfitMarginPct.LessThan(decimal.NewFromInt(10)) {
		factors = append(factors, "low profit margin (<10%)")
		score += 20
	} else if result.ProfitMarginPct.LessThan(decimal.NewFromInt(20)) {
		factors = append(factors, "moderate profit margin (10-20%)")
		score += 10
	}

	if metrics.FCR.GreaterThan(decimal.RequireFromString("1.8")) {
		factors = append(factors, "poor feed efficiency (FCR >1.8)")
		score += 15
	} else if metrics.FCR.GreaterThan(decimal.RequireFromString("1.5")) {
		factors = append(factors, "moderate feed efficiency (FCR 1.5-1.8)")
		score += 8
	}

	if metrics.SurvivalRatePct.LessThan(decimal.NewFromInt(60)) {
		factors = append(factors, "low survival rate (<60%)")
		score += 25
	} else if metrics.SurvivalRatePct.LessThan(decimal.NewFromInt(75)) {
		factors = append(factors, "moderate survival rate (60-75%)")
		score += 12
	}

	if result.PaybackPeriodMonths.GreaterThan(decimal.NewFromInt(24)) {
		factors = append(factors, "long payback period (>2 years)")
		score += 15
	} else if result.PaybackPeriodMonths.GreaterThan(decimal.NewFromInt(18)) {
		factors = append(factors, "moderate payback period (18-24 months)")
		score += 8
	}

	if result.ROIPct.IsNegative() {
		factors = append(factors, "negative ROI, operation not profitable")
		score += 40
	} else if result.ROIPct.LessThan(decimal.NewFromInt(15)) {
		factors = append(factors, "low ROI (<15%)")
		score += 20
	}

	if result.BreakEvenPrice.GreaterThan(metrics.MarketPricePerKg) {
		factors = append(factors, "break-even price above market price")
		score += 30
	}

	if score > 100 {
		score = 100
	}
	return score, factors
}

func recommendations(result AnalysisResult, metrics ProductionMetrics) []string {
	var recs []string

	if metrics.FCR.GreaterThan(decimal.RequireFromString("1.5")) {
		recs = append(recs, fmt.Sprintf(
			"Improve FCR from %s to 1.3-1.5: optimize feeding frequency and monitor water quality", metrics.FCR))
	}
	if metrics.SurvivalRatePct.LessThan(decimal.NewFromInt(75)) {
		recs = append(recs, fmt.Sprintf(
			"Increase survival rate from %s%% to 80%%+: tighten biosecurity and monitor water quality", metrics.SurvivalRatePct))
	}
	if result.CostPerKg.GreaterThan(result.RevenuePerKg.Mul(decimal.RequireFromString("0.7"))) {
		recs = append(recs, "Reduce production costs: negotiate bulk feed prices and optimize labor")
	}
	if result.BreakEvenPrice.GreaterThan(metrics.MarketPricePerKg.Mul(decimal.RequireFromString("0.9"))) {
		recs = append(recs, "Explore premium markets: certification or direct sales for better prices")
	}
	if result.ROIPct.LessThan(decimal.NewFromInt(20)) {
		recs = append(recs, "ROI below target: focus on FCR and survival rate improvements")
	}

	return recs
}
