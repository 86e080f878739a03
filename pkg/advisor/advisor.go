// Package advisor turns farm measurements into prioritized, actionable
// recommendations using fixed threshold rules.
package advisor

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
	PriorityInfo     Priority = "INFO"
)

var priorityRank = map[Priority]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityLow:      3,
	PriorityInfo:     4,
}

type Recommendation struct {
	Priority Priority
	Category string
	Action   string
	Reason   string
}

// Conditions carries the measurements the rules evaluate. Nil fields are
// treated as not measured and produce no recommendation.
type Conditions struct {
	PH              *decimal.Decimal
	DissolvedOxygen *decimal.Decimal
	TemperatureC    *decimal.Decimal
	AmmoniaMgL      *decimal.Decimal
	FCR             *decimal.Decimal
	GrowthRateGWeek *decimal.Decimal
	SurvivalRatePct *decimal.Decimal
	// OverspentCategories lists budget categories whose spend exceeds their
	// budgeted amount, with the overrun amount.
	OverspentCategories map[string]decimal.Decimal
}

var (
	phMin        = decimal.RequireFromString("7.5")
	phMax        = decimal.RequireFromString("8.5")
	doCritical   = decimal.RequireFromString("4.0")
	ammoniaSafe  = decimal.RequireFromString("0.5")
	ammoniaHigh  = decimal.RequireFromString("1.0")
	tempMin      = decimal.NewFromInt(26)
	tempMax      = decimal.NewFromInt(32)
	fcrHigh      = decimal.RequireFromString("1.8")
	fcrExcellent = decimal.RequireFromString("1.0")
	growthTarget = decimal.RequireFromString("1.0")
	survivalMin  = decimal.NewFromInt(70)
)

// Evaluate applies every threshold rule to the given conditions and returns
// the matching recommendations ordered by priority.
func Evaluate(conditions Conditions) []Recommendation {
	var recommendations []Recommendation

	if ph := conditions.PH; ph != nil {
		if ph.LessThan(phMin) {
			recommendations = append(recommendations, Recommendation{
				Priority: PriorityHigh,
				Category: "water_quality",
				Action:   "Increase pH using calcium carbonate (lime)",
				Reason:   fmt.Sprintf("pH (%s) is below the optimal range (7.5-8.5)", ph),
			})
		} else if ph.GreaterThan(phMax) {
			recommendations = append(recommendations, Recommendation{
				Priority: PriorityMedium,
				Category: "water_quality",
				Action:   "Reduce pH by increasing aeration and water exchange",
				Reason:   fmt.Sprintf("pH (%s) is above the optimal range (7.5-8.5)", ph),
			})
		}
	}

	if do := conditions.DissolvedOxygen; do != nil && do.LessThan(doCritical) {
		recommendations = append(recommendations, Recommendation{
			Priority: PriorityCritical,
			Category: "water_quality",
			Action:   "Increase aeration immediately",
			Reason:   fmt.Sprintf("dissolved oxygen (%s mg/L) is critically low (min 4 mg/L)", do),
		})
	}

	if ammonia := conditions.AmmoniaMgL; ammonia != nil && ammonia.GreaterThan(ammoniaSafe) {
		priority := PriorityMedium
		if ammonia.GreaterThan(ammoniaHigh) {
			priority = PriorityHigh
		}
		recommendations = append(recommendations, Recommendation{
			Priority: priority,
			Category: "water_quality",
			Action:   "Reduce ammonia through water exchange and probiotics",
			Reason:   fmt.Sprintf("ammonia (%s mg/L) exceeds the safe level (0.5 mg/L)", ammonia),
		})
	}

	if temp := conditions.TemperatureC; temp != nil {
		if temp.LessThan(tempMin) {
			recommendations = append(recommendations, Recommendation{
				Priority: PriorityMedium,
				Category: "water_quality",
				Action:   "Monitor temperature closely; consider heating if it drops further",
				Reason:   fmt.Sprintf("temperature (%s C) is below the optimal range (28-32 C)", temp),
			})
		} else if temp.GreaterThan(tempMax) {
			recommendations = append(recommendations, Recommendation{
				Priority: PriorityMedium,
				Category: "water_quality",
				Action:   "Increase water depth and exchange to reduce temperature",
				Reason:   fmt.Sprintf("temperature (%s C) is above the optimal range (28-32 C)", temp),
			})
		}
	}

	if fcr := conditions.FCR; fcr != nil {
		if fcr.GreaterThan(fcrHigh) {
			recommendations = append(recommendations, Recommendation{
				Priority: PriorityHigh,
				Category: "feeding",
				Action:   "Reduce feed quantity by 10% and increase feeding frequency",
				Reason:   fmt.Sprintf("FCR (%s) is above the target range (1.2-1.5)", fcr),
			})
		} else if fcr.LessThan(fcrExcellent) {
			recommendations = append(recommendations, Recommendation{
				Priority: PriorityInfo,
				Category: "feeding",
				Action:   "Maintain current feeding practices",
				Reason:   fmt.Sprintf("FCR (%s) is exceptionally good", fcr),
			})
		}
	}

	if growth := conditions.GrowthRateGWeek; growth != nil && growth.LessThan(growthTarget) {
		recommendations = append(recommendations, Recommendation{
			Priority: PriorityMedium,
			Category: "feeding",
			Action:   "Increase protein content in feed (38-40% protein)",
			Reason:   fmt.Sprintf("growth rate (%s g/week) is below the target (1.5 g/week)", growth),
		})
	}

	if survival := conditions.SurvivalRatePct; survival != nil && survival.LessThan(survivalMin) {
		recommendations = append(recommendations, Recommendation{
			Priority: PriorityHigh,
			Category: "production",
			Action:   "Enhance biosecurity and reduce stocking density",
			Reason:   fmt.Sprintf("survival rate (%s%%) is below the target (80%%)", survival),
		})
	}

	overspent := make([]string, 0, len(conditions.OverspentCategories))
	for category := range conditions.OverspentCategories {
		overspent = append(overspent, category)
	}
	sort.Strings(overspent)
	for _, category := range overspent {
		overrun := conditions.OverspentCategories[category]
		recommendations = append(recommendations, Recommendation{
			Priority: PriorityHigh,
			Category: "financial",
			Action:   fmt.Sprintf("Review %s spending: negotiate prices or switch supplier", category),
			Reason:   fmt.Sprintf("%s spend exceeds its budget by %s", category, overrun),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return priorityRank[recommendations[i].Priority] < priorityRank[recommendations[j].Priority]
	})
	return recommendations
}
