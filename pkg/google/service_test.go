package google

import (
	"testing"
	"time"

	"github.com/farmledger/farmledger/internal/utils"
	"github.com/farmledger/farmledger/pkg/period"
	"github.com/farmledger/farmledger/pkg/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBudgetSheetValues(t *testing.T) {
	// given
	budgetReport := report.BudgetReport{
		ProjectId: 1,
		Period:    period.MonthOf(utils.NewDate(2024, time.March, 15)),
		Lines: []report.BudgetLine{
			{
				Category:    "feed",
				Budgeted:    decimal.NewFromInt(1000),
				ActualSpend: decimal.NewFromInt(1200),
				Delta:       decimal.NewFromInt(-200),
			},
			{
				Category:    "labor",
				Budgeted:    decimal.NewFromInt(500),
				ActualSpend: decimal.Zero,
				Delta:       decimal.NewFromInt(500),
			},
		},
		TotalBudgeted: decimal.NewFromInt(1500),
		TotalSpend:    decimal.NewFromInt(1200),
		TotalDelta:    decimal.NewFromInt(300),
	}

	// when
	values := budgetSheetValues(budgetReport)

	// then
	assert.Equal(t, [][]interface{}{
		{"Category", "Budgeted", "Spent", "Delta"},
		{"feed", "1000", "1200", "-200"},
		{"labor", "500", "0", "500"},
		{"TOTAL", "1500", "1200", "300"},
	}, values)
}

func TestBudgetSheetValues_EmptyReport(t *testing.T) {
	// given
	budgetReport := report.BudgetReport{
		ProjectId:     7,
		Period:        period.MonthOf(utils.NewDate(2024, time.March, 15)),
		TotalBudgeted: decimal.Zero,
		TotalSpend:    decimal.Zero,
		TotalDelta:    decimal.Zero,
	}

	// when
	values := budgetSheetValues(budgetReport)

	// then
	assert.Equal(t, [][]interface{}{
		{"Category", "Budgeted", "Spent", "Delta"},
		{"TOTAL", "0", "0", "0"},
	}, values)
}
