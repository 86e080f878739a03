package report

import (
	"testing"
	"time"

	"github.com/farmledger/farmledger/internal/utils"
	"github.com/farmledger/farmledger/pkg/period"
	"github.com/farmledger/farmledger/pkg/project"
	"github.com/farmledger/farmledger/pkg/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvBudgetReportRenderer_RenderBudgetReport(t *testing.T) {
	p := period.MonthOf(utils.NewDate(2024, time.March, 1))
	categories := []project.BudgetCategory{
		{Name: "feed", Amount: decimal.NewFromInt(1000)},
		{Name: "labor", Amount: decimal.NewFromInt(500)},
	}
	transactions := []transaction.Transaction{
		{ProjectID: 3, Category: "feed", Amount: decimal.NewFromInt(1200), Date: utils.NewDate(2024, time.March, 10)},
	}
	budgetReport := BuildBudgetReport(3, p, categories, transactions)

	rendered, err := NewCsvBudgetReportRenderer().RenderBudgetReport(budgetReport)

	require.NoError(t, err)
	expected := "Category,Budgeted,Spent,Delta\n" +
		"feed,1000,1200,-200\n" +
		"labor,500,0,500\n" +
		"TOTAL,1500,1200,300\n"
	assert.Equal(t, expected, rendered)
}
