package report

import (
	"sort"

	"github.com/farmledger/farmledger/internal/utils"
	"github.com/farmledger/farmledger/pkg/attendance"
	"github.com/farmledger/farmledger/pkg/employee"
	"github.com/farmledger/farmledger/pkg/period"
	"github.com/farmledger/farmledger/pkg/project"
	"github.com/farmledger/farmledger/pkg/transaction"
	"github.com/shopspring/decimal"
)

// AttendanceSummary is the per-employee attendance breakdown of one period.
// Every record of the period falls into exactly one of the three counters.
type AttendanceSummary struct {
	EmployeeId   int
	Period       period.Period
	Present      int
	HalfDay      int
	Absent       int
	AbsenceDates []utils.Date
	OvertimePay  decimal.Decimal
}

// SummarizeAttendance aggregates attendance records into a summary for the
// given period. Records outside the period are ignored. When the input holds
// several records for the same date, the one appearing later wins.
func SummarizeAttendance(employeeId int, p period.Period, records []attendance.Record) AttendanceSummary {
	inPeriod := period.FilterByDate(p, records, func(r attendance.Record) utils.Date {
		return r.Date
	})

	byDate := make(map[utils.Date]attendance.Record, len(inPeriod))
	for _, record := range inPeriod {
		byDate[record.Date] = record
	}

	summary := AttendanceSummary{
		EmployeeId:  employeeId,
		Period:      p,
		OvertimePay: decimal.Zero,
	}
	for _, record := range byDate {
		switch record.Status {
		case attendance.StatusFullDay:
			summary.Present++
		case attendance.StatusHalfDay:
			summary.HalfDay++
		case attendance.StatusAbsent:
			summary.Absent++
			summary.AbsenceDates = append(summary.AbsenceDates, record.Date)
		}
		summary.OvertimePay = summary.OvertimePay.Add(record.OvertimePay())
	}

	sort.Slice(summary.AbsenceDates, func(i, j int) bool {
		return summary.AbsenceDates[i].Before(summary.AbsenceDates[j])
	})
	return summary
}

// BudgetLine compares one category's budgeted amount with its actual spend.
// Delta is budgeted minus spend, so overspending yields a negative delta.
type BudgetLine struct {
	Category    string
	Budgeted    decimal.Decimal
	ActualSpend decimal.Decimal
	Delta       decimal.Decimal
}

type BudgetReport struct {
	ProjectId     int
	Period        period.Period
	Lines         []BudgetLine
	TotalBudgeted decimal.Decimal
	TotalSpend    decimal.Decimal
	TotalDelta    decimal.Decimal
}

// BuildBudgetReport joins budget categories with the period's transactions.
// Categories without spend keep a zero ActualSpend; spend in a category that
// has no budget line still shows up, with a zero Budgeted amount. Lines are
// ordered by category name.
func BuildBudgetReport(projectId int, p period.Period, categories []project.BudgetCategory, transactions []transaction.Transaction) BudgetReport {
	inPeriod := period.FilterByDate(p, transactions, func(t transaction.Transaction) utils.Date {
		return t.Date
	})

	budgeted := make(map[string]decimal.Decimal, len(categories))
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		budgeted[category.Name] = category.Amount
		names = append(names, category.Name)
	}

	spend := make(map[string]decimal.Decimal)
	for _, t := range inPeriod {
		if t.ProjectID != projectId {
			continue
		}
		if _, known := budgeted[t.Category]; !known {
			if _, seen := spend[t.Category]; !seen {
				names = append(names, t.Category)
			}
		}
		spend[t.Category] = spend[t.Category].Add(t.Amount)
	}

	sort.Strings(names)

	report := BudgetReport{
		ProjectId:     projectId,
		Period:        p,
		TotalBudgeted: decimal.Zero,
		TotalSpend:    decimal.Zero,
		TotalDelta:    decimal.Zero,
	}
	for _, name := range names {
		line := BudgetLine{
			Category:    name,
			Budgeted:    budgeted[name],
			ActualSpend: spend[name],
		}
		line.Delta = line.Budgeted.Sub(line.ActualSpend)

		report.Lines = append(report.Lines, line)
		report.TotalBudgeted = report.TotalBudgeted.Add(line.Budgeted)
		report.TotalSpend = report.TotalSpend.Add(line.ActualSpend)
		report.TotalDelta = report.TotalDelta.Add(line.Delta)
	}
	return report
}

// PayrollEntry is one employee's pay for a period: full days at the daily
// wage, half days at half of it, plus any overtime.
type PayrollEntry struct {
	EmployeeId  int
	Name        string
	Summary     AttendanceSummary
	BasePay     decimal.Decimal
	OvertimePay decimal.Decimal
	Total       decimal.Decimal
}

func BuildPayroll(p period.Period, employees []employee.Employee, records []attendance.Record) []PayrollEntry {
	byEmployee := make(map[int][]attendance.Record)
	for _, record := range records {
		byEmployee[record.EmployeeID] = append(byEmployee[record.EmployeeID], record)
	}

	entries := make([]PayrollEntry, 0, len(employees))
	for _, e := range employees {
		summary := SummarizeAttendance(e.ID, p, byEmployee[e.ID])

		fullDays := decimal.NewFromInt(int64(summary.Present))
		halfDays := decimal.NewFromInt(int64(summary.HalfDay)).Div(decimal.NewFromInt(2))
		basePay := e.DailyWage.Mul(fullDays.Add(halfDays))

		entries = append(entries, PayrollEntry{
			EmployeeId:  e.ID,
			Name:        e.Name,
			Summary:     summary,
			BasePay:     basePay,
			OvertimePay: summary.OvertimePay,
			Total:       basePay.Add(summary.OvertimePay),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}
