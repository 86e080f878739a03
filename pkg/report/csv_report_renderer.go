package report

import (
	"bytes"
	"encoding/csv"

	log "github.com/sirupsen/logrus"
)

type BudgetReportRenderer interface {
	RenderBudgetReport(report BudgetReport) (string, error)
}

type CsvBudgetReportRenderer struct {
}

func NewCsvBudgetReportRenderer() *CsvBudgetReportRenderer {
	return &CsvBudgetReportRenderer{}
}

func (t *CsvBudgetReportRenderer) RenderBudgetReport(report BudgetReport) (string, error) {
	data := make([][]string, 0, len(report.Lines)+2)
	data = append(data, []string{"Category", "Budgeted", "Spent", "Delta"})
	for _, line := range report.Lines {
		data = append(data, []string{
			line.Category,
			line.Budgeted.String(),
			line.ActualSpend.String(),
			line.Delta.String(),
		})
	}
	data = append(data, []string{
		"TOTAL",
		report.TotalBudgeted.String(),
		report.TotalSpend.String(),
		report.TotalDelta.String(),
	})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
