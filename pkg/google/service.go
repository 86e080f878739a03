package google

import (
	"context"
	"fmt"

	"github.com/farmledger/farmledger/internal/utils"
	"github.com/farmledger/farmledger/pkg/report"
	"github.com/farmledger/farmledger/pkg/user"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var ErrUnauthenticated = fmt.Errorf("user is unauthenticated, authentication is required")

// SpreadsheetExport identifies the spreadsheet created by an export.
type SpreadsheetExport struct {
	SpreadsheetId  string
	SpreadsheetUrl string
	Title          string
}

type Service interface {
	// ExportBudgetReport writes the monthly budget report of a project into a
	// newly created Google spreadsheet owned by the current user.
	ExportBudgetReport(ctx context.Context, projectId int, reference utils.Date) (SpreadsheetExport, error)
}

type ServiceImpl struct {
	auth          *GoogleAuth
	reportService report.Service
}

func NewService(auth *GoogleAuth, reportService report.Service) *ServiceImpl {
	return &ServiceImpl{
		auth:          auth,
		reportService: reportService,
	}
}

func (s *ServiceImpl) ExportBudgetReport(ctx context.Context, projectId int, reference utils.Date) (SpreadsheetExport, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return SpreadsheetExport{}, fmt.Errorf("failed to get current user: %w", err)
	}

	budgetReport, err := s.reportService.BudgetReport(ctx, projectId, reference)
	if err != nil {
		return SpreadsheetExport{}, err
	}

	googleService, err := s.prepareSheetsService(ctx, userId)
	if err != nil {
		return SpreadsheetExport{}, err
	}

	title := fmt.Sprintf("FarmLedger budget %s (project %d)", budgetReport.Period.Start.String()[:7], projectId)
	spreadsheet, err := googleService.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to create spreadsheet: %v", err)
		log.Error(err)
		return SpreadsheetExport{}, err
	}

	values := &sheets.ValueRange{Values: budgetSheetValues(budgetReport)}
	_, err = googleService.Spreadsheets.Values.
		Update(spreadsheet.SpreadsheetId, "A1", values).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		err := fmt.Errorf("unable to write budget report to spreadsheet: %v", err)
		log.Error(err)
		return SpreadsheetExport{}, err
	}

	log.Infof("Exported budget report for project %d to spreadsheet %s", projectId, spreadsheet.SpreadsheetId)
	return SpreadsheetExport{
		SpreadsheetId:  spreadsheet.SpreadsheetId,
		SpreadsheetUrl: spreadsheet.SpreadsheetUrl,
		Title:          title,
	}, nil
}

// budgetSheetValues lays the report out as spreadsheet rows: a header, one row
// per category and a trailing totals row.
func budgetSheetValues(r report.BudgetReport) [][]interface{} {
	rows := make([][]interface{}, 0, len(r.Lines)+2)
	rows = append(rows, []interface{}{"Category", "Budgeted", "Spent", "Delta"})
	for _, line := range r.Lines {
		rows = append(rows, []interface{}{
			line.Category,
			line.Budgeted.String(),
			line.ActualSpend.String(),
			line.Delta.String(),
		})
	}
	rows = append(rows, []interface{}{
		"TOTAL",
		r.TotalBudgeted.String(),
		r.TotalSpend.String(),
		r.TotalDelta.String(),
	})
	return rows
}

func (s *ServiceImpl) prepareSheetsService(ctx context.Context, userId int) (*sheets.Service, error) {
	client, err := s.auth.getClient(ctx, userId)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Google auth client: %v", err)
		log.Error(err)
		return nil, err
	}
	if client == nil {
		log.Debug("user is unauthenticated, authentication is required")
		return nil, ErrUnauthenticated
	}
	service, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to create Sheets client: %v", err)
		log.Error(err)
		return nil, err
	}

	return service, nil
}
