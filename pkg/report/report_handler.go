package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/farmledger/farmledger/internal/rest"
	"github.com/farmledger/farmledger/internal/utils"
	"github.com/farmledger/farmledger/pkg/employee"
	"github.com/farmledger/farmledger/pkg/project"
)

type AttendanceSummaryDTO struct {
	EmployeeId   int          `json:"employeeId"`
	StartDate    utils.Date   `json:"startDate"`
	EndDate      utils.Date   `json:"endDate"`
	Present      int          `json:"present"`
	HalfDay      int          `json:"halfDay"`
	Absent       int          `json:"absent"`
	AbsenceDates []utils.Date `json:"absenceDates"`
	OvertimePay  string       `json:"overtimePay"`
}

type BudgetLineDTO struct {
	Category    string `json:"category"`
	Budgeted    string `json:"budgeted"`
	ActualSpend string `json:"actualSpend"`
	Delta       string `json:"delta"`
}

type BudgetReportDTO struct {
	ProjectId     int             `json:"projectId"`
	StartDate     utils.Date      `json:"startDate"`
	EndDate       utils.Date      `json:"endDate"`
	Lines         []BudgetLineDTO `json:"lines"`
	TotalBudgeted string          `json:"totalBudgeted"`
	TotalSpend    string          `json:"totalSpend"`
	TotalDelta    string          `json:"totalDelta"`
}

type PayrollEntryDTO struct {
	EmployeeId  int    `json:"employeeId"`
	Name        string `json:"name"`
	Present     int    `json:"present"`
	HalfDay     int    `json:"halfDay"`
	Absent      int    `json:"absent"`
	BasePay     string `json:"basePay"`
	OvertimePay string `json:"overtimePay"`
	Total       string `json:"total"`
}

type Handler struct {
	service  Service
	renderer BudgetReportRenderer
}

func NewHandler(service Service, renderer BudgetReportRenderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

func (h *Handler) GetAttendanceReport(w http.ResponseWriter, r *http.Request) {
	employeeId, err := strconv.Atoi(r.URL.Query().Get("employeeId"))
	if err != nil {
		http.Error(w, "invalid employeeId", http.StatusBadRequest)
		return
	}
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	summary, err := h.service.AttendanceReport(r.Context(), employeeId, date)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(summaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetBudgetReport(w http.ResponseWriter, r *http.Request) {
	projectId, err := strconv.Atoi(r.URL.Query().Get("projectId"))
	if err != nil {
		http.Error(w, "invalid projectId", http.StatusBadRequest)
		return
	}
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	budgetReport, err := h.service.BudgetReport(r.Context(), projectId, date)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		rendered, err := h.renderer.RenderBudgetReport(budgetReport)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(rendered)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(budgetReportToDTO(budgetReport)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetPayroll(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	entries, err := h.service.Payroll(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]PayrollEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, PayrollEntryDTO{
			EmployeeId:  entry.EmployeeId,
			Name:        entry.Name,
			Present:     entry.Summary.Present,
			HalfDay:     entry.Summary.HalfDay,
			Absent:      entry.Summary.Absent,
			BasePay:     entry.BasePay.String(),
			OvertimePay: entry.OvertimePay.String(),
			Total:       entry.Total.String(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// dateParam reads the "date" query parameter. Any day of the wanted month
// works; an invalid value is rejected before any data is fetched.
func dateParam(w http.ResponseWriter, r *http.Request) (utils.Date, bool) {
	date, err := utils.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date format",
			Details: "date must be in YYYY-MM-DD format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return utils.Date{}, false
	}
	return date, true
}

func summaryToDTO(summary AttendanceSummary) AttendanceSummaryDTO {
	absenceDates := summary.AbsenceDates
	if absenceDates == nil {
		absenceDates = []utils.Date{}
	}
	return AttendanceSummaryDTO{
		EmployeeId:   summary.EmployeeId,
		StartDate:    summary.Period.Start,
		EndDate:      summary.Period.End,
		Present:      summary.Present,
		HalfDay:      summary.HalfDay,
		Absent:       summary.Absent,
		AbsenceDates: absenceDates,
		OvertimePay:  summary.OvertimePay.String(),
	}
}

func budgetReportToDTO(report BudgetReport) BudgetReportDTO {
	lines := make([]BudgetLineDTO, 0, len(report.Lines))
	for _, line := range report.Lines {
		lines = append(lines, BudgetLineDTO{
			Category:    line.Category,
			Budgeted:    line.Budgeted.String(),
			ActualSpend: line.ActualSpend.String(),
			Delta:       line.Delta.String(),
		})
	}
	return BudgetReportDTO{
		ProjectId:     report.ProjectId,
		StartDate:     report.Period.Start,
		EndDate:       report.Period.End,
		Lines:         lines,
		TotalBudgeted: report.TotalBudgeted.String(),
		TotalSpend:    report.TotalSpend.String(),
		TotalDelta:    report.TotalDelta.String(),
	}
}
