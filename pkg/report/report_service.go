package report

import (
	"context"
	"fmt"

	"github.com/farmledger/farmledger/internal/utils"
	"github.com/farmledger/farmledger/pkg/attendance"
	"github.com/farmledger/farmledger/pkg/employee"
	"github.com/farmledger/farmledger/pkg/period"
	"github.com/farmledger/farmledger/pkg/project"
	"github.com/farmledger/farmledger/pkg/transaction"
	"github.com/farmledger/farmledger/pkg/user"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	// AttendanceReport summarizes one employee's attendance for the calendar
	// month containing the reference date.
	AttendanceReport(ctx context.Context, employeeId int, reference utils.Date) (AttendanceSummary, error)
	// BudgetReport reconciles a project's budget with its spend for the
	// calendar month containing the reference date.
	BudgetReport(ctx context.Context, projectId int, reference utils.Date) (BudgetReport, error)
	Payroll(ctx context.Context, reference utils.Date) ([]PayrollEntry, error)
}

type ServiceImpl struct {
	attendanceRepo  attendance.Repo
	employeeRepo    employee.Repo
	projectRepo     project.Repo
	transactionRepo transaction.Repo
}

func NewReportService(
	attendanceRepo attendance.Repo,
	employeeRepo employee.Repo,
	projectRepo project.Repo,
	transactionRepo transaction.Repo,
) *ServiceImpl {
	return &ServiceImpl{
		attendanceRepo:  attendanceRepo,
		employeeRepo:    employeeRepo,
		projectRepo:     projectRepo,
		transactionRepo: transactionRepo,
	}
}

func (s *ServiceImpl) AttendanceReport(ctx context.Context, employeeId int, reference utils.Date) (AttendanceSummary, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return AttendanceSummary{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if _, err := s.employeeRepo.Get(ctx, userId, employeeId); err != nil {
		return AttendanceSummary{}, err
	}

	month := period.MonthOf(reference)
	records, err := s.attendanceRepo.GetRange(ctx, userId, employeeId, month.Start, month.End)
	if err != nil {
		return AttendanceSummary{}, err
	}
	return SummarizeAttendance(employeeId, month, records), nil
}

func (s *ServiceImpl) BudgetReport(ctx context.Context, projectId int, reference utils.Date) (BudgetReport, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return BudgetReport{}, fmt.Errorf("failed to get current user: %w", err)
	}

	month := period.MonthOf(reference)

	var categories []project.BudgetCategory
	var transactions []transaction.Transaction

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.projectRepo.GetBudget(gCtx, userId, projectId)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.transactionRepo.GetForProjectRange(gCtx, userId, projectId, month.Start, month.End)
		return err
	})
	if err := g.Wait(); err != nil {
		return BudgetReport{}, err
	}

	return BuildBudgetReport(projectId, month, categories, transactions), nil
}

func (s *ServiceImpl) Payroll(ctx context.Context, reference utils.Date) ([]PayrollEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	month := period.MonthOf(reference)

	var employees []employee.Employee
	var records []attendance.Record

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.employeeRepo.GetAll(gCtx, userId)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.GetAllInRange(gCtx, userId, month.Start, month.End)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return BuildPayroll(month, employees, records), nil
}
