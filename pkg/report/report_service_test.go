package report

import (
	"context"
	"testing"
	"time"

	"github.com/farmledger/farmledger/internal/utils"
	"github.com/farmledger/farmledger/pkg/attendance"
	"github.com/farmledger/farmledger/pkg/employee"
	"github.com/farmledger/farmledger/pkg/project"
	"github.com/farmledger/farmledger/pkg/transaction"
	"github.com/farmledger/farmledger/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	service         Service
	ctx             context.Context
	attendanceRepo  *attendance.StubAttendanceRepo
	employeeRepo    *employee.StubEmployeeRepo
	projectRepo     *project.StubProjectRepo
	transactionRepo *transaction.StubTransactionRepo
}

func setup(t *testing.T) (serviceFixture, func()) {
	attendanceRepo := attendance.NewStubAttendanceRepo()
	employeeRepo := employee.NewStubEmployeeRepo()
	projectRepo := project.NewStubProjectRepo()
	transactionRepo := transaction.NewStubTransactionRepo()
	fixture := serviceFixture{
		service:         NewReportService(attendanceRepo, employeeRepo, projectRepo, transactionRepo),
		ctx:             user.WithUser(context.Background(), user.User{Id: 1, Username: "test-user"}),
		attendanceRepo:  attendanceRepo,
		employeeRepo:    employeeRepo,
		projectRepo:     projectRepo,
		transactionRepo: transactionRepo,
	}
	return fixture, func() {
		attendanceRepo.Cleanup()
		employeeRepo.Cleanup()
		projectRepo.Cleanup()
		transactionRepo.Cleanup()
	}
}

func TestServiceImpl_AttendanceReport(t *testing.T) {
	fixture, teardown := setup(t)
	defer teardown()

	// given an employee with three attendance records in March
	employeeId, err := fixture.employeeRepo.Store(fixture.ctx, 1, employee.Employee{Name: "Anna"})
	require.NoError(t, err)
	records := []attendance.Record{
		{EmployeeID: employeeId, Date: utils.NewDate(2024, time.March, 1), Status: attendance.StatusFullDay},
		{EmployeeID: employeeId, Date: utils.NewDate(2024, time.March, 2), Status: attendance.StatusAbsent},
		{EmployeeID: employeeId, Date: utils.NewDate(2024, time.March, 3), Status: attendance.StatusHalfDay},
	}
	for _, record := range records {
		_, err := fixture.attendanceRepo.Upsert(fixture.ctx, 1, record)
		require.NoError(t, err)
	}

	// when
	summary, err := fixture.service.AttendanceReport(fixture.ctx, employeeId, utils.NewDate(2024, time.March, 15))

	// then
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Present)
	assert.Equal(t, 1, summary.HalfDay)
	assert.Equal(t, 1, summary.Absent)
	require.Len(t, summary.AbsenceDates, 1)
	assert.Equal(t, "2024-03-02", summary.AbsenceDates[0].String())
}

func TestServiceImpl_AttendanceReport_UnknownEmployee(t *testing.T) {
	fixture, teardown := setup(t)
	defer teardown()

	_, err := fixture.service.AttendanceReport(fixture.ctx, 42, utils.NewDate(2024, time.March, 15))

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestServiceImpl_AttendanceReport_NoUser(t *testing.T) {
	fixture, teardown := setup(t)
	defer teardown()

	_, err := fixture.service.AttendanceReport(context.Background(), 1, utils.NewDate(2024, time.March, 15))

	assert.ErrorIs(t, err, user.ErrNoUser)
}

func TestServiceImpl_BudgetReport(t *testing.T) {
	fixture, teardown := setup(t)
	defer teardown()

	// given a project with a budget and spend in March
	projectId, err := fixture.projectRepo.Store(fixture.ctx, 1, project.Project{Name: "Cycle"})
	require.NoError(t, err)
	err = fixture.projectRepo.ReplaceBudget(fixture.ctx, 1, projectId, []project.BudgetCategory{
		{Name: "feed", Amount: decimal.NewFromInt(1000)},
	})
	require.NoError(t, err)
	_, err = fixture.transactionRepo.Store(fixture.ctx, 1, transaction.Transaction{
		ProjectID: projectId,
		Category:  "feed",
		Amount:    decimal.NewFromInt(1200),
		Date:      utils.NewDate(2024, time.March, 10),
	})
	require.NoError(t, err)

	// when
	budgetReport, err := fixture.service.BudgetReport(fixture.ctx, projectId, utils.NewDate(2024, time.March, 15))

	// then
	require.NoError(t, err)
	require.Len(t, budgetReport.Lines, 1)
	assert.True(t, decimal.NewFromInt(-200).Equal(budgetReport.Lines[0].Delta))
}

func TestServiceImpl_BudgetReport_UnknownProject(t *testing.T) {
	fixture, teardown := setup(t)
	defer teardown()

	_, err := fixture.service.BudgetReport(fixture.ctx, 42, utils.NewDate(2024, time.March, 15))

	assert.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestServiceImpl_Payroll(t *testing.T) {
	fixture, teardown := setup(t)
	defer teardown()

	employeeId, err := fixture.employeeRepo.Store(fixture.ctx, 1, employee.Employee{
		Name:      "Anna",
		DailyWage: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	_, err = fixture.attendanceRepo.Upsert(fixture.ctx, 1, attendance.Record{
		EmployeeID: employeeId,
		Date:       utils.NewDate(2024, time.March, 4),
		Status:     attendance.StatusFullDay,
	})
	require.NoError(t, err)

	entries, err := fixture.service.Payroll(fixture.ctx, utils.NewDate(2024, time.March, 15))

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(entries[0].Total))
}
