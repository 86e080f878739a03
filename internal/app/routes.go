package app

import (
	"github.com/farmledger/farmledger/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")

	// Employees
	r.HandleFunc("/api/employee", deps.EmployeeHandler.Create).Methods("POST")
	r.HandleFunc("/api/employee", deps.EmployeeHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/employee/{id}", deps.EmployeeHandler.Get).Methods("GET")
	r.HandleFunc("/api/employee/{id}", deps.EmployeeHandler.Update).Methods("PUT")
	r.HandleFunc("/api/employee/{id}", deps.EmployeeHandler.Delete).Methods("DELETE")

	// Attendance
	r.HandleFunc("/api/attendance", deps.AttendanceHandler.Record).Methods("PUT")
	r.HandleFunc("/api/attendance", deps.AttendanceHandler.GetForMonth).Queries("employeeId", "{employeeId}", "date", "{date}").Methods("GET")

	// Projects and budgets
	r.HandleFunc("/api/project", deps.ProjectHandler.Create).Methods("POST")
	r.HandleFunc("/api/project", deps.ProjectHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/project/{id}", deps.ProjectHandler.Get).Methods("GET")
	r.HandleFunc("/api/project/{id}", deps.ProjectHandler.Update).Methods("PUT")
	r.HandleFunc("/api/project/{id}", deps.ProjectHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/project/{id}/budget", deps.ProjectHandler.SetBudget).Methods("PUT")
	r.HandleFunc("/api/project/{id}/budget", deps.ProjectHandler.GetBudget).Methods("GET")

	// Transactions
	r.HandleFunc("/api/transaction", deps.TransactionHandler.Record).Methods("POST")
	r.HandleFunc("/api/transaction", deps.TransactionHandler.GetForMonth).Queries("projectId", "{projectId}", "date", "{date}").Methods("GET")
	r.HandleFunc("/api/transaction/{id}", deps.TransactionHandler.Delete).Methods("DELETE")

	// Reports
	r.HandleFunc("/api/report/attendance", deps.ReportHandler.GetAttendanceReport).Queries("employeeId", "{employeeId}", "date", "{date}").Methods("GET")
	r.HandleFunc("/api/report/budget", deps.ReportHandler.GetBudgetReport).Queries("projectId", "{projectId}", "date", "{date}").Methods("GET")
	r.HandleFunc("/api/report/payroll", deps.ReportHandler.GetPayroll).Queries("date", "{date}").Methods("GET")

	// Ponds and water readings
	r.HandleFunc("/api/pond", deps.PondHandler.Create).Methods("POST")
	r.HandleFunc("/api/pond", deps.PondHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/pond/{id}", deps.PondHandler.Get).Methods("GET")
	r.HandleFunc("/api/pond/{id}", deps.PondHandler.Update).Methods("PUT")
	r.HandleFunc("/api/pond/{id}", deps.PondHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/pond/{id}/reading", deps.PondHandler.RecordReading).Methods("POST")
	r.HandleFunc("/api/pond/{id}/reading", deps.PondHandler.GetReadings).Methods("GET")

	// Feed chart
	r.HandleFunc("/api/pond/{id}/feedchart", deps.FeedHandler.GetChart).Queries("bodyWeight", "{bodyWeight}").Methods("GET")

	// Advisor
	r.HandleFunc("/api/advisor/recommendations", deps.AdvisorHandler.GetRecommendations).Methods("GET")

	// Financial analysis
	r.HandleFunc("/api/finance/analysis", deps.FinanceHandler.Analyze).Methods("POST")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/export/budget", deps.GoogleHandler.ExportBudgetReport).Queries("projectId", "{projectId}", "date", "{date}").Methods("POST")
}
