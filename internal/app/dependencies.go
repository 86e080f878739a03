package app

import (
	"github.com/farmledger/farmledger/internal/amqp"
	"github.com/farmledger/farmledger/internal/config"
	"github.com/farmledger/farmledger/internal/database"
	"github.com/farmledger/farmledger/internal/event_bus"
	"github.com/farmledger/farmledger/internal/utils"
	"github.com/farmledger/farmledger/pkg/advisor"
	"github.com/farmledger/farmledger/pkg/attendance"
	"github.com/farmledger/farmledger/pkg/employee"
	"github.com/farmledger/farmledger/pkg/feed"
	"github.com/farmledger/farmledger/pkg/finance"
	"github.com/farmledger/farmledger/pkg/google"
	"github.com/farmledger/farmledger/pkg/pond"
	"github.com/farmledger/farmledger/pkg/project"
	"github.com/farmledger/farmledger/pkg/report"
	"github.com/farmledger/farmledger/pkg/transaction"
	"github.com/farmledger/farmledger/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus   *event_bus.EventBus
	AMQPClient *amqp.Client

	UserService user.Service
	UserHandler *user.Handler

	EmployeeRepo    employee.Repo
	EmployeeService employee.Service
	EmployeeHandler *employee.Handler

	AttendanceRepo    attendance.Repo
	AttendanceService attendance.Service
	AttendanceHandler *attendance.Handler

	ProjectRepo    project.Repo
	ProjectService project.Service
	ProjectHandler *project.Handler

	TransactionRepo    transaction.Repo
	TransactionService transaction.Service
	TransactionHandler *transaction.Handler

	ReportService     report.Service
	CsvReportRenderer *report.CsvBudgetReportRenderer
	ReportHandler     *report.Handler

	PondRepo    pond.Repo
	PondService pond.Service
	PondHandler *pond.Handler

	FeedService feed.Service
	FeedHandler *feed.Handler

	AdvisorService advisor.Service
	AdvisorHandler *advisor.Handler

	FinanceHandler *finance.Handler

	GoogleAuth    *google.GoogleAuth
	GoogleService google.Service
	GoogleHandler *google.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *database.DB, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.EmployeeRepo = employee.NewEmployeeRepo(db)
	deps.EmployeeService = employee.NewEmployeeService(deps.EmployeeRepo, deps.Clock)
	deps.EmployeeHandler = employee.NewHandler(deps.EmployeeService, deps.Clock)

	deps.AttendanceRepo = attendance.NewAttendanceRepo(db)
	deps.AttendanceService = attendance.NewAttendanceService(deps.AttendanceRepo, deps.EventBus)
	deps.AttendanceHandler = attendance.NewHandler(deps.AttendanceService)

	deps.ProjectRepo = project.NewProjectRepo(db)
	deps.ProjectService = project.NewProjectService(deps.ProjectRepo)
	deps.ProjectHandler = project.NewHandler(deps.ProjectService)

	deps.TransactionRepo = transaction.NewTransactionRepo(db)
	deps.TransactionService = transaction.NewTransactionService(deps.TransactionRepo, deps.EventBus)
	deps.TransactionHandler = transaction.NewHandler(deps.TransactionService)

	deps.ReportService = report.NewReportService(deps.AttendanceRepo, deps.EmployeeRepo, deps.ProjectRepo, deps.TransactionRepo)
	deps.CsvReportRenderer = report.NewCsvBudgetReportRenderer()
	deps.ReportHandler = report.NewHandler(deps.ReportService, deps.CsvReportRenderer)

	deps.PondRepo = pond.NewPondRepo(db)
	deps.PondService = pond.NewPondService(deps.PondRepo, deps.EventBus, deps.Clock)
	deps.PondHandler = pond.NewHandler(deps.PondService)

	deps.FeedService = feed.NewFeedService(deps.PondService)
	deps.FeedHandler = feed.NewHandler(deps.FeedService)

	deps.AdvisorService = advisor.NewAdvisorService(deps.PondService, deps.ReportService)
	deps.AdvisorHandler = advisor.NewHandler(deps.AdvisorService, deps.Clock)

	deps.FinanceHandler = finance.NewHandler()

	deps.GoogleAuth = google.NewGoogleAuth(db, deps.UserService, cfg)
	deps.GoogleService = google.NewService(deps.GoogleAuth, deps.ReportService)
	deps.GoogleHandler = google.NewHandler(deps.GoogleService)

	if cfg.AMQP.Enabled {
		client, err := amqp.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
		if err != nil {
			return nil, err
		}
		deps.AMQPClient = client
		bridgeEvents(deps.EventBus, client)
	}

	return deps, nil
}

// bridgeEvents forwards domain events to the RabbitMQ exchange so external
// consumers can react to them.
func bridgeEvents(bus *event_bus.EventBus, client *amqp.Client) {
	event_bus.SubscribeTyped(bus, event_bus.AttendanceRecordedType,
		func(e event_bus.EventT[event_bus.AttendanceRecorded]) error {
			return client.Publish(e.Context(), amqp.NewMessage(string(e.Type), e.Data))
		})
	event_bus.SubscribeTyped(bus, event_bus.TransactionRecordedType,
		func(e event_bus.EventT[event_bus.TransactionRecorded]) error {
			return client.Publish(e.Context(), amqp.NewMessage(string(e.Type), e.Data))
		})
	event_bus.SubscribeTyped(bus, event_bus.WaterReadingRecordedType,
		func(e event_bus.EventT[event_bus.WaterReadingRecorded]) error {
			return client.Publish(e.Context(), amqp.NewMessage(string(e.Type), e.Data))
		})
}
