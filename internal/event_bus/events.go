package event_bus

import (
	"github.com/farmledger/farmledger/internal/utils"
	"github.com/shopspring/decimal"
)

const (
	AttendanceRecordedType   EventType = "attendance.recorded"
	TransactionRecordedType  EventType = "transaction.recorded"
	WaterReadingRecordedType EventType = "pond.reading.recorded"
)

type AttendanceRecorded struct {
	EmployeeId int
	Date       utils.Date
	Status     string
}

type TransactionRecorded struct {
	TransactionId int
	ProjectId     int
	Category      string
	Amount        decimal.Decimal
	Date          utils.Date
}

type WaterReadingRecorded struct {
	PondId          int
	PH              decimal.Decimal
	DissolvedOxygen decimal.Decimal
}
