package employee

import (
	"github.com/farmledger/farmledger/internal/utils"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive Status = "active"
	StatusPast   Status = "past"
)

type Employee struct {
	ID        int
	Uid       string
	Name      string
	Role      string
	DailyWage decimal.Decimal
	StartDate utils.Date
	// EndDate is zero while the employee is still engaged.
	EndDate utils.Date
}

// StatusOn derives the active/past partition for a given calendar day. The
// comparison is done on UTC calendar days everywhere, so an employee whose
// engagement ends today stays active through the whole day.
func (e Employee) StatusOn(day utils.Date) Status {
	if !e.EndDate.IsZero() && e.EndDate.Before(day) {
		return StatusPast
	}
	return StatusActive
}
