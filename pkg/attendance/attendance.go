package attendance

import (
	"github.com/farmledger/farmledger/internal/utils"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusFullDay Status = "full_day"
	StatusHalfDay Status = "half_day"
	StatusAbsent  Status = "absent"
)

func (s Status) Valid() bool {
	switch s {
	case StatusFullDay, StatusHalfDay, StatusAbsent:
		return true
	}
	return false
}

// Record is one employee's attendance on one calendar day. There is at most
// one record per (employee, date); re-recording a day overwrites the previous
// record whole.
type Record struct {
	ID         int
	EmployeeID int
	Date       utils.Date
	Status     Status
	// OvertimeHours and OvertimeRate are optional; absent values are zero.
	OvertimeHours decimal.Decimal
	OvertimeRate  decimal.Decimal
}

// OvertimePay is hours times rate; zero when either side is unset.
func (r Record) OvertimePay() decimal.Decimal {
	return r.OvertimeHours.Mul(r.OvertimeRate)
}
