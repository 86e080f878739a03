package project

import (
	"github.com/farmledger/farmledger/internal/utils"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

type Project struct {
	ID        int
	Name      string
	Notes     string
	StartDate utils.Date
	Status    Status
}

// BudgetCategory is one named spending line of a project budget. Category
// names are unique within a project.
type BudgetCategory struct {
	ID     int
	Name   string
	Amount decimal.Decimal
}
