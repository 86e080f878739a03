package transaction

import (
	"github.com/farmledger/farmledger/internal/utils"
	"github.com/shopspring/decimal"
)

// Transaction is a single dated expense booked against a project budget
// category. The category is stored by name; spending is allowed in categories
// that have no budget line.
type Transaction struct {
	ID        int
	ProjectID int
	Category  string
	Amount    decimal.Decimal
	Date      utils.Date
	Note      string
}
