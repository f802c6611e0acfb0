package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one normalized statement row.
type Transaction struct {
	Date        time.Time
	Amount      decimal.Decimal // positive = money leaving the account
	Description string
}
