package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountBalance is the running balance per account, maintained in the same
// transaction as the entry that moves it. Debits increase, credits decrease.
type AccountBalance struct {
	AccountID uuid.UUID       `gorm:"type:uuid;primary_key"`
	Balance   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AccountBalance) TableName() string {
	return "account_balances"
}

// Delta returns the signed balance effect of an entry line
func (l EntryLine) Delta() decimal.Decimal {
	if l.Direction == Debit {
		return l.Amount
	}
	return l.Amount.Neg()
}
