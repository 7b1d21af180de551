package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType distinguishes the two ledgers a limit check can read.
type AccountType string

const (
	AccountTypeSavings AccountType = "savings"
	AccountTypeLoan    AccountType = "loan"
)

// TransactionType tags the direction of a posted transaction so tier
// checks can aggregate withdrawals separately from deposits.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

// Table: account_transactions, the posted transaction ledger. The core
// only reads it; posting belongs to the transaction-processing layer.
type Transaction struct {
	ID              uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	AccountID       uint64          `gorm:"column:account_id;not null;index:idx_account_txns_account"`
	AccountType     AccountType     `gorm:"column:account_type;size:16;not null;index:idx_account_txns_account"`
	TransactionType TransactionType `gorm:"column:transaction_type;size:16;not null"`
	Amount          decimal.Decimal `gorm:"column:amount;type:decimal(19,6);not null"`
	TransactionDate time.Time       `gorm:"column:transaction_date;type:date;not null"`
	Reversed        bool            `gorm:"column:reversed;not null;default:false"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Transaction) TableName() string { return "account_transactions" }
