package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	// TotalAmount sums posted, non-reversed transaction amounts for one
	// account over [from, to] (transaction dates, inclusive). Zero when
	// the window is empty.
	TotalAmount(ctx context.Context, accountID uint64, accountType AccountType, from, to time.Time) (decimal.Decimal, error)

	// TotalAmountByType restricts the sum to one transaction direction.
	TotalAmountByType(ctx context.Context, accountID uint64, accountType AccountType, txnType TransactionType, from, to time.Time) (decimal.Decimal, error)

	// Balance is the running balance of the account: deposits minus
	// withdrawals over the whole ledger, reversed rows excluded.
	Balance(ctx context.Context, accountID uint64, accountType AccountType) (decimal.Decimal, error)
}
