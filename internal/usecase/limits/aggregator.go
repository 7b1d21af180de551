package limits

import (
	"context"
	"time"

	"corebanking-review/internal/domain/ledger"

	"github.com/shopspring/decimal"
)

// Aggregator computes realized transaction totals over a date window.
// Totals are read fresh on every check, since the ledger can move between two
// checks, so nothing here is memoized.
type Aggregator struct {
	ledger ledger.Repository
}

func NewAggregator(l ledger.Repository) *Aggregator { return &Aggregator{ledger: l} }

// TotalAmount sums posted, non-reversed transactions in [from, to].
// An empty window yields decimal zero, never an error.
func (a *Aggregator) TotalAmount(ctx context.Context, accountID uint64, accountType ledger.AccountType, from, to time.Time) (decimal.Decimal, error) {
	return a.ledger.TotalAmount(ctx, accountID, accountType, from, to)
}

// WithdrawnOn sums withdrawals posted on one business date.
func (a *Aggregator) WithdrawnOn(ctx context.Context, accountID uint64, accountType ledger.AccountType, date time.Time) (decimal.Decimal, error) {
	return a.ledger.TotalAmountByType(ctx, accountID, accountType, ledger.TransactionTypeWithdrawal, date, date)
}

// Balance is the account's running balance (deposits minus withdrawals).
func (a *Aggregator) Balance(ctx context.Context, accountID uint64, accountType ledger.AccountType) (decimal.Decimal, error) {
	return a.ledger.Balance(ctx, accountID, accountType)
}
