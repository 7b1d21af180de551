package ledgermock

import (
	"context"
	"time"

	domain "corebanking-review/internal/domain/ledger"

	"github.com/shopspring/decimal"
)

// Repo is a function-backed mock satisfying ledger.Repository. Unset
// functions report a zero total, matching an empty window.
type Repo struct {
	TotalAmountFn       func(ctx context.Context, accountID uint64, accountType domain.AccountType, from, to time.Time) (decimal.Decimal, error)
	TotalAmountByTypeFn func(ctx context.Context, accountID uint64, accountType domain.AccountType, txnType domain.TransactionType, from, to time.Time) (decimal.Decimal, error)
	BalanceFn           func(ctx context.Context, accountID uint64, accountType domain.AccountType) (decimal.Decimal, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) TotalAmount(ctx context.Context, accountID uint64, accountType domain.AccountType, from, to time.Time) (decimal.Decimal, error) {
	if m.TotalAmountFn != nil {
		return m.TotalAmountFn(ctx, accountID, accountType, from, to)
	}
	return decimal.Zero, nil
}

func (m *Repo) TotalAmountByType(ctx context.Context, accountID uint64, accountType domain.AccountType, txnType domain.TransactionType, from, to time.Time) (decimal.Decimal, error) {
	if m.TotalAmountByTypeFn != nil {
		return m.TotalAmountByTypeFn(ctx, accountID, accountType, txnType, from, to)
	}
	return decimal.Zero, nil
}

func (m *Repo) Balance(ctx context.Context, accountID uint64, accountType domain.AccountType) (decimal.Decimal, error) {
	if m.BalanceFn != nil {
		return m.BalanceFn(ctx, accountID, accountType)
	}
	return decimal.Zero, nil
}
