package beneficiarymock

import (
	"context"

	domain "corebanking-review/internal/domain/beneficiary"
	"corebanking-review/internal/domain/ledger"
)

// Repo is a function-backed mock satisfying beneficiary.Repository.
type Repo struct {
	CreateFn func(ctx context.Context, b *domain.Beneficiary) error
	GetFn    func(ctx context.Context, userID, accountID uint64, accountType ledger.AccountType) (*domain.Beneficiary, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, b *domain.Beneficiary) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) Get(ctx context.Context, userID, accountID uint64, accountType ledger.AccountType) (*domain.Beneficiary, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID, accountID, accountType)
	}
	return nil, domain.ErrNotFound
}
