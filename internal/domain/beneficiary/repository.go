package beneficiary

import (
	"context"

	"corebanking-review/internal/domain/ledger"
)

type Repository interface {
	Create(ctx context.Context, b *Beneficiary) error

	// Get returns the beneficiary record for (user, destination account),
	// or ErrNotFound when the user has no such beneficiary configured.
	Get(ctx context.Context, userID, accountID uint64, accountType ledger.AccountType) (*Beneficiary, error)
}
