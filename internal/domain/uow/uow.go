package uow

import (
	"context"

	"corebanking-review/internal/domain/overdraft"
	"corebanking-review/internal/domain/review"
)

// Repos bundles the repositories a transactional flow touches together,
// all bound to the same database transaction.
type Repos struct {
	Reviews    review.Repository
	Histories  review.HistoryRepository
	Overdrafts overdraft.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn inside one transaction; a status write and its
	// history append commit together or not at all.
	WithinTx(ctx context.Context, fn func(r Repos) error) error

	// WithinItemTx locks the review item first, then passes it in.
	WithinItemTx(ctx context.Context, itemID string, fn func(r Repos, i *review.Item) error) error
}
