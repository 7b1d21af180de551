package uowmock

import (
	"context"
	"errors"

	"corebanking-review/internal/domain/review"
	"corebanking-review/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW satisfies uow.UnitOfWork without a database. With Repos set it runs
// callbacks directly against those repos with no transaction, which is fine
// for usecase tests; override the Fn fields for anything fancier.
type UoW struct {
	Repos          uow.Repos
	WithinTxFn     func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinItemTxFn func(ctx context.Context, itemID string, fn func(r uow.Repos, i *review.Item) error) error
}

func New(r uow.Repos) *UoW { return &UoW{Repos: r} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	if m.Repos.Reviews != nil {
		return fn(m.Repos)
	}
	return errUnimplemented
}

func (m *UoW) WithinItemTx(ctx context.Context, itemID string, fn func(r uow.Repos, i *review.Item) error) error {
	if m.WithinItemTxFn != nil {
		return m.WithinItemTxFn(ctx, itemID, fn)
	}
	if m.Repos.Reviews != nil {
		i, err := m.Repos.Reviews.GetByItemIDForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		return fn(m.Repos, i)
	}
	return errUnimplemented
}
