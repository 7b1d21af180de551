package mysql

import (
	"context"

	"corebanking-review/internal/domain/review"
	"corebanking-review/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Reviews:    &ReviewRepository{db: tx},
		Histories:  &ReviewHistoryRepository{db: tx},
		Overdrafts: &OverdraftRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(u.repos(tx))
	})
}

func (u *GormUoW) WithinItemTx(ctx context.Context, itemID string, fn func(r uow.Repos, i *review.Item) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := u.repos(tx)
		// lock the item row up-front to serialize competing transitions
		i, err := r.Reviews.GetByItemIDForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		return fn(r, i)
	})
}
