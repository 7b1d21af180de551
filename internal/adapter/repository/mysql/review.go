package mysql

import (
	"context"
	"errors"

	reviewDomain "corebanking-review/internal/domain/review"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository struct{ db *gorm.DB }

func NewReviewRepository(db *gorm.DB) *ReviewRepository { return &ReviewRepository{db: db} }

// translateWrite maps the (subject, rank) unique index firing onto the
// domain conflict error. Requires gorm's TranslateError option.
func translateWrite(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return reviewDomain.ErrRankConflict
	}
	return err
}

func (r *ReviewRepository) Create(ctx context.Context, i *reviewDomain.Item) error {
	return translateWrite(r.db.WithContext(ctx).Create(i).Error)
}

func (r *ReviewRepository) Save(ctx context.Context, i *reviewDomain.Item) error {
	return translateWrite(r.db.WithContext(ctx).Save(i).Error)
}

func (r *ReviewRepository) GetByItemID(ctx context.Context, itemID string) (*reviewDomain.Item, error) {
	var out reviewDomain.Item
	res := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, reviewDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *ReviewRepository) GetByItemIDForUpdate(ctx context.Context, itemID string) (*reviewDomain.Item, error) {
	var out reviewDomain.Item
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("item_id = ?", itemID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, reviewDomain.ErrNotFound
	}
	return &out, res.Error
}

// List combines the optional filters structurally; a nil field simply
// contributes no predicate.
func (r *ReviewRepository) List(ctx context.Context, f reviewDomain.ItemFilter) ([]reviewDomain.Item, error) {
	q := r.db.WithContext(ctx).Model(&reviewDomain.Item{})
	if f.AssignedStaffID != nil {
		q = q.Where("assigned_staff_id = ?", *f.AssignedStaffID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.LoanID != nil {
		q = q.Where("loan_id = ?", *f.LoanID)
	}
	if f.SavingsID != nil {
		q = q.Where("savings_id = ?", *f.SavingsID)
	}
	var out []reviewDomain.Item
	res := q.Order("`rank` ASC, id ASC").Find(&out)
	return out, res.Error
}

func (r *ReviewRepository) MaxRankForSubject(ctx context.Context, loanID, savingsID *uint64) (int, error) {
	q := r.db.WithContext(ctx).Model(&reviewDomain.Item{})
	switch {
	case loanID != nil:
		q = q.Where("loan_id = ?", *loanID)
	case savingsID != nil:
		q = q.Where("savings_id = ?", *savingsID)
	default:
		return 0, reviewDomain.ErrSubjectRequired
	}
	var max *int
	if err := q.Select("MAX(`rank`)").Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *ReviewRepository) CountByAssignedStaff(ctx context.Context, staffID uint64, statuses ...reviewDomain.Status) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&reviewDomain.Item{}).
		Where("assigned_staff_id = ?", staffID).
		Where("status IN ?", statuses).
		Count(&n)
	return n, res.Error
}

type ReviewHistoryRepository struct{ db *gorm.DB }

func NewReviewHistoryRepository(db *gorm.DB) *ReviewHistoryRepository {
	return &ReviewHistoryRepository{db: db}
}

func (r *ReviewHistoryRepository) Append(ctx context.Context, h *reviewDomain.History) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *ReviewHistoryRepository) ListByItemID(ctx context.Context, itemID uint64) ([]reviewDomain.History, error) {
	var out []reviewDomain.History
	res := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
