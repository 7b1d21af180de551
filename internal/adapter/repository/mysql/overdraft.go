package mysql

import (
	"context"
	"errors"
	"time"

	overdraftDomain "corebanking-review/internal/domain/overdraft"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OverdraftRepository struct{ db *gorm.DB }

func NewOverdraftRepository(db *gorm.DB) *OverdraftRepository { return &OverdraftRepository{db: db} }

func (r *OverdraftRepository) Create(ctx context.Context, f *overdraftDomain.Facility) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *OverdraftRepository) Save(ctx context.Context, f *overdraftDomain.Facility) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *OverdraftRepository) GetByFacilityID(ctx context.Context, facilityID string) (*overdraftDomain.Facility, error) {
	var out overdraftDomain.Facility
	res := r.db.WithContext(ctx).Where("facility_id = ?", facilityID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, overdraftDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *OverdraftRepository) GetByFacilityIDForUpdate(ctx context.Context, facilityID string) (*overdraftDomain.Facility, error) {
	var out overdraftDomain.Facility
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("facility_id = ?", facilityID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, overdraftDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *OverdraftRepository) ListBySavingsID(ctx context.Context, savingsID uint64) ([]overdraftDomain.Facility, error) {
	var out []overdraftDomain.Facility
	res := r.db.WithContext(ctx).
		Where("savings_id = ?", savingsID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *OverdraftRepository) ListActiveExpiredBefore(ctx context.Context, businessDate time.Time) ([]overdraftDomain.Facility, error) {
	var out []overdraftDomain.Facility
	res := r.db.WithContext(ctx).
		Where("status = ?", overdraftDomain.StatusActive).
		Where("expiry_date < ?", businessDate).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
