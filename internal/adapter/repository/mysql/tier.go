package mysql

import (
	"context"
	"errors"

	tierDomain "corebanking-review/internal/domain/tier"

	"gorm.io/gorm"
)

type TierRepository struct{ db *gorm.DB }

func NewTierRepository(db *gorm.DB) *TierRepository { return &TierRepository{db: db} }

func (r *TierRepository) Create(ctx context.Context, t *tierDomain.Tier) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TierRepository) Save(ctx context.Context, t *tierDomain.Tier) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TierRepository) GetByID(ctx context.Context, id uint64) (*tierDomain.Tier, error) {
	var out tierDomain.Tier
	res := r.db.WithContext(ctx).First(&out, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, tierDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *TierRepository) GetByTierID(ctx context.Context, tierID string) (*tierDomain.Tier, error) {
	var out tierDomain.Tier
	res := r.db.WithContext(ctx).Where("tier_id = ?", tierID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, tierDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *TierRepository) Delete(ctx context.Context, tierID string) error {
	res := r.db.WithContext(ctx).Where("tier_id = ?", tierID).Delete(&tierDomain.Tier{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return tierDomain.ErrNotFound
	}
	return nil
}

func (r *TierRepository) FindByClientType(ctx context.Context, clientTypeID uint64) ([]tierDomain.Tier, error) {
	var out []tierDomain.Tier
	res := r.db.WithContext(ctx).
		Where("client_type_id = ?", clientTypeID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
