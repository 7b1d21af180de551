package mysql

import (
	"context"
	"errors"

	beneficiaryDomain "corebanking-review/internal/domain/beneficiary"
	ledgerDomain "corebanking-review/internal/domain/ledger"

	"gorm.io/gorm"
)

type BeneficiaryRepository struct{ db *gorm.DB }

func NewBeneficiaryRepository(db *gorm.DB) *BeneficiaryRepository {
	return &BeneficiaryRepository{db: db}
}

func (r *BeneficiaryRepository) Create(ctx context.Context, b *beneficiaryDomain.Beneficiary) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BeneficiaryRepository) Get(ctx context.Context, userID, accountID uint64, accountType ledgerDomain.AccountType) (*beneficiaryDomain.Beneficiary, error) {
	var out beneficiaryDomain.Beneficiary
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND account_id = ? AND account_type = ?", userID, accountID, accountType).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, beneficiaryDomain.ErrNotFound
	}
	return &out, res.Error
}
