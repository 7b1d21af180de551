package mysql

import (
	"context"
	"time"

	ledgerDomain "corebanking-review/internal/domain/ledger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerRepository is the read-only boundary over the posted transaction
// ledger. Reversed rows are filtered here, once, so every aggregate the
// guard sees is already clean.
type LedgerRepository struct{ db *gorm.DB }

func NewLedgerRepository(db *gorm.DB) *LedgerRepository { return &LedgerRepository{db: db} }

func (r *LedgerRepository) TotalAmount(ctx context.Context, accountID uint64, accountType ledgerDomain.AccountType, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&ledgerDomain.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("account_id = ? AND account_type = ?", accountID, accountType).
		Where("reversed = ?", false).
		Where("transaction_date BETWEEN ? AND ?", from, to).
		Scan(&total).Error
	return total, err
}

func (r *LedgerRepository) TotalAmountByType(ctx context.Context, accountID uint64, accountType ledgerDomain.AccountType, txnType ledgerDomain.TransactionType, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&ledgerDomain.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("account_id = ? AND account_type = ?", accountID, accountType).
		Where("transaction_type = ?", txnType).
		Where("reversed = ?", false).
		Where("transaction_date BETWEEN ? AND ?", from, to).
		Scan(&total).Error
	return total, err
}

func (r *LedgerRepository) Balance(ctx context.Context, accountID uint64, accountType ledgerDomain.AccountType) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.WithContext(ctx).Model(&ledgerDomain.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN transaction_type = ? THEN amount ELSE -amount END), 0)", ledgerDomain.TransactionTypeDeposit).
		Where("account_id = ? AND account_type = ?", accountID, accountType).
		Where("reversed = ?", false).
		Scan(&balance).Error
	return balance, err
}
