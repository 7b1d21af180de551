package mysql

import (
	"context"
	"testing"
	"time"

	ledgerDomain "corebanking-review/internal/domain/ledger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ledgerDay = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func seedTxn(t *testing.T, db *gorm.DB, accountID uint64, txnType ledgerDomain.TransactionType, amount string, date time.Time, reversed bool) {
	t.Helper()
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("bad amount %q: %v", amount, err)
	}
	txn := &ledgerDomain.Transaction{
		AccountID:       accountID,
		AccountType:     ledgerDomain.AccountTypeSavings,
		TransactionType: txnType,
		Amount:          amt,
		TransactionDate: date,
		Reversed:        reversed,
	}
	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("seed txn: %v", err)
	}
}

func TestTotalAmount_SumsWindowExcludingReversals(t *testing.T) {
	db := openTestDB(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	seedTxn(t, db, 1, ledgerDomain.TransactionTypeWithdrawal, "100.50", ledgerDay, false)
	seedTxn(t, db, 1, ledgerDomain.TransactionTypeDeposit, "200", ledgerDay, false)
	seedTxn(t, db, 1, ledgerDomain.TransactionTypeWithdrawal, "999", ledgerDay, true)                  // reversed
	seedTxn(t, db, 1, ledgerDomain.TransactionTypeWithdrawal, "50", ledgerDay.AddDate(0, 0, -1), false) // outside window
	seedTxn(t, db, 2, ledgerDomain.TransactionTypeWithdrawal, "75", ledgerDay, false)                   // other account

	total, err := repo.TotalAmount(ctx, 1, ledgerDomain.AccountTypeSavings, ledgerDay, ledgerDay)
	if err != nil {
		t.Fatalf("TotalAmount: %v", err)
	}
	if want := decimal.RequireFromString("300.50"); !total.Equal(want) {
		t.Fatalf("total = %s, want %s", total, want)
	}
}

func TestTotalAmount_EmptyWindowIsZero(t *testing.T) {
	db := openTestDB(t)
	repo := NewLedgerRepository(db)

	total, err := repo.TotalAmount(context.Background(), 1, ledgerDomain.AccountTypeSavings, ledgerDay, ledgerDay)
	if err != nil {
		t.Fatalf("TotalAmount: %v", err)
	}
	if !total.IsZero() {
		t.Fatalf("total = %s, want 0", total)
	}
}

func TestTotalAmountByType_FiltersDirection(t *testing.T) {
	db := openTestDB(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	seedTxn(t, db, 1, ledgerDomain.TransactionTypeWithdrawal, "100", ledgerDay, false)
	seedTxn(t, db, 1, ledgerDomain.TransactionTypeWithdrawal, "40", ledgerDay, false)
	seedTxn(t, db, 1, ledgerDomain.TransactionTypeDeposit, "500", ledgerDay, false)

	total, err := repo.TotalAmountByType(ctx, 1, ledgerDomain.AccountTypeSavings, ledgerDomain.TransactionTypeWithdrawal, ledgerDay, ledgerDay)
	if err != nil {
		t.Fatalf("TotalAmountByType: %v", err)
	}
	if want := decimal.NewFromInt(140); !total.Equal(want) {
		t.Fatalf("total = %s, want %s", total, want)
	}
}

func TestBalance_DepositsMinusWithdrawals(t *testing.T) {
	db := openTestDB(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	seedTxn(t, db, 1, ledgerDomain.TransactionTypeDeposit, "1000", ledgerDay.AddDate(0, 0, -5), false)
	seedTxn(t, db, 1, ledgerDomain.TransactionTypeWithdrawal, "250.25", ledgerDay, false)
	seedTxn(t, db, 1, ledgerDomain.TransactionTypeDeposit, "300", ledgerDay, true) // reversed

	balance, err := repo.Balance(ctx, 1, ledgerDomain.AccountTypeSavings)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if want := decimal.RequireFromString("749.75"); !balance.Equal(want) {
		t.Fatalf("balance = %s, want %s", balance, want)
	}
}
