package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	overdraftDomain "corebanking-review/internal/domain/overdraft"
	reviewDomain "corebanking-review/internal/domain/review"
	"corebanking-review/internal/domain/uow"
	"corebanking-review/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openUowTestDB migrates every table the unit of work can touch.
func openUowTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&reviewDomain.Item{}, &reviewDomain.History{}, &overdraftDomain.Facility{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeFacility(facilityID string, savingsID uint64) *overdraftDomain.Facility {
	start := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	return &overdraftDomain.Facility{
		FacilityID:        facilityID,
		SavingsID:         savingsID,
		Amount:            decimal.NewFromInt(2500),
		NominalAnnualRate: decimal.RequireFromString("14.5"),
		StartDate:         start,
		NumberOfDays:      30,
		ExpiryDate:        start.AddDate(0, 0, 30),
		Status:            overdraftDomain.StatusPending,
	}
}

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	reviewRepo := NewReviewRepository(db)
	overdraftRepo := NewOverdraftRepository(db)

	itemID := id.NewID32()
	facilityID := id.NewID32()

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Overdrafts.Create(ctx, makeFacility(facilityID, 9)); err != nil {
			return err
		}
		i := savingsItem(9, 1)
		i.ItemID = itemID
		if err := r.Reviews.Create(ctx, i); err != nil {
			return err
		}
		return r.Histories.Append(ctx, &reviewDomain.History{ItemID: i.ID, Status: i.Status})
	})
	if err != nil {
		t.Fatalf("WithinTx commit: %v", err)
	}

	if _, err := reviewRepo.GetByItemID(ctx, itemID); err != nil {
		t.Fatalf("item not visible after commit: %v", err)
	}
	if _, err := overdraftRepo.GetByFacilityID(ctx, facilityID); err != nil {
		t.Fatalf("facility not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	reviewRepo := NewReviewRepository(db)
	overdraftRepo := NewOverdraftRepository(db)

	itemID := id.NewID32()
	facilityID := id.NewID32()
	sentinel := errors.New("boom")

	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Overdrafts.Create(ctx, makeFacility(facilityID, 9)); err != nil {
			return err
		}
		i := savingsItem(9, 1)
		i.ItemID = itemID
		if err := r.Reviews.Create(ctx, i); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	if _, err := reviewRepo.GetByItemID(ctx, itemID); !errors.Is(err, reviewDomain.ErrNotFound) {
		t.Fatalf("expected item absent after rollback, got %v", err)
	}
	if _, err := overdraftRepo.GetByFacilityID(ctx, facilityID); !errors.Is(err, overdraftDomain.ErrNotFound) {
		t.Fatalf("expected facility absent after rollback, got %v", err)
	}
}

func TestGormUoW_WithinItemTx_Commit(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	reviewRepo := NewReviewRepository(db)
	historyRepo := NewReviewHistoryRepository(db)

	seed := loanItem(7, 1)
	seed.Status = reviewDomain.StatusPending
	if err := reviewRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := guow.WithinItemTx(ctx, seed.ItemID, func(r uow.Repos, i *reviewDomain.Item) error {
		if i.ItemID != seed.ItemID || i.Status != reviewDomain.StatusPending {
			t.Fatalf("unexpected item passed to fn: %+v", i)
		}
		i.Status = reviewDomain.StatusApproved
		if err := r.Reviews.Save(ctx, i); err != nil {
			return err
		}
		return r.Histories.Append(ctx, &reviewDomain.History{ItemID: i.ID, Status: i.Status, Note: "ok"})
	})
	if err != nil {
		t.Fatalf("WithinItemTx commit: %v", err)
	}

	got, err := reviewRepo.GetByItemID(ctx, seed.ItemID)
	if err != nil {
		t.Fatalf("GetByItemID post-commit: %v", err)
	}
	if got.Status != reviewDomain.StatusApproved {
		t.Fatalf("status = %s, want approved", got.Status)
	}
	rows, err := historyRepo.ListByItemID(ctx, seed.ID)
	if err != nil || len(rows) != 1 {
		t.Fatalf("history rows = %d (err %v), want 1", len(rows), err)
	}
}

func TestGormUoW_WithinItemTx_Rollback(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	reviewRepo := NewReviewRepository(db)

	seed := loanItem(7, 1)
	seed.Status = reviewDomain.StatusPending
	if err := reviewRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	sentinel := errors.New("stop")
	_ = guow.WithinItemTx(ctx, seed.ItemID, func(r uow.Repos, i *reviewDomain.Item) error {
		i.Status = reviewDomain.StatusApproved
		if err := r.Reviews.Save(ctx, i); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	got, err := reviewRepo.GetByItemID(ctx, seed.ItemID)
	if err != nil {
		t.Fatalf("GetByItemID post-rollback: %v", err)
	}
	if got.Status != reviewDomain.StatusPending {
		t.Fatalf("status = %s, want pending after rollback", got.Status)
	}
}

func TestGormUoW_WithinItemTx_ItemNotFound(t *testing.T) {
	db := openUowTestDB(t)
	guow := NewGormUoW(db)

	err := guow.WithinItemTx(context.Background(), "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", func(r uow.Repos, i *reviewDomain.Item) error {
		t.Fatalf("callback should not run when the item is missing")
		return nil
	})
	if !errors.Is(err, reviewDomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
