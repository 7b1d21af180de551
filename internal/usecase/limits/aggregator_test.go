package limits

import (
	"context"
	"testing"
	"time"

	"corebanking-review/internal/domain/ledger"
	"corebanking-review/internal/testutil/ledgermock"

	"github.com/shopspring/decimal"
)

func TestTotalAmount_EmptyWindowIsZeroNotError(t *testing.T) {
	agg := NewAggregator(&ledgermock.Repo{})

	total, err := agg.TotalAmount(context.Background(), 1, ledger.AccountTypeSavings, businessToday, businessToday)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if !total.IsZero() {
		t.Fatalf("total = %s, want 0", total)
	}
}

func TestTotalAmount_SameDataSameAnswer(t *testing.T) {
	calls := 0
	l := &ledgermock.Repo{
		TotalAmountFn: func(ctx context.Context, accountID uint64, accountType ledger.AccountType, from, to time.Time) (decimal.Decimal, error) {
			calls++
			return decimal.NewFromInt(750), nil
		},
	}
	agg := NewAggregator(l)
	ctx := context.Background()

	first, err := agg.TotalAmount(ctx, 1, ledger.AccountTypeSavings, businessToday, businessToday)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := agg.TotalAmount(ctx, 1, ledger.AccountTypeSavings, businessToday, businessToday)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !first.Equal(second) {
		t.Fatalf("totals differ: %s vs %s", first, second)
	}
	// no caching between calls: the ledger is re-read every time
	if calls != 2 {
		t.Fatalf("ledger reads = %d, want 2", calls)
	}
}
