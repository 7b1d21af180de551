package limits

import (
	"context"
	"errors"
	"time"

	"corebanking-review/internal/domain/beneficiary"
	"corebanking-review/internal/domain/ledger"
	"corebanking-review/internal/domain/tier"
	"corebanking-review/pkg/clock"

	"github.com/shopspring/decimal"
)

// TierResolver resolves the effective tier for a client type, falling back
// to the channel-less tier when no channel match exists.
type TierResolver interface {
	Resolve(ctx context.Context, clientTypeID uint64, activationChannelID *uint64) (*tier.Tier, error)
}

// GuardConfig carries the system-wide switches the guard consults.
type GuardConfig struct {
	// DailyTPTLimitEnabled turns the daily third-party-transfer aggregate
	// check on; when off the check is a no-op.
	DailyTPTLimitEnabled bool
	DailyTPTLimit        decimal.Decimal
}

// Guard accepts or rejects a proposed transaction against resolved policy
// and freshly aggregated history. Every rejection is typed; the requested
// amount is never silently truncated.
type Guard struct {
	beneficiaries beneficiary.Repository
	tiers         TierResolver
	agg           *Aggregator
	clock         clock.Clock
	cfg           GuardConfig
}

func NewGuard(b beneficiary.Repository, t TierResolver, a *Aggregator, c clock.Clock, cfg GuardConfig) *Guard {
	return &Guard{beneficiaries: b, tiers: t, agg: a, clock: c, cfg: cfg}
}

// CheckBeneficiaryTransferLimit rejects a transfer above the configured
// per-(user, beneficiary) cap. No beneficiary record or no positive limit
// means unlimited; there is no implicit cap.
func (g *Guard) CheckBeneficiaryTransferLimit(ctx context.Context, userID, destAccountID uint64, destAccountType ledger.AccountType, amount decimal.Decimal) error {
	b, err := g.beneficiaries.Get(ctx, userID, destAccountID, destAccountType)
	if err != nil {
		if errors.Is(err, beneficiary.ErrNotFound) {
			return nil
		}
		return err
	}
	if b.TransferLimit == nil || !b.TransferLimit.IsPositive() {
		return nil
	}
	if amount.GreaterThan(*b.TransferLimit) {
		return &LimitExceededError{
			Kind:     KindBeneficiaryTransfer,
			Limit:    *b.TransferLimit,
			Current:  decimal.Zero,
			Proposed: amount,
		}
	}
	return nil
}

// CheckDailyAggregateLimit enforces the system-wide daily third-party
// transfer cap for one source account and date. The realized total is
// re-read on every call; two concurrent transfers can both pass and
// jointly overshoot; the read is not serialized (see DESIGN.md).
// A transaction that would exactly reach the cap is rejected, not just
// one that would exceed it.
func (g *Guard) CheckDailyAggregateLimit(ctx context.Context, sourceAccountID uint64, accountType ledger.AccountType, transactionDate time.Time, amount decimal.Decimal) error {
	if !g.cfg.DailyTPTLimitEnabled {
		return nil
	}
	day := clock.Midnight(transactionDate)
	total, err := g.agg.TotalAmount(ctx, sourceAccountID, accountType, day, day)
	if err != nil {
		return err
	}
	limit := g.cfg.DailyTPTLimit
	if total.GreaterThanOrEqual(limit) || limit.LessThanOrEqual(total.Add(amount)) {
		return &LimitExceededError{
			Kind:     KindDailyAggregate,
			Limit:    limit,
			Current:  total,
			Proposed: amount,
		}
	}
	return nil
}

// CheckOverdraftRequest validates the terms of a new overdraft request.
// All failed rules are reported together. The start date must lie
// strictly before the business date: no future starts, no same-day start.
func (g *Guard) CheckOverdraftRequest(savingsID uint64, amount, nominalRate decimal.Decimal, startDate time.Time, numberOfDays int) error {
	var faults ValidationErrors
	if savingsID == 0 {
		faults = append(faults, FieldFault{Field: "savings_id", Message: "is required"})
	}
	if amount.IsNegative() {
		faults = append(faults, FieldFault{Field: "amount", Message: "must be zero or positive"})
	}
	if nominalRate.IsNegative() {
		faults = append(faults, FieldFault{Field: "nominal_annual_rate", Message: "must be zero or positive"})
	}
	if numberOfDays <= 0 {
		faults = append(faults, FieldFault{Field: "number_of_days", Message: "must be greater than zero"})
	}
	if !clock.Midnight(startDate).Before(g.clock.BusinessDate()) {
		faults = append(faults, FieldFault{Field: "start_date", Message: "must be before the current business date"})
	}
	if len(faults) > 0 {
		return faults
	}
	return nil
}

// WithdrawalCheckInput describes a proposed withdrawal for tier checks.
type WithdrawalCheckInput struct {
	AccountID           uint64
	AccountType         ledger.AccountType
	ClientTypeID        uint64
	ActivationChannelID *uint64
	TransactionDate     time.Time
	Amount              decimal.Decimal
}

// CheckWithdrawal enforces the tier's daily withdrawal limit: today's
// realized withdrawals plus the proposed amount may not exceed it.
func (g *Guard) CheckWithdrawal(ctx context.Context, in WithdrawalCheckInput) error {
	t, err := g.tiers.Resolve(ctx, in.ClientTypeID, in.ActivationChannelID)
	if err != nil {
		return err
	}
	if t.DailyWithdrawalLimit == nil {
		return nil
	}
	withdrawn, err := g.agg.WithdrawnOn(ctx, in.AccountID, in.AccountType, clock.Midnight(in.TransactionDate))
	if err != nil {
		return err
	}
	if withdrawn.Add(in.Amount).GreaterThan(*t.DailyWithdrawalLimit) {
		return &LimitExceededError{
			Kind:     KindDailyWithdrawal,
			Limit:    *t.DailyWithdrawalLimit,
			Current:  withdrawn,
			Proposed: in.Amount,
		}
	}
	return nil
}

// DepositCheckInput describes a proposed deposit for tier checks.
type DepositCheckInput struct {
	AccountID           uint64
	AccountType         ledger.AccountType
	ClientTypeID        uint64
	ActivationChannelID *uint64
	Amount              decimal.Decimal
}

// CheckDeposit enforces the tier's single-deposit limit and cumulative
// balance cap.
func (g *Guard) CheckDeposit(ctx context.Context, in DepositCheckInput) error {
	t, err := g.tiers.Resolve(ctx, in.ClientTypeID, in.ActivationChannelID)
	if err != nil {
		return err
	}
	if t.SingleDepositLimit != nil && in.Amount.GreaterThan(*t.SingleDepositLimit) {
		return &LimitExceededError{
			Kind:     KindSingleDeposit,
			Limit:    *t.SingleDepositLimit,
			Current:  decimal.Zero,
			Proposed: in.Amount,
		}
	}
	if t.CumulativeBalanceCap != nil {
		balance, err := g.agg.Balance(ctx, in.AccountID, in.AccountType)
		if err != nil {
			return err
		}
		if balance.Add(in.Amount).GreaterThan(*t.CumulativeBalanceCap) {
			return &LimitExceededError{
				Kind:     KindCumulativeBalance,
				Limit:    *t.CumulativeBalanceCap,
				Current:  balance,
				Proposed: in.Amount,
			}
		}
	}
	return nil
}
