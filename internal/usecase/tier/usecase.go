package tier

import (
	"context"
	"errors"

	domain "corebanking-review/internal/domain/tier"
	"corebanking-review/pkg/id"

	"github.com/shopspring/decimal"
)

type Usecase struct {
	repo domain.Repository
}

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

type CreateInput struct {
	Name                 string
	Description          string
	ClientTypeID         uint64
	ParentTierID         *string
	ActivationChannelID  *uint64
	DailyWithdrawalLimit *decimal.Decimal
	SingleDepositLimit   *decimal.Decimal
	CumulativeBalanceCap *decimal.Decimal
}

// UpdateInput has partial-update semantics: only non-nil fields are
// applied, everything else is left untouched.
type UpdateInput struct {
	Name                 *string
	Description          *string
	ParentTierID         *string
	ActivationChannelID  *uint64
	DailyWithdrawalLimit *decimal.Decimal
	SingleDepositLimit   *decimal.Decimal
	CumulativeBalanceCap *decimal.Decimal
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*domain.Tier, error) {
	t := &domain.Tier{
		TierID:               id.NewID32(),
		Name:                 in.Name,
		Description:          in.Description,
		ClientTypeID:         in.ClientTypeID,
		ActivationChannelID:  in.ActivationChannelID,
		DailyWithdrawalLimit: in.DailyWithdrawalLimit,
		SingleDepositLimit:   in.SingleDepositLimit,
		CumulativeBalanceCap: in.CumulativeBalanceCap,
	}
	if in.ParentTierID != nil {
		parent, err := u.repo.GetByTierID(ctx, *in.ParentTierID)
		if err != nil {
			return nil, domain.ErrUnknownParent
		}
		t.ParentID = &parent.ID
	}
	if err := t.ValidateLimits(); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Resolve picks the tier for a client type. A channel match wins when the
// caller supplies a channel; otherwise, and when no channel-specific tier
// exists, the channel-less tier applies. Only a missing client type is an
// error. Limits unset on the chosen tier are inherited from its parent.
func (u *Usecase) Resolve(ctx context.Context, clientTypeID uint64, activationChannelID *uint64) (*domain.Tier, error) {
	tiers, err := u.repo.FindByClientType(ctx, clientTypeID)
	if err != nil {
		return nil, err
	}
	if len(tiers) == 0 {
		return nil, domain.ErrPolicyNotFound
	}

	var channelless *domain.Tier
	var matched *domain.Tier
	for i := range tiers {
		t := &tiers[i]
		if t.ActivationChannelID == nil {
			if channelless == nil {
				channelless = t
			}
			continue
		}
		if activationChannelID != nil && *t.ActivationChannelID == *activationChannelID {
			matched = t
		}
	}
	chosen := matched
	if chosen == nil {
		chosen = channelless
	}
	if chosen == nil {
		return nil, domain.ErrPolicyNotFound
	}

	resolved := *chosen
	if resolved.ParentID != nil {
		parent, err := u.repo.GetByID(ctx, *resolved.ParentID)
		if err != nil {
			// a dangling parent reference is a data-integrity fault, not
			// a resolvable policy; never hand back partial limits
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrUnknownParent
			}
			return nil, err
		}
		resolved.MergeParent(parent)
	}
	return &resolved, nil
}

// Update applies the fields present in the change set and returns a map of
// {field: newValue} covering exactly what changed, for audit purposes.
func (u *Usecase) Update(ctx context.Context, tierID string, in UpdateInput) (map[string]any, error) {
	t, err := u.repo.GetByTierID(ctx, tierID)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if in.Name != nil && *in.Name != t.Name {
		t.Name = *in.Name
		changes["name"] = t.Name
	}
	if in.Description != nil && *in.Description != t.Description {
		t.Description = *in.Description
		changes["description"] = t.Description
	}
	if in.ParentTierID != nil {
		parent, err := u.repo.GetByTierID(ctx, *in.ParentTierID)
		if err != nil {
			return nil, domain.ErrUnknownParent
		}
		t.ParentID = &parent.ID
		changes["parent_id"] = parent.ID
	}
	if in.ActivationChannelID != nil {
		t.ActivationChannelID = in.ActivationChannelID
		changes["activation_channel_id"] = *in.ActivationChannelID
	}
	if in.DailyWithdrawalLimit != nil {
		t.DailyWithdrawalLimit = in.DailyWithdrawalLimit
		changes["daily_withdrawal_limit"] = *in.DailyWithdrawalLimit
	}
	if in.SingleDepositLimit != nil {
		t.SingleDepositLimit = in.SingleDepositLimit
		changes["single_deposit_limit"] = *in.SingleDepositLimit
	}
	if in.CumulativeBalanceCap != nil {
		t.CumulativeBalanceCap = in.CumulativeBalanceCap
		changes["cumulative_balance_cap"] = *in.CumulativeBalanceCap
	}

	if err := t.ValidateLimits(); err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return changes, nil
	}
	if err := u.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	return changes, nil
}

func (u *Usecase) Get(ctx context.Context, tierID string) (*domain.Tier, error) {
	return u.repo.GetByTierID(ctx, tierID)
}

func (u *Usecase) Delete(ctx context.Context, tierID string) error {
	return u.repo.Delete(ctx, tierID)
}
