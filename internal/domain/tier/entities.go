package tier

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrPolicyNotFound means no tier matches the client type at all.
	// A missing channel-specific tier is not an error; resolution falls
	// back to the channel-less tier.
	ErrPolicyNotFound = errors.New("no limit tier configured for client type")
	ErrNotFound       = errors.New("limit tier not found")
	ErrNegativeLimit  = errors.New("tier limits must be non-negative")
	ErrUnknownParent  = errors.New("tier parent does not exist")
)

// Table: account_tiers. A tier bundles transaction/balance caps for one
// client type, optionally specialized per activation channel. A child tier
// inherits any limit it leaves unset from its parent (one level only).
type Tier struct {
	ID     uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	TierID string `gorm:"column:tier_id;type:char(32);not null;uniqueIndex:ux_account_tiers_tier_id"`

	Name        string `gorm:"column:name;size:120;not null"`
	Description string `gorm:"column:description;type:text"`

	ClientTypeID        uint64  `gorm:"column:client_type_id;not null;index"`
	ParentID            *uint64 `gorm:"column:parent_id"`
	ActivationChannelID *uint64 `gorm:"column:activation_channel_id"`

	DailyWithdrawalLimit *decimal.Decimal `gorm:"column:daily_withdrawal_limit;type:decimal(19,6)"`
	SingleDepositLimit   *decimal.Decimal `gorm:"column:single_deposit_limit;type:decimal(19,6)"`
	CumulativeBalanceCap *decimal.Decimal `gorm:"column:cumulative_balance_cap;type:decimal(19,6)"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Tier) TableName() string { return "account_tiers" }

// ValidateLimits rejects negative monetary fields.
func (t *Tier) ValidateLimits() error {
	for _, v := range []*decimal.Decimal{t.DailyWithdrawalLimit, t.SingleDepositLimit, t.CumulativeBalanceCap} {
		if v != nil && v.IsNegative() {
			return ErrNegativeLimit
		}
	}
	return nil
}

// MergeParent fills limits the tier leaves unset from its parent.
func (t *Tier) MergeParent(parent *Tier) {
	if parent == nil {
		return
	}
	if t.DailyWithdrawalLimit == nil {
		t.DailyWithdrawalLimit = parent.DailyWithdrawalLimit
	}
	if t.SingleDepositLimit == nil {
		t.SingleDepositLimit = parent.SingleDepositLimit
	}
	if t.CumulativeBalanceCap == nil {
		t.CumulativeBalanceCap = parent.CumulativeBalanceCap
	}
}
