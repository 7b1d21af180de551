package beneficiary

import (
	"errors"
	"time"

	"corebanking-review/internal/domain/ledger"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("beneficiary not found")

// Table: tpt_beneficiaries. Accounts a user may transfer to that they do
// not own. TransferLimit caps a single third-party transfer; nil or zero
// means no per-transfer cap is configured.
type Beneficiary struct {
	ID          uint64             `gorm:"column:id;primaryKey;autoIncrement"`
	UserID      uint64             `gorm:"column:user_id;not null;uniqueIndex:ux_tpt_beneficiaries_target"`
	AccountID   uint64             `gorm:"column:account_id;not null;uniqueIndex:ux_tpt_beneficiaries_target"`
	AccountType ledger.AccountType `gorm:"column:account_type;size:16;not null;uniqueIndex:ux_tpt_beneficiaries_target"`
	Name        string             `gorm:"column:name;size:120"`

	TransferLimit *decimal.Decimal `gorm:"column:transfer_limit;type:decimal(19,6)"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Beneficiary) TableName() string { return "tpt_beneficiaries" }
