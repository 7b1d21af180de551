package overdraft

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("overdraft facility not found")

// Status is the integer-coded facility state, sharing the instrument
// status code space used elsewhere in the schema.
type Status int

const (
	StatusPending  Status = 100
	StatusApproved Status = 200
	StatusActive   Status = 300
	StatusRejected Status = 500
	StatusClosed   Status = 600
)

// StatusFromCode rejects unknown persisted codes at the boundary.
func StatusFromCode(code int) (Status, error) {
	switch Status(code) {
	case StatusPending, StatusApproved, StatusActive, StatusRejected, StatusClosed:
		return Status(code), nil
	}
	return 0, fmt.Errorf("overdraft: unknown status code %d", code)
}

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusApproved:
		return "approved"
	case StatusActive:
		return "active"
	case StatusRejected:
		return "rejected"
	case StatusClosed:
		return "closed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// InvalidTransitionError reports a facility command applied in a state it
// does not accept.
type InvalidTransitionError struct {
	Command string
	From    Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s an overdraft facility in state %s", e.Command, e.From)
}

// Table: overdraft_facilities. Per-savings-account overdraft terms.
// Nothing prevents several facilities per account; the schema deliberately
// mirrors the loose source model (see DESIGN.md).
type Facility struct {
	ID         uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	FacilityID string `gorm:"column:facility_id;type:char(32);not null;uniqueIndex:ux_overdraft_facilities_facility_id"`
	SavingsID  uint64 `gorm:"column:savings_id;not null;index"`

	Amount            decimal.Decimal `gorm:"column:amount;type:decimal(19,6);not null"`
	NominalAnnualRate decimal.Decimal `gorm:"column:nominal_annual_rate;type:decimal(9,4);not null"`

	StartDate    time.Time `gorm:"column:start_date;type:date;not null"`
	NumberOfDays int       `gorm:"column:number_of_days;not null"`
	// ExpiryDate = StartDate + NumberOfDays, fixed at creation.
	ExpiryDate time.Time `gorm:"column:expiry_date;type:date;not null"`

	Status Status `gorm:"column:status;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Facility) TableName() string { return "overdraft_facilities" }
