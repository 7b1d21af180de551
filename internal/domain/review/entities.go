package review

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound = errors.New("review item not found")
	// ErrRankConflict is the surfaced form of the (subject, rank) unique
	// index firing. Callers recompute the rank and retry; the core never
	// retries on its own.
	ErrRankConflict = errors.New("review item rank already taken for subject")
	// ErrSubjectRequired / ErrSubjectAmbiguous guard the exactly-one-of
	// loan/savings rule before anything reaches the database.
	ErrSubjectRequired  = errors.New("review item needs a loan or savings subject")
	ErrSubjectAmbiguous = errors.New("review item cannot reference both a loan and a savings account")
)

// Commands accepted by the review state machine.
const (
	CommandApprove = "approve"
	CommandUndo    = "undo"
	CommandReject  = "reject"
	CommandAssign  = "assign"
)

// UnrecognizedCommandError reports an unknown action keyword together with
// the accepted vocabulary.
type UnrecognizedCommandError struct {
	Command string
}

func (e *UnrecognizedCommandError) Error() string {
	return fmt.Sprintf("unrecognized review command %q, expected one of: %s %s %s %s",
		e.Command, CommandApprove, CommandUndo, CommandReject, CommandAssign)
}

// InvalidTransitionError reports a command applied in a state it does not
// accept.
type InvalidTransitionError struct {
	Command string
	From    Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a review item in state %s", e.Command, e.From)
}

// Table: review_items
type Item struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	ItemID string `gorm:"column:item_id;type:char(32);not null;uniqueIndex:ux_review_items_item_id"`
	// Exactly one of LoanID / SavingsID is set. Rank is unique per subject;
	// the composite indexes are the only arbiter under concurrency.
	LoanID    *uint64 `gorm:"column:loan_id;uniqueIndex:ux_review_items_loan_rank"`
	SavingsID *uint64 `gorm:"column:savings_id;uniqueIndex:ux_review_items_savings_rank"`
	Rank      int     `gorm:"column:rank;not null;uniqueIndex:ux_review_items_loan_rank;uniqueIndex:ux_review_items_savings_rank"`

	AssignedStaffID *uint64 `gorm:"column:assigned_staff_id;index"`
	Status          Status  `gorm:"column:status;not null"`
	// PaymentTypeID is set when an approval concludes a monetary release.
	PaymentTypeID *uint64 `gorm:"column:payment_type_id"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Item) TableName() string { return "review_items" }

// ValidateSubject enforces the mutually exclusive subject reference.
func (i *Item) ValidateSubject() error {
	switch {
	case i.LoanID == nil && i.SavingsID == nil:
		return ErrSubjectRequired
	case i.LoanID != nil && i.SavingsID != nil:
		return ErrSubjectAmbiguous
	}
	return nil
}

// Table: review_history. Append-only, one row per status transition.
type History struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	ItemID       uint64    `gorm:"column:item_id;not null;index"`
	Status       Status    `gorm:"column:status;not null"`
	Note         string    `gorm:"column:note;type:text"`
	ActorStaffID *uint64   `gorm:"column:actor_staff_id"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (History) TableName() string { return "review_history" }
