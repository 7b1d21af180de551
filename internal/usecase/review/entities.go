package review

import (
	"time"
)

// EnqueueInput creates a new review item for exactly one subject.
type EnqueueInput struct {
	LoanID       *uint64
	SavingsID    *uint64
	Note         string
	ActorStaffID *uint64
}

// CommandInput is the single envelope driving the state machine:
// {action: approve|undo|reject|assign, ...}.
type CommandInput struct {
	ItemID        string
	Action        string
	Note          string
	StaffID       *uint64 // assign
	Rank          *int    // assign, optional re-rank
	PaymentTypeID *uint64 // approve, optional
	ActorStaffID  *uint64
}

// AssignBalancedInput routes an item to the least-loaded candidate.
type AssignBalancedInput struct {
	ItemID            string
	CandidateStaffIDs []uint64
	Note              string
	ActorStaffID      *uint64
}

type ItemDTO struct {
	ItemID          string    `json:"item_id"`
	LoanID          *uint64   `json:"loan_id,omitempty"`
	SavingsID       *uint64   `json:"savings_id,omitempty"`
	Rank            int       `json:"rank"`
	AssignedStaffID *uint64   `json:"assigned_staff_id,omitempty"`
	Status          string    `json:"status"`
	StatusCode      int       `json:"status_code"`
	PaymentTypeID   *uint64   `json:"payment_type_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`

	History []HistoryDTO `json:"history,omitempty"`
}

type HistoryDTO struct {
	Status       string    `json:"status"`
	StatusCode   int       `json:"status_code"`
	Note         string    `json:"note,omitempty"`
	ActorStaffID *uint64   `json:"actor_staff_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
