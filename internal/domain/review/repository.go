package review

import "context"

// ItemFilter carries the optional list criteria. A nil field adds no
// predicate; predicates are combined structurally, never by string
// concatenation.
type ItemFilter struct {
	AssignedStaffID *uint64
	Status          *Status
	LoanID          *uint64
	SavingsID       *uint64
}

type Repository interface {
	// Create inserts a new item; the (subject, rank) unique index decides
	// rank collisions, surfaced as ErrRankConflict.
	Create(ctx context.Context, i *Item) error

	GetByItemID(ctx context.Context, itemID string) (*Item, error)

	// GetByItemIDForUpdate locks the row for the enclosing transaction.
	GetByItemIDForUpdate(ctx context.Context, itemID string) (*Item, error)

	Save(ctx context.Context, i *Item) error

	List(ctx context.Context, f ItemFilter) ([]Item, error)

	// MaxRankForSubject returns the highest rank among items sharing the
	// subject, or 0 when none exist. Pass exactly one non-nil id.
	MaxRankForSubject(ctx context.Context, loanID, savingsID *uint64) (int, error)

	// CountByAssignedStaff counts items held by a staff member in any of
	// the given statuses. Backlog balancing reads this.
	CountByAssignedStaff(ctx context.Context, staffID uint64, statuses ...Status) (int64, error)
}

type HistoryRepository interface {
	// Append adds one immutable history row. There is no update or delete.
	Append(ctx context.Context, h *History) error

	// ListByItemID returns history rows in creation order.
	ListByItemID(ctx context.Context, itemID uint64) ([]History, error)
}
