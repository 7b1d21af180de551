package review

import (
	"context"
	"errors"

	domain "corebanking-review/internal/domain/review"
	"corebanking-review/internal/domain/uow"
	"corebanking-review/pkg/id"
)

var (
	ErrNoteRequired  = errors.New("a note is required for this command")
	ErrStaffRequired = errors.New("assign requires a staff id")
	ErrNoCandidates  = errors.New("balanced assignment needs at least one candidate staff id")
)

// BacklogStatuses are the states that count toward a reviewer's open
// workload when balancing assignments.
var BacklogStatuses = []domain.Status{domain.StatusQueue, domain.StatusPending, domain.StatusReassigned}

type Usecase struct {
	reviews   domain.Repository
	histories domain.HistoryRepository
	uow       uow.UnitOfWork
}

func NewUsecase(reviews domain.Repository, histories domain.HistoryRepository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{reviews: reviews, histories: histories, uow: tx}
}

// Enqueue creates a review item in QUEUE with the next free rank for its
// subject. A concurrent enqueue racing for the same rank loses at commit
// time with ErrRankConflict; the caller recomputes and retries.
func (u *Usecase) Enqueue(ctx context.Context, in EnqueueInput) (*ItemDTO, error) {
	item := &domain.Item{
		ItemID:    id.NewID32(),
		LoanID:    in.LoanID,
		SavingsID: in.SavingsID,
		Status:    domain.StatusQueue,
	}
	if err := item.ValidateSubject(); err != nil {
		return nil, err
	}

	var dto *ItemDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		maxRank, err := r.Reviews.MaxRankForSubject(ctx, in.LoanID, in.SavingsID)
		if err != nil {
			return err
		}
		item.Rank = maxRank + 1

		if err := r.Reviews.Create(ctx, item); err != nil {
			return err
		}
		if err := r.Histories.Append(ctx, &domain.History{
			ItemID:       item.ID,
			Status:       item.Status,
			Note:         in.Note,
			ActorStaffID: in.ActorStaffID,
		}); err != nil {
			return err
		}
		dto = toItemDTO(item, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Execute dispatches a command envelope onto the state machine.
func (u *Usecase) Execute(ctx context.Context, in CommandInput) (*ItemDTO, error) {
	switch in.Action {
	case domain.CommandApprove:
		return u.approve(ctx, in)
	case domain.CommandReject:
		return u.reject(ctx, in)
	case domain.CommandUndo:
		return u.undo(ctx, in)
	case domain.CommandAssign:
		return u.assign(ctx, in)
	}
	return nil, &domain.UnrecognizedCommandError{Command: in.Action}
}

func (u *Usecase) approve(ctx context.Context, in CommandInput) (*ItemDTO, error) {
	if in.Note == "" {
		return nil, ErrNoteRequired
	}
	return u.transition(ctx, in, func(i *domain.Item) error {
		if !i.Status.Decidable() {
			return &domain.InvalidTransitionError{Command: domain.CommandApprove, From: i.Status}
		}
		i.Status = domain.StatusApproved
		if in.PaymentTypeID != nil {
			i.PaymentTypeID = in.PaymentTypeID
		}
		return nil
	})
}

func (u *Usecase) reject(ctx context.Context, in CommandInput) (*ItemDTO, error) {
	if in.Note == "" {
		return nil, ErrNoteRequired
	}
	return u.transition(ctx, in, func(i *domain.Item) error {
		if !i.Status.Decidable() {
			return &domain.InvalidTransitionError{Command: domain.CommandReject, From: i.Status}
		}
		i.Status = domain.StatusRejected
		return nil
	})
}

// undo reverses the last decision: APPROVED/REJECTED go back to PENDING,
// or to QUEUE when the item has no assignee to return it to.
func (u *Usecase) undo(ctx context.Context, in CommandInput) (*ItemDTO, error) {
	if in.Note == "" {
		return nil, ErrNoteRequired
	}
	return u.transition(ctx, in, func(i *domain.Item) error {
		if !i.Status.Terminal() {
			return &domain.InvalidTransitionError{Command: domain.CommandUndo, From: i.Status}
		}
		if i.AssignedStaffID != nil {
			i.Status = domain.StatusPending
		} else {
			i.Status = domain.StatusQueue
		}
		return nil
	})
}

// assign homes an item under a staff member. A first assignment lands in
// PENDING; moving it to a different reviewer lands in REASSIGNED, which
// approve/reject accept the same way. Assign is valid from any state so a
// decided item can be re-homed for follow-up, always with a history row.
func (u *Usecase) assign(ctx context.Context, in CommandInput) (*ItemDTO, error) {
	if in.StaffID == nil {
		return nil, ErrStaffRequired
	}
	return u.transition(ctx, in, func(i *domain.Item) error {
		next := domain.StatusPending
		if i.AssignedStaffID != nil && *i.AssignedStaffID != *in.StaffID {
			next = domain.StatusReassigned
		}
		i.AssignedStaffID = in.StaffID
		if in.Rank != nil {
			i.Rank = *in.Rank
		}
		i.Status = next
		return nil
	})
}

// transition applies mutate to the locked item, then persists the item and
// its history row in one transaction.
func (u *Usecase) transition(ctx context.Context, in CommandInput, mutate func(*domain.Item) error) (*ItemDTO, error) {
	var dto *ItemDTO
	err := u.uow.WithinItemTx(ctx, in.ItemID, func(r uow.Repos, i *domain.Item) error {
		if err := mutate(i); err != nil {
			return err
		}
		if err := r.Reviews.Save(ctx, i); err != nil {
			return err
		}
		if err := r.Histories.Append(ctx, &domain.History{
			ItemID:       i.ID,
			Status:       i.Status,
			Note:         in.Note,
			ActorStaffID: in.ActorStaffID,
		}); err != nil {
			return err
		}
		dto = toItemDTO(i, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// AssignBalanced routes the item to the candidate with the smallest open
// backlog (QUEUE+PENDING+REASSIGNED), ties broken by lowest staff id.
func (u *Usecase) AssignBalanced(ctx context.Context, in AssignBalancedInput) (*ItemDTO, error) {
	if len(in.CandidateStaffIDs) == 0 {
		return nil, ErrNoCandidates
	}

	var chosen uint64
	var best int64 = -1
	for _, staffID := range in.CandidateStaffIDs {
		n, err := u.reviews.CountByAssignedStaff(ctx, staffID, BacklogStatuses...)
		if err != nil {
			return nil, err
		}
		if best < 0 || n < best || (n == best && staffID < chosen) {
			best = n
			chosen = staffID
		}
	}

	return u.Execute(ctx, CommandInput{
		ItemID:       in.ItemID,
		Action:       domain.CommandAssign,
		Note:         in.Note,
		StaffID:      &chosen,
		ActorStaffID: in.ActorStaffID,
	})
}

// Backlog is the open-item count for one staff member.
func (u *Usecase) Backlog(ctx context.Context, staffID uint64) (int64, error) {
	return u.reviews.CountByAssignedStaff(ctx, staffID, BacklogStatuses...)
}

// Get returns the item with its full history, oldest entry first.
func (u *Usecase) Get(ctx context.Context, itemID string) (*ItemDTO, error) {
	item, err := u.reviews.GetByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	history, err := u.histories.ListByItemID(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	return toItemDTO(item, history), nil
}

// List applies the structured optional filters.
func (u *Usecase) List(ctx context.Context, f domain.ItemFilter) ([]ItemDTO, error) {
	items, err := u.reviews.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]ItemDTO, 0, len(items))
	for idx := range items {
		out = append(out, *toItemDTO(&items[idx], nil))
	}
	return out, nil
}

func toItemDTO(i *domain.Item, history []domain.History) *ItemDTO {
	dto := &ItemDTO{
		ItemID:          i.ItemID,
		LoanID:          i.LoanID,
		SavingsID:       i.SavingsID,
		Rank:            i.Rank,
		AssignedStaffID: i.AssignedStaffID,
		Status:          i.Status.String(),
		StatusCode:      int(i.Status),
		PaymentTypeID:   i.PaymentTypeID,
		CreatedAt:       i.CreatedAt,
	}
	for _, h := range history {
		dto.History = append(dto.History, HistoryDTO{
			Status:       h.Status.String(),
			StatusCode:   int(h.Status),
			Note:         h.Note,
			ActorStaffID: h.ActorStaffID,
			CreatedAt:    h.CreatedAt,
		})
	}
	return dto
}
