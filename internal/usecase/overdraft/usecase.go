package overdraft

import (
	"context"
	"fmt"
	"time"

	domain "corebanking-review/internal/domain/overdraft"
	reviewdomain "corebanking-review/internal/domain/review"
	"corebanking-review/internal/domain/uow"
	"corebanking-review/internal/usecase/limits"
	"corebanking-review/pkg/clock"
	"corebanking-review/pkg/id"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Facility commands, driven off the same envelope shape as review
// commands.
const (
	CommandApprove  = "approve"
	CommandActivate = "activate"
	CommandReject   = "reject"
)

type UnrecognizedCommandError struct {
	Command string
}

func (e *UnrecognizedCommandError) Error() string {
	return fmt.Sprintf("unrecognized overdraft command %q, expected one of: %s %s %s",
		e.Command, CommandApprove, CommandActivate, CommandReject)
}

type Usecase struct {
	facilities domain.Repository
	guard      *limits.Guard
	uow        uow.UnitOfWork
	clock      clock.Clock
	log        *logrus.Logger
}

func NewUsecase(facilities domain.Repository, guard *limits.Guard, tx uow.UnitOfWork, c clock.Clock, log *logrus.Logger) *Usecase {
	return &Usecase{facilities: facilities, guard: guard, uow: tx, clock: c, log: log}
}

type RequestInput struct {
	SavingsID         uint64
	Amount            decimal.Decimal
	NominalAnnualRate decimal.Decimal
	StartDate         time.Time
	NumberOfDays      int
	Note              string
	ActorStaffID      *uint64
}

type FacilityDTO struct {
	FacilityID        string          `json:"facility_id"`
	SavingsID         uint64          `json:"savings_id"`
	Amount            decimal.Decimal `json:"amount"`
	NominalAnnualRate decimal.Decimal `json:"nominal_annual_rate"`
	StartDate         time.Time       `json:"start_date"`
	NumberOfDays      int             `json:"number_of_days"`
	ExpiryDate        time.Time       `json:"expiry_date"`
	Status            string          `json:"status"`
	StatusCode        int             `json:"status_code"`
	ReviewItemID      string          `json:"review_item_id,omitempty"`
}

// Request validates the overdraft terms, persists the facility as PENDING
// and enqueues a review item for the savings account, both writes in one
// transaction, so a facility never exists without its review item.
func (u *Usecase) Request(ctx context.Context, in RequestInput) (*FacilityDTO, error) {
	if err := u.guard.CheckOverdraftRequest(in.SavingsID, in.Amount, in.NominalAnnualRate, in.StartDate, in.NumberOfDays); err != nil {
		return nil, err
	}

	start := clock.Midnight(in.StartDate)
	f := &domain.Facility{
		FacilityID:        id.NewID32(),
		SavingsID:         in.SavingsID,
		Amount:            in.Amount,
		NominalAnnualRate: in.NominalAnnualRate,
		StartDate:         start,
		NumberOfDays:      in.NumberOfDays,
		ExpiryDate:        start.AddDate(0, 0, in.NumberOfDays),
		Status:            domain.StatusPending,
	}

	var dto *FacilityDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Overdrafts.Create(ctx, f); err != nil {
			return err
		}

		savingsID := in.SavingsID
		item := &reviewdomain.Item{
			ItemID:    id.NewID32(),
			SavingsID: &savingsID,
			Status:    reviewdomain.StatusQueue,
		}
		maxRank, err := r.Reviews.MaxRankForSubject(ctx, nil, &savingsID)
		if err != nil {
			return err
		}
		item.Rank = maxRank + 1
		if err := r.Reviews.Create(ctx, item); err != nil {
			return err
		}
		if err := r.Histories.Append(ctx, &reviewdomain.History{
			ItemID:       item.ID,
			Status:       item.Status,
			Note:         in.Note,
			ActorStaffID: in.ActorStaffID,
		}); err != nil {
			return err
		}

		dto = toFacilityDTO(f)
		dto.ReviewItemID = item.ItemID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Execute dispatches a facility command.
func (u *Usecase) Execute(ctx context.Context, facilityID, command string) (*FacilityDTO, error) {
	switch command {
	case CommandApprove:
		return u.transition(ctx, facilityID, command, domain.StatusPending, domain.StatusApproved)
	case CommandActivate:
		return u.transition(ctx, facilityID, command, domain.StatusApproved, domain.StatusActive)
	case CommandReject:
		return u.transition(ctx, facilityID, command, domain.StatusPending, domain.StatusRejected)
	}
	return nil, &UnrecognizedCommandError{Command: command}
}

// transition locks the facility row and applies the status change inside
// one transaction, so two racing commands cannot both observe `from`.
func (u *Usecase) transition(ctx context.Context, facilityID, command string, from, to domain.Status) (*FacilityDTO, error) {
	var dto *FacilityDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		f, err := r.Overdrafts.GetByFacilityIDForUpdate(ctx, facilityID)
		if err != nil {
			return err
		}
		if f.Status != from {
			return &domain.InvalidTransitionError{Command: command, From: f.Status}
		}
		f.Status = to
		if err := r.Overdrafts.Save(ctx, f); err != nil {
			return err
		}
		dto = toFacilityDTO(f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, facilityID string) (*FacilityDTO, error) {
	f, err := u.facilities.GetByFacilityID(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	return toFacilityDTO(f), nil
}

func (u *Usecase) ListBySavings(ctx context.Context, savingsID uint64) ([]FacilityDTO, error) {
	fs, err := u.facilities.ListBySavingsID(ctx, savingsID)
	if err != nil {
		return nil, err
	}
	out := make([]FacilityDTO, 0, len(fs))
	for i := range fs {
		out = append(out, *toFacilityDTO(&fs[i]))
	}
	return out, nil
}

// CloseExpired moves ACTIVE facilities whose validity window has lapsed to
// CLOSED. The nightly sweep calls this with the current business date.
func (u *Usecase) CloseExpired(ctx context.Context) (int, error) {
	today := u.clock.BusinessDate()
	expired, err := u.facilities.ListActiveExpiredBefore(ctx, today)
	if err != nil {
		return 0, err
	}
	closed := 0
	for i := range expired {
		f := &expired[i]
		f.Status = domain.StatusClosed
		if err := u.facilities.Save(ctx, f); err != nil {
			return closed, err
		}
		u.log.WithFields(logrus.Fields{
			"facility_id": f.FacilityID,
			"savings_id":  f.SavingsID,
			"expiry_date": f.ExpiryDate.Format("2006-01-02"),
		}).Info("overdraft facility closed after expiry")
		closed++
	}
	return closed, nil
}

func toFacilityDTO(f *domain.Facility) *FacilityDTO {
	return &FacilityDTO{
		FacilityID:        f.FacilityID,
		SavingsID:         f.SavingsID,
		Amount:            f.Amount,
		NominalAnnualRate: f.NominalAnnualRate,
		StartDate:         f.StartDate,
		NumberOfDays:      f.NumberOfDays,
		ExpiryDate:        f.ExpiryDate,
		Status:            f.Status.String(),
		StatusCode:        int(f.Status),
	}
}
