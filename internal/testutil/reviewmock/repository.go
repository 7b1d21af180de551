package reviewmock

import (
	"context"

	domain "corebanking-review/internal/domain/review"
)

// Repo is a function-backed mock satisfying review.Repository. Fill in
// the fields a test needs; the rest return sane zero behavior.
type Repo struct {
	CreateFn               func(ctx context.Context, i *domain.Item) error
	SaveFn                 func(ctx context.Context, i *domain.Item) error
	GetByItemIDFn          func(ctx context.Context, itemID string) (*domain.Item, error)
	GetByItemIDForUpdateFn func(ctx context.Context, itemID string) (*domain.Item, error)
	ListFn                 func(ctx context.Context, f domain.ItemFilter) ([]domain.Item, error)
	MaxRankForSubjectFn    func(ctx context.Context, loanID, savingsID *uint64) (int, error)
	CountByAssignedStaffFn func(ctx context.Context, staffID uint64, statuses ...domain.Status) (int64, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, i *domain.Item) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, i)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, i *domain.Item) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, i)
	}
	return nil
}

func (m *Repo) GetByItemID(ctx context.Context, itemID string) (*domain.Item, error) {
	if m.GetByItemIDFn != nil {
		return m.GetByItemIDFn(ctx, itemID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByItemIDForUpdate(ctx context.Context, itemID string) (*domain.Item, error) {
	if m.GetByItemIDForUpdateFn != nil {
		return m.GetByItemIDForUpdateFn(ctx, itemID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context, f domain.ItemFilter) ([]domain.Item, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) MaxRankForSubject(ctx context.Context, loanID, savingsID *uint64) (int, error) {
	if m.MaxRankForSubjectFn != nil {
		return m.MaxRankForSubjectFn(ctx, loanID, savingsID)
	}
	return 0, nil
}

func (m *Repo) CountByAssignedStaff(ctx context.Context, staffID uint64, statuses ...domain.Status) (int64, error) {
	if m.CountByAssignedStaffFn != nil {
		return m.CountByAssignedStaffFn(ctx, staffID, statuses...)
	}
	return 0, nil
}

// HistoryRepo is a recording mock for review.HistoryRepository: appends
// land in Rows in order, so tests can replay them.
type HistoryRepo struct {
	AppendFn func(ctx context.Context, h *domain.History) error
	Rows     []domain.History
}

var _ domain.HistoryRepository = (*HistoryRepo)(nil)

func (m *HistoryRepo) Append(ctx context.Context, h *domain.History) error {
	if m.AppendFn != nil {
		if err := m.AppendFn(ctx, h); err != nil {
			return err
		}
	}
	m.Rows = append(m.Rows, *h)
	return nil
}

func (m *HistoryRepo) ListByItemID(ctx context.Context, itemID uint64) ([]domain.History, error) {
	var out []domain.History
	for _, h := range m.Rows {
		if h.ItemID == itemID {
			out = append(out, h)
		}
	}
	return out, nil
}
