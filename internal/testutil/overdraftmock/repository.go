package overdraftmock

import (
	"context"
	"time"

	domain "corebanking-review/internal/domain/overdraft"
)

// Repo is an in-memory overdraft.Repository for usecase tests. Facilities
// are keyed by public id; Save replaces in place like a row update.
type Repo struct {
	nextID     uint64
	Facilities map[string]*domain.Facility
}

var _ domain.Repository = (*Repo)(nil)

func New() *Repo { return &Repo{Facilities: map[string]*domain.Facility{}} }

func (m *Repo) Create(ctx context.Context, f *domain.Facility) error {
	m.nextID++
	f.ID = m.nextID
	cp := *f
	m.Facilities[f.FacilityID] = &cp
	return nil
}

func (m *Repo) Save(ctx context.Context, f *domain.Facility) error {
	cp := *f
	m.Facilities[f.FacilityID] = &cp
	return nil
}

func (m *Repo) GetByFacilityID(ctx context.Context, facilityID string) (*domain.Facility, error) {
	f, ok := m.Facilities[facilityID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *Repo) GetByFacilityIDForUpdate(ctx context.Context, facilityID string) (*domain.Facility, error) {
	return m.GetByFacilityID(ctx, facilityID)
}

func (m *Repo) ListBySavingsID(ctx context.Context, savingsID uint64) ([]domain.Facility, error) {
	var out []domain.Facility
	for _, f := range m.Facilities {
		if f.SavingsID == savingsID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *Repo) ListActiveExpiredBefore(ctx context.Context, businessDate time.Time) ([]domain.Facility, error) {
	var out []domain.Facility
	for _, f := range m.Facilities {
		if f.Status == domain.StatusActive && f.ExpiryDate.Before(businessDate) {
			out = append(out, *f)
		}
	}
	return out, nil
}
