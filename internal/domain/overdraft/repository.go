package overdraft

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, f *Facility) error
	GetByFacilityID(ctx context.Context, facilityID string) (*Facility, error)
	GetByFacilityIDForUpdate(ctx context.Context, facilityID string) (*Facility, error)
	Save(ctx context.Context, f *Facility) error
	ListBySavingsID(ctx context.Context, savingsID uint64) ([]Facility, error)

	// ListActiveExpiredBefore feeds the nightly expiry sweep.
	ListActiveExpiredBefore(ctx context.Context, businessDate time.Time) ([]Facility, error)
}
