package tiermock

import (
	"context"

	domain "corebanking-review/internal/domain/tier"
)

// Resolver is a function-backed mock satisfying limits.TierResolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, clientTypeID uint64, activationChannelID *uint64) (*domain.Tier, error)
}

func (m *Resolver) Resolve(ctx context.Context, clientTypeID uint64, activationChannelID *uint64) (*domain.Tier, error) {
	if m.ResolveFn != nil {
		return m.ResolveFn(ctx, clientTypeID, activationChannelID)
	}
	return nil, domain.ErrPolicyNotFound
}

// Repo is a function-backed mock satisfying tier.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, t *domain.Tier) error
	SaveFn             func(ctx context.Context, t *domain.Tier) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Tier, error)
	GetByTierIDFn      func(ctx context.Context, tierID string) (*domain.Tier, error)
	DeleteFn           func(ctx context.Context, tierID string) error
	FindByClientTypeFn func(ctx context.Context, clientTypeID uint64) ([]domain.Tier, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, t *domain.Tier) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, t *domain.Tier) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Tier, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByTierID(ctx context.Context, tierID string) (*domain.Tier, error) {
	if m.GetByTierIDFn != nil {
		return m.GetByTierIDFn(ctx, tierID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Delete(ctx context.Context, tierID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, tierID)
	}
	return nil
}

func (m *Repo) FindByClientType(ctx context.Context, clientTypeID uint64) ([]domain.Tier, error) {
	if m.FindByClientTypeFn != nil {
		return m.FindByClientTypeFn(ctx, clientTypeID)
	}
	return nil, nil
}
