package tier

import "context"

type Repository interface {
	Create(ctx context.Context, t *Tier) error
	GetByID(ctx context.Context, id uint64) (*Tier, error)
	GetByTierID(ctx context.Context, tierID string) (*Tier, error)
	Save(ctx context.Context, t *Tier) error
	Delete(ctx context.Context, tierID string) error

	// FindByClientType returns every tier for the client type, channel
	// specializations included. Resolution picks among them.
	FindByClientType(ctx context.Context, clientTypeID uint64) ([]Tier, error)
}
