package contact

import (
	"context"
	"contactbook/internal/core/domain"
)

type Repository interface {
	// Queries
	Find(ctx context.Context, name string) (*domain.Record, error)
	Batch(ctx context.Context, page, batchSize int) ([]*domain.Record, int, error)

	// Commands
	Save(ctx context.Context, record *domain.Record) (bool, error)
	Update(ctx context.Context, name string, mutate func(*domain.Record) error) (*domain.Record, error)
	Delete(ctx context.Context, name string) error
}
