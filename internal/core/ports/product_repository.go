package ports

import (
	"context"

	"github.com/marketsquare/secure-api/internal/core/domain"
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByOwnerID(ctx context.Context, ownerID string) ([]*domain.Product, error)
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteByID(ctx context.Context, id string) error
	// DeleteByOwnerID removes every product owned by the given user and
	// returns the number of documents removed.
	DeleteByOwnerID(ctx context.Context, ownerID string) (int64, error)
}
