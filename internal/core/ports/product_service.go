package ports

import (
	"context"

	"github.com/marketsquare/secure-api/internal/core/domain"
)

// CreateProductInput carries the data needed to create a product. OwnerID
// always comes from the resolved caller, never from the request body.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	OwnerID     string
}

// UpdateProductInput is a partial update; nil Price and empty strings are
// left untouched. Ownership cannot be changed.
type UpdateProductInput struct {
	Name        string
	Description string
	Price       *float64
}

// ProductListing is the public catalog view: the product plus its owner's
// display name.
type ProductListing struct {
	Product   domain.Product
	OwnerName string
}

// ProductService defines product use cases. Ownership/role authorization is
// enforced before these are invoked; Update and Delete trust their caller.
type ProductService interface {
	ListAll(ctx context.Context) ([]ProductListing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
