package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketsquare/secure-api/internal/core/domain"
	"github.com/marketsquare/secure-api/internal/core/ports"
)

// CatalogCache abstracts the short-lived cache for the public product
// listing (Redis). All methods are best-effort: adapters log and swallow
// their own errors so a cache outage never fails a request.
type CatalogCache interface {
	Get(ctx context.Context) ([]ports.ProductListing, bool)
	Set(ctx context.Context, items []ports.ProductListing)
	Invalidate(ctx context.Context)
}

// ProductService implements product use cases. Authorization has already
// happened by the time Update/Delete run; they operate on whatever id they
// are given.
type ProductService struct {
	products ports.ProductRepository
	users    ports.UserRepository
	cache    CatalogCache
	logger   zerolog.Logger
}

func NewProductService(products ports.ProductRepository, users ports.UserRepository, cache CatalogCache, logger zerolog.Logger) *ProductService {
	return &ProductService{products: products, users: users, cache: cache, logger: logger}
}

// ListAll returns the public catalog: every product joined with its owner's
// display name. The result is served from cache when warm.
func (s *ProductService) ListAll(ctx context.Context) ([]ports.ProductListing, error) {
	if s.cache != nil {
		if items, ok := s.cache.Get(ctx); ok {
			return items, nil
		}
	}

	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	// Owners repeat across products; resolve each id once.
	names := make(map[string]string)
	listings := make([]ports.ProductListing, 0, len(products))
	for _, p := range products {
		name, ok := names[p.OwnerID]
		if !ok {
			owner, err := s.users.FindByID(ctx, p.OwnerID)
			if err != nil {
				// Orphaned product (owner row lost); keep the listing usable.
				name = "Unknown"
			} else {
				name = owner.Name
			}
			names[p.OwnerID] = name
		}
		listings = append(listings, ports.ProductListing{Product: *p, OwnerName: name})
	}

	if s.cache != nil {
		s.cache.Set(ctx, listings)
	}
	return listings, nil
}

func (s *ProductService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Product, error) {
	return s.products.FindByOwnerID(ctx, ownerID)
}

func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		OwnerID:     input.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.products.Save(ctx, product)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("product_id", created.ID).Str("owner_id", created.OwnerID).Msg("product created")
	return created, nil
}

// Update patches non-empty fields. Ownership is immutable and is not part
// of the input.
func (s *ProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	product.UpdatedAt = time.Now().UTC()

	updated, err := s.products.Save(ctx, product)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.products.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
