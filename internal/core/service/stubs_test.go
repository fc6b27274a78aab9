package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/marketsquare/secure-api/internal/core/domain"
	"github.com/marketsquare/secure-api/internal/core/ports"
)

// stubUserRepo is an in-memory ports.UserRepository used across the service
// tests. It enforces the unique-email contract the Mongo adapter provides.
type stubUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	nextID    int
	saveCalls int
	saveErr   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveCalls++
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	for _, u := range r.users {
		if u.Email == user.Email && u.ID != user.ID {
			return nil, domain.ErrEmailTaken
		}
	}
	if user.ID == "" {
		r.nextID++
		user.ID = fmt.Sprintf("user-%d", r.nextID)
	} else if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubUserRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// stubProductRepo is the in-memory counterpart for products.
type stubProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	nextID   int
	findAll  int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findAll++
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindByOwnerID(_ context.Context, ownerID string) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Product
	for _, p := range r.products {
		if p.OwnerID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == "" {
		r.nextID++
		product.ID = fmt.Sprintf("product-%d", r.nextID)
	} else if _, ok := r.products[product.ID]; !ok {
		return nil, domain.ErrProductNotFound
	}
	cp := *product
	r.products[product.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubProductRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) DeleteByOwnerID(_ context.Context, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, p := range r.products {
		if p.OwnerID == ownerID {
			delete(r.products, id)
			removed++
		}
	}
	return removed, nil
}

// stubTokenMinter satisfies ports.AuthService for the user service tests,
// which only exercise MintToken.
type stubTokenMinter struct {
	token   string
	mintErr error
	minted  int
}

func (s *stubTokenMinter) Register(context.Context, string, string, string) (*domain.User, error) {
	panic("not used")
}

func (s *stubTokenMinter) Login(context.Context, string, string) (string, *domain.User, error) {
	panic("not used")
}

func (s *stubTokenMinter) MintToken(*domain.User) (string, error) {
	s.minted++
	if s.mintErr != nil {
		return "", s.mintErr
	}
	return s.token, nil
}

// fakeCatalogCache records interactions so tests can assert hit/miss and
// invalidation behaviour.
type fakeCatalogCache struct {
	items       []ports.ProductListing
	warm        bool
	gets        int
	sets        int
	invalidated int
}

func (c *fakeCatalogCache) Get(context.Context) ([]ports.ProductListing, bool) {
	c.gets++
	if !c.warm {
		return nil, false
	}
	return c.items, true
}

func (c *fakeCatalogCache) Set(_ context.Context, items []ports.ProductListing) {
	c.sets++
	c.items = items
	c.warm = true
}

func (c *fakeCatalogCache) Invalidate(context.Context) {
	c.invalidated++
	c.items = nil
	c.warm = false
}
