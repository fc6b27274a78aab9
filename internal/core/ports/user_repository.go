package ports

import (
	"context"

	"github.com/marketsquare/secure-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Email is a unique, case-sensitive key; implementations must reject a
// write that would duplicate it with domain.ErrEmailTaken.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	// Save inserts the user when ID is empty, otherwise replaces the
	// existing document. Returns the stored user with its ID populated.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteByID(ctx context.Context, id string) error
}
