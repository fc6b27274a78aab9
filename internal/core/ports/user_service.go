package ports

import (
	"context"

	"github.com/marketsquare/secure-api/internal/core/domain"
)

// UpdateUserInput carries a partial self-service profile update. Empty
// fields are left untouched.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
}

// AdminUpdateUserInput is the admin variant, which may also change the role.
type AdminUpdateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateSelfResult is returned by UpdateSelf. Token is non-empty only when
// the credential change required a fresh session token and minting it
// succeeded; SessionRefreshed reports whether a refresh was attempted and
// completed.
type UpdateSelfResult struct {
	User             *domain.User
	Token            string
	SessionRefreshed bool
}

// UserService defines account use cases beyond registration and login.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateSelf(ctx context.Context, callerID string, input UpdateUserInput) (*UpdateSelfResult, error)
	// DeleteSelf removes the caller's account and every product they own.
	DeleteSelf(ctx context.Context, callerID string) error
	AdminUpdate(ctx context.Context, id string, input AdminUpdateUserInput) (*domain.User, error)
	AdminDelete(ctx context.Context, id string) error
}
