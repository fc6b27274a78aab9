package ports

import (
	"context"

	"github.com/marketsquare/secure-api/internal/core/domain"
)

type AuthService interface {
	// Register creates an account with the default user role. The plaintext
	// password is hashed before it reaches the repository.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed session token.
	// Unknown email and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// MintToken issues a fresh session token for an already-verified
	// identity, without replaying credentials.
	MintToken(user *domain.User) (string, error)
}
