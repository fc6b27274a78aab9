package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/marketsquare/secure-api/internal/core/domain"
	"github.com/marketsquare/secure-api/internal/core/ports"
)

// UserService implements account management on top of the user and product
// repositories. Deleting an account cascades to the products it owns.
type UserService struct {
	users    ports.UserRepository
	products ports.ProductRepository
	auth     ports.AuthService
	logger   zerolog.Logger
}

func NewUserService(users ports.UserRepository, products ports.ProductRepository, auth ports.AuthService, logger zerolog.Logger) *UserService {
	return &UserService{users: users, products: products, auth: auth, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateSelf applies a partial profile update for the caller. When the
// email or password changes, the old token's subject binding is stale, so a
// fresh session token is minted for the already-verified identity. The
// write is committed first; a mint failure afterwards does not roll it back
// and is reported through SessionRefreshed=false plus a warning log.
func (s *UserService) UpdateSelf(ctx context.Context, callerID string, input ports.UpdateUserInput) (*ports.UpdateSelfResult, error) {
	user, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	credentialsChanged, err := s.apply(ctx, user, input.Name, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	result := &ports.UpdateSelfResult{User: updated}
	if credentialsChanged {
		signed, mintErr := s.auth.MintToken(updated)
		if mintErr != nil {
			s.logger.Warn().Err(mintErr).
				Str("user_id", updated.ID).
				Str("reason", "session_refresh_failed").
				Msg("profile saved but session token was not refreshed")
			return result, nil
		}
		result.Token = signed
		result.SessionRefreshed = true
	}

	s.logger.Info().Str("user_id", updated.ID).Bool("session_refreshed", result.SessionRefreshed).Msg("profile updated")
	return result, nil
}

// DeleteSelf removes the caller's products and then the account itself.
func (s *UserService) DeleteSelf(ctx context.Context, callerID string) error {
	return s.delete(ctx, callerID)
}

// AdminUpdate applies a partial update to any account, optionally changing
// its role. No session refresh happens here; the target user's existing
// token keeps working until it expires naturally.
func (s *UserService) AdminUpdate(ctx context.Context, id string, input ports.AdminUpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.apply(ctx, user, input.Name, input.Email, input.Password); err != nil {
		return nil, err
	}
	if input.Role != "" {
		// Request validation already rejects unknown roles; this is the
		// backstop for non-HTTP callers.
		if input.Role != domain.RoleAdmin && input.Role != domain.RoleUser {
			return nil, domain.ErrInvalidRole
		}
		user.Role = input.Role
	}

	return s.users.Save(ctx, user)
}

func (s *UserService) AdminDelete(ctx context.Context, id string) error {
	return s.delete(ctx, id)
}

// apply patches non-empty fields onto user and reports whether email or
// password changed. A new email is re-checked for uniqueness before the
// caller persists anything.
func (s *UserService) apply(ctx context.Context, user *domain.User, name, email, password string) (bool, error) {
	changed := false
	if name != "" {
		user.Name = name
	}
	if email != "" && email != user.Email {
		existing, err := s.users.FindByEmail(ctx, email)
		if err == nil && existing.ID != user.ID {
			return false, domain.ErrEmailTaken
		}
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return false, err
		}
		user.Email = email
		changed = true
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return false, err
		}
		user.PasswordHash = string(hash)
		changed = true
	}
	user.UpdatedAt = time.Now().UTC()
	return changed, nil
}

func (s *UserService) delete(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	removed, err := s.products.DeleteByOwnerID(ctx, user.ID)
	if err != nil {
		return err
	}
	if err := s.users.DeleteByID(ctx, user.ID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID).Int64("products_removed", removed).Msg("account deleted")
	return nil
}
