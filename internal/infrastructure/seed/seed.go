// Package seed populates the store with a known set of accounts and
// products for development environments. Seeding is idempotent per user:
// an email that already exists is skipped along with its products.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/marketsquare/secure-api/internal/core/domain"
	"github.com/marketsquare/secure-api/internal/core/ports"
)

type account struct {
	name     string
	email    string
	password string
	role     string
	products int
}

var accounts = []account{
	{"Primary Admin", "admin1@example.com", "AdminPass123", domain.RoleAdmin, 2},
	{"Secondary Admin", "admin2@example.com", "AdminPass456", domain.RoleAdmin, 1},
	{"First User", "user1@example.com", "UserPass123", domain.RoleUser, 2},
	{"Second User", "user2@example.com", "UserPass456", domain.RoleUser, 2},
}

// Run creates the seed accounts and their products.
func Run(ctx context.Context, users ports.UserRepository, products ports.ProductRepository, log zerolog.Logger) error {
	for _, a := range accounts {
		if _, err := users.FindByEmail(ctx, a.email); err == nil {
			log.Debug().Str("email", a.email).Msg("seed user exists, skipping")
			continue
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("seed: lookup %s: %w", a.email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed: hash password: %w", err)
		}

		now := time.Now().UTC()
		created, err := users.Save(ctx, &domain.User{
			Name:         a.name,
			Email:        a.email,
			PasswordHash: string(hash),
			Role:         a.role,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("seed: create user %s: %w", a.email, err)
		}

		for i := 1; i <= a.products; i++ {
			_, err := products.Save(ctx, &domain.Product{
				Name:        fmt.Sprintf("%s's Product %d", a.name, i),
				Description: fmt.Sprintf("Description for %s's Product %d", a.name, i),
				Price:       10.0 + float64(i)*5.0,
				OwnerID:     created.ID,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
			if err != nil {
				return fmt.Errorf("seed: create product for %s: %w", a.email, err)
			}
		}

		log.Info().Str("email", a.email).Str("role", a.role).Int("products", a.products).Msg("seed user created")
	}
	return nil
}
