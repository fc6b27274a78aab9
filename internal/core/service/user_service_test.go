package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/marketsquare/secure-api/internal/core/domain"
	"github.com/marketsquare/secure-api/internal/core/ports"
)

func seedUser(t *testing.T, repo *stubUserRepo, name, email, password, role string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	u, err := repo.Save(context.Background(), &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedProduct(t *testing.T, repo *stubProductRepo, name, ownerID string, price float64) *domain.Product {
	t.Helper()
	p, err := repo.Save(context.Background(), &domain.Product{
		Name:    name,
		Price:   price,
		OwnerID: ownerID,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func TestUserService_UpdateSelf_NameOnlyKeepsSession(t *testing.T) {
	users := newStubUserRepo()
	minter := &stubTokenMinter{token: "fresh-token"}
	svc := NewUserService(users, newStubProductRepo(), minter, zerolog.Nop())

	alice := seedUser(t, users, "Alice", "alice@example.com", "secret123", domain.RoleUser)

	result, err := svc.UpdateSelf(context.Background(), alice.ID, ports.UpdateUserInput{Name: "Alicia"})
	if err != nil {
		t.Fatalf("UpdateSelf: %v", err)
	}
	if result.User.Name != "Alicia" {
		t.Fatalf("name not applied: %q", result.User.Name)
	}
	if result.SessionRefreshed || result.Token != "" {
		t.Fatalf("a name change must not refresh the session")
	}
	if minter.minted != 0 {
		t.Fatalf("no token should be minted for a name-only update")
	}
}

func TestUserService_UpdateSelf_EmailChangeRefreshesSession(t *testing.T) {
	users := newStubUserRepo()
	minter := &stubTokenMinter{token: "fresh-token"}
	svc := NewUserService(users, newStubProductRepo(), minter, zerolog.Nop())

	alice := seedUser(t, users, "Alice", "alice@example.com", "secret123", domain.RoleUser)

	result, err := svc.UpdateSelf(context.Background(), alice.ID, ports.UpdateUserInput{Email: "alicia@example.com"})
	if err != nil {
		t.Fatalf("UpdateSelf: %v", err)
	}
	if !result.SessionRefreshed || result.Token != "fresh-token" {
		t.Fatalf("an email change must mint a fresh session token, got %+v", result)
	}
	if result.User.Email != "alicia@example.com" {
		t.Fatalf("email not applied: %q", result.User.Email)
	}
}

func TestUserService_UpdateSelf_PasswordChangeRefreshesSession(t *testing.T) {
	users := newStubUserRepo()
	minter := &stubTokenMinter{token: "fresh-token"}
	svc := NewUserService(users, newStubProductRepo(), minter, zerolog.Nop())

	alice := seedUser(t, users, "Alice", "alice@example.com", "secret123", domain.RoleUser)

	result, err := svc.UpdateSelf(context.Background(), alice.ID, ports.UpdateUserInput{Password: "newpass456"})
	if err != nil {
		t.Fatalf("UpdateSelf: %v", err)
	}
	if !result.SessionRefreshed {
		t.Fatalf("a password change must refresh the session")
	}
	stored, _ := users.FindByID(context.Background(), alice.ID)
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpass456")) != nil {
		t.Fatalf("new password hash was not persisted")
	}
}

func TestUserService_UpdateSelf_EmailTaken(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, newStubProductRepo(), &stubTokenMinter{token: "t"}, zerolog.Nop())

	alice := seedUser(t, users, "Alice", "alice@example.com", "secret123", domain.RoleUser)
	seedUser(t, users, "Bob", "bob@example.com", "secret123", domain.RoleUser)

	savesBefore := users.saveCalls
	_, err := svc.UpdateSelf(context.Background(), alice.ID, ports.UpdateUserInput{Email: "bob@example.com"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if users.saveCalls != savesBefore {
		t.Fatalf("conflicting update must not be written")
	}
}

func TestUserService_UpdateSelf_MintFailureIsNonFatal(t *testing.T) {
	users := newStubUserRepo()
	minter := &stubTokenMinter{mintErr: errors.New("signer unavailable")}
	svc := NewUserService(users, newStubProductRepo(), minter, zerolog.Nop())

	alice := seedUser(t, users, "Alice", "alice@example.com", "secret123", domain.RoleUser)

	result, err := svc.UpdateSelf(context.Background(), alice.ID, ports.UpdateUserInput{Email: "alicia@example.com"})
	if err != nil {
		t.Fatalf("a mint failure after the write must not fail the update: %v", err)
	}
	if result.SessionRefreshed || result.Token != "" {
		t.Fatalf("mint failure must be reported via SessionRefreshed=false")
	}

	// The profile change itself stays committed.
	stored, _ := users.FindByID(context.Background(), alice.ID)
	if stored.Email != "alicia@example.com" {
		t.Fatalf("update was rolled back: %q", stored.Email)
	}
}

func TestUserService_DeleteSelf_CascadesToProducts(t *testing.T) {
	users := newStubUserRepo()
	products := newStubProductRepo()
	svc := NewUserService(users, products, &stubTokenMinter{token: "t"}, zerolog.Nop())

	alice := seedUser(t, users, "Alice", "alice@example.com", "secret123", domain.RoleUser)
	bob := seedUser(t, users, "Bob", "bob@example.com", "secret123", domain.RoleUser)
	seedProduct(t, products, "Alice's Lamp", alice.ID, 10)
	seedProduct(t, products, "Alice's Chair", alice.ID, 15)
	kept := seedProduct(t, products, "Bob's Desk", bob.ID, 20)

	if err := svc.DeleteSelf(context.Background(), alice.ID); err != nil {
		t.Fatalf("DeleteSelf: %v", err)
	}

	if _, err := users.FindByID(context.Background(), alice.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("account should be gone, got %v", err)
	}
	remaining, _ := products.FindAll(context.Background())
	if len(remaining) != 1 || remaining[0].ID != kept.ID {
		t.Fatalf("only the other owner's product should remain, got %d", len(remaining))
	}
}

func TestUserService_AdminUpdate_RoleChange(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, newStubProductRepo(), &stubTokenMinter{token: "t"}, zerolog.Nop())

	bob := seedUser(t, users, "Bob", "bob@example.com", "secret123", domain.RoleUser)

	updated, err := svc.AdminUpdate(context.Background(), bob.ID, ports.AdminUpdateUserInput{Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("AdminUpdate: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("role not applied: %q", updated.Role)
	}
}

func TestUserService_AdminUpdate_RejectsUnknownRole(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, newStubProductRepo(), &stubTokenMinter{token: "t"}, zerolog.Nop())

	bob := seedUser(t, users, "Bob", "bob@example.com", "secret123", domain.RoleUser)

	if _, err := svc.AdminUpdate(context.Background(), bob.ID, ports.AdminUpdateUserInput{Role: "superuser"}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole for unknown role, got %v", err)
	}
}

func TestUserService_AdminDelete_UnknownUser(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), newStubProductRepo(), &stubTokenMinter{token: "t"}, zerolog.Nop())

	if err := svc.AdminDelete(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
