package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/secure-api/internal/api/middleware"
	"github.com/marketsquare/secure-api/internal/core/domain"
	"github.com/marketsquare/secure-api/internal/core/ports"
)

// newTestContext builds an echo context with the validator installed, the
// way the router configures the real instance.
func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asCaller(c echo.Context, caller *domain.Caller) {
	c.Set("caller", caller)
	// Sanity: the handlers must read it through the middleware helper.
	if middleware.CallerFrom(c) == nil {
		panic("caller key out of sync with middleware")
	}
}

// stubAuthService scripts AuthService responses.
type stubAuthService struct {
	registered *domain.User
	regErr     error
	token      string
	loginUser  *domain.User
	loginErr   error
}

func (s *stubAuthService) Register(_ context.Context, name, email, _ string) (*domain.User, error) {
	if s.regErr != nil {
		return nil, s.regErr
	}
	if s.registered != nil {
		return s.registered, nil
	}
	return &domain.User{ID: "u1", Name: name, Email: email, Role: domain.RoleUser}, nil
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.token, s.loginUser, nil
}

func (s *stubAuthService) MintToken(*domain.User) (string, error) {
	return s.token, nil
}

// stubUserService scripts UserService responses and records arguments.
type stubUserService struct {
	users      []*domain.User
	user       *domain.User
	updateRes  *ports.UpdateSelfResult
	err        error
	gotID      string
	gotInput   ports.UpdateUserInput
	gotAdmin   ports.AdminUpdateUserInput
	deletedIDs []string
}

func (s *stubUserService) List(context.Context) ([]*domain.User, error) {
	return s.users, s.err
}

func (s *stubUserService) Get(_ context.Context, id string) (*domain.User, error) {
	s.gotID = id
	return s.user, s.err
}

func (s *stubUserService) UpdateSelf(_ context.Context, callerID string, input ports.UpdateUserInput) (*ports.UpdateSelfResult, error) {
	s.gotID = callerID
	s.gotInput = input
	return s.updateRes, s.err
}

func (s *stubUserService) DeleteSelf(_ context.Context, callerID string) error {
	s.deletedIDs = append(s.deletedIDs, callerID)
	return s.err
}

func (s *stubUserService) AdminUpdate(_ context.Context, id string, input ports.AdminUpdateUserInput) (*domain.User, error) {
	s.gotID = id
	s.gotAdmin = input
	return s.user, s.err
}

func (s *stubUserService) AdminDelete(_ context.Context, id string) error {
	s.deletedIDs = append(s.deletedIDs, id)
	return s.err
}

// stubProductService scripts ProductService responses and records arguments.
type stubProductService struct {
	listings  []ports.ProductListing
	products  []*domain.Product
	product   *domain.Product
	err       error
	gotID     string
	gotOwner  string
	gotCreate ports.CreateProductInput
	gotUpdate ports.UpdateProductInput
}

func (s *stubProductService) ListAll(context.Context) ([]ports.ProductListing, error) {
	return s.listings, s.err
}

func (s *stubProductService) ListByOwner(_ context.Context, ownerID string) ([]*domain.Product, error) {
	s.gotOwner = ownerID
	return s.products, s.err
}

func (s *stubProductService) Create(_ context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	s.gotCreate = input
	return s.product, s.err
}

func (s *stubProductService) Update(_ context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	s.gotID = id
	s.gotUpdate = input
	return s.product, s.err
}

func (s *stubProductService) Delete(_ context.Context, id string) error {
	s.gotID = id
	return s.err
}

// fixedUserRepo resolves exactly one user by email; every other lookup
// misses. Enough repository for exercising the authentication middleware.
type fixedUserRepo struct {
	user *domain.User
}

func (r fixedUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r fixedUserRepo) FindByID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r fixedUserRepo) FindAll(context.Context) ([]*domain.User, error) { return nil, nil }

func (r fixedUserRepo) Save(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (r fixedUserRepo) DeleteByID(context.Context, string) error { return nil }

// sessionCookieFrom digs the session cookie out of a recorded response.
func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
