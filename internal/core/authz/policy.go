// Package authz holds the authorization policy as a single pure decision
// function, kept free of HTTP and storage concerns so it can be tested in
// isolation and enforced uniformly by one middleware.
package authz

import "github.com/marketsquare/secure-api/internal/core/domain"

// Class categorizes endpoints by the access rule they require.
type Class int

const (
	// Public endpoints are open to everyone.
	Public Class = iota
	// Authenticated endpoints require any resolved caller.
	Authenticated
	// AdminOnly endpoints require the admin role.
	AdminOnly
	// OwnerOrAdmin endpoints require the caller to own the target resource
	// or to hold the admin role. The owner must be the resource's current
	// stored owner, fetched at decision time.
	OwnerOrAdmin
)

// Decide evaluates whether caller may access an endpoint of the given
// class. ownerID is consulted only for OwnerOrAdmin. A nil return means
// allow; otherwise domain.ErrUnauthenticated or domain.ErrForbidden.
func Decide(caller *domain.Caller, class Class, ownerID string) error {
	switch class {
	case Public:
		return nil
	case Authenticated:
		if caller == nil {
			return domain.ErrUnauthenticated
		}
		return nil
	case AdminOnly:
		if caller == nil {
			return domain.ErrUnauthenticated
		}
		if caller.Role != domain.RoleAdmin {
			return domain.ErrForbidden
		}
		return nil
	case OwnerOrAdmin:
		if caller == nil {
			return domain.ErrUnauthenticated
		}
		if caller.Role == domain.RoleAdmin || caller.ID == ownerID {
			return nil
		}
		return domain.ErrForbidden
	default:
		return domain.ErrForbidden
	}
}
