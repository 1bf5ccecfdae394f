package auth

import (
	"context"
	"slices"
	"strings"
)

const (
	RoleAdmin  = "ADMIN"
	RoleTenant = "TENANT"
)

// Principal is the verified caller of a request.
type Principal struct {
	UserID string   `json:"userId"`
	Roles  []string `json:"roles"`
}

func (p Principal) HasRole(role string) bool {
	return slices.ContainsFunc(p.Roles, func(r string) bool { return strings.EqualFold(r, role) })
}

func (p Principal) IsAdmin() bool { return p.HasRole(RoleAdmin) }

// Subject is the casbin subject for the principal.
func (p Principal) Subject() string { return "user:" + p.UserID }

// System is used for work not triggered by a user, such as demo seeding.
var System = Principal{UserID: "system", Roles: []string{RoleAdmin}}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok || p.UserID == "" {
		return Principal{}, false
	}
	return p, true
}

// ActorID returns the principal user id, or "system" when none is attached.
func ActorID(ctx context.Context) string {
	if p, ok := PrincipalFromContext(ctx); ok {
		return p.UserID
	}
	return System.UserID
}
