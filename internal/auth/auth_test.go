package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/smallbiznis/boardinghouse/internal/config"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	"github.com/smallbiznis/boardinghouse/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestVerifierRoundTrip(t *testing.T) {
	v, err := NewVerifier(config.Config{AuthJWTSecret: "s3cret", AuthJWTIssuer: "auth.local"})
	require.NoError(t, err)

	token, err := v.Issue(Principal{UserID: "42", Roles: []string{"tenant"}}, time.Minute)
	require.NoError(t, err)

	p, err := v.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "42", p.UserID)
	require.True(t, p.HasRole(RoleTenant))
	require.False(t, p.IsAdmin())
}

func TestVerifierRejectsBadTokens(t *testing.T) {
	v, err := NewVerifier(config.Config{AuthJWTSecret: "s3cret"})
	require.NoError(t, err)

	_, err = v.Verify("")
	require.Equal(t, ierr.ErrCodeUnauthenticated, ierr.Kind(err))

	other, err := NewVerifier(config.Config{AuthJWTSecret: "different"})
	require.NoError(t, err)
	forged, err := other.Issue(Principal{UserID: "1", Roles: []string{RoleAdmin}}, time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(forged)
	require.Equal(t, ierr.ErrCodeUnauthenticated, ierr.Kind(err))

	expired, err := v.Issue(Principal{UserID: "1"}, -time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(expired)
	require.Equal(t, ierr.ErrCodeUnauthenticated, ierr.Kind(err))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = v.Verify(unsigned)
	require.Error(t, err)
}

func TestPrincipalContext(t *testing.T) {
	ctx := context.Background()
	_, ok := PrincipalFromContext(ctx)
	require.False(t, ok)
	require.Equal(t, "system", ActorID(ctx))

	ctx = WithPrincipal(ctx, Principal{UserID: "7", Roles: []string{RoleAdmin}})
	p, ok := PrincipalFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "7", p.UserID)
	require.Equal(t, "7", ActorID(ctx))
}

func TestCasbinAuthorizer(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)

	enforcer, err := NewEnforcer(conn)
	require.NoError(t, err)
	authz := NewAuthorizer(enforcer, zap.NewNop())
	ctx := context.Background()

	admin := Principal{UserID: "1", Roles: []string{RoleAdmin}}
	tenant := Principal{UserID: "2", Roles: []string{RoleTenant}}

	require.NoError(t, authz.Authorize(ctx, admin, "/invoices/generate", "POST"))
	require.NoError(t, authz.Authorize(ctx, tenant, "/portal/invoices/:id", "GET"))
	require.NoError(t, authz.Authorize(ctx, tenant, "/users/profile", "GET"))

	err = authz.Authorize(ctx, tenant, "/invoices", "GET")
	require.Equal(t, ierr.ErrCodePermissionDenied, ierr.Kind(err))
	err = authz.Authorize(ctx, tenant, "/portal/invoices", "POST")
	require.Equal(t, ierr.ErrCodePermissionDenied, ierr.Kind(err))

	demoted := Principal{UserID: "1", Roles: []string{RoleTenant}}
	err = authz.Authorize(ctx, demoted, "/invoices", "GET")
	require.Equal(t, ierr.ErrCodePermissionDenied, ierr.Kind(err))

	err = authz.Authorize(ctx, Principal{}, "/invoices", "GET")
	require.Equal(t, ierr.ErrCodeUnauthenticated, ierr.Kind(err))
}
