package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/smallbiznis/boardinghouse/internal/config"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
)

// Claims carried by bearer tokens from the external auth service.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 bearer tokens.
type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(cfg config.Config) (*Verifier, error) {
	secret := strings.TrimSpace(cfg.AuthJWTSecret)
	if secret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("AUTH_JWT_SECRET is required in production")
		}
		secret = "boardinghouse-dev-secret"
	}
	return &Verifier{secret: []byte(secret), issuer: cfg.AuthJWTIssuer}, nil
}

func (v *Verifier) Verify(raw string) (Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Principal{}, ierr.NewError("missing bearer token").
			WithHint("Authentication required").
			Mark(ierr.ErrUnauthenticated)
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return Principal{}, ierr.WithError(err).
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthenticated)
	}
	if !token.Valid {
		return Principal{}, ierr.NewError("token not valid").
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthenticated)
	}
	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return Principal{}, ierr.NewError("unexpected token issuer").
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthenticated)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Principal{}, ierr.NewError("token missing subject").
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthenticated)
	}

	roles := make([]string, 0, len(claims.Roles))
	for _, role := range claims.Roles {
		if role = strings.ToUpper(strings.TrimSpace(role)); role != "" {
			roles = append(roles, role)
		}
	}
	return Principal{UserID: claims.Subject, Roles: roles}, nil
}

// Issue signs a token for p. Used by tests and local tooling; production
// tokens come from the auth service.
func (v *Verifier) Issue(p Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Roles: p.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
