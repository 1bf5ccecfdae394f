package server

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/boardinghouse/internal/auth"
	obscontext "github.com/smallbiznis/boardinghouse/internal/observability/context"
	"github.com/smallbiznis/boardinghouse/internal/observability/logger"
	"go.uber.org/zap"
)

const (
	headerAuthorization = "Authorization"
	bearerPrefix        = "bearer "
)

// RequestTimeout bounds the request context. Handlers surface the expiry as
// a retryable error.
func (s *Server) RequestTimeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.HTTPRequestTimeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.HTTPRequestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() && len(c.Errors) == 0 {
			AbortWithError(c, errTimeout)
		}
	}
}

// Authenticate verifies the bearer token and threads the principal through
// the request context.
func (s *Server) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(headerAuthorization))
		if len(raw) <= len(bearerPrefix) || !strings.EqualFold(raw[:len(bearerPrefix)], bearerPrefix) {
			AbortWithError(c, errMissingToken)
			return
		}

		principal, err := s.verifier.Verify(strings.TrimSpace(raw[len(bearerPrefix):]))
		if err != nil {
			AbortWithError(c, err)
			return
		}

		actorType := strings.ToLower(auth.RoleTenant)
		if principal.IsAdmin() {
			actorType = strings.ToLower(auth.RoleAdmin)
		}
		ctx := auth.WithPrincipal(c.Request.Context(), principal)
		ctx = obscontext.WithActor(ctx, actorType, principal.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Authorize asks casbin whether the principal may call the matched route.
func (s *Server) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := auth.PrincipalFromContext(c.Request.Context())
		if err := s.authorizer.Authorize(c.Request.Context(), principal, c.FullPath(), c.Request.Method); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// PortalRateLimit throttles portal reads per user. Limiter failures admit the
// request.
func (s *Server) PortalRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.portalLimiter.Enabled() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		principal, _ := auth.PrincipalFromContext(ctx)
		result, err := s.portalLimiter.Allow(ctx, principal.UserID)
		if err != nil {
			logger.FromContext(ctx).Warn("portal rate limit check failed", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		if !result.Allowed {
			endpoint := normalizeRateLimitEndpoint(c)
			logger.FromContext(ctx).Warn("portal rate limit exceeded", zap.String("endpoint", endpoint))
			if s.obsMetrics != nil {
				s.obsMetrics.RecordRateLimitDenied(ctx, endpoint)
			}
			if result.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(math.Ceil(result.RetryAfter.Seconds()))))
			}
			AbortWithError(c, errRateLimited)
			return
		}
		c.Next()
	}
}

func normalizeRateLimitEndpoint(c *gin.Context) string {
	endpoint := strings.TrimSpace(c.FullPath())
	if endpoint == "" {
		endpoint = strings.TrimSpace(c.Request.URL.Path)
	}
	if endpoint == "" {
		endpoint = "unknown"
	}
	return endpoint
}
