package ratelimit

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/boardinghouse/internal/config"
)

const keyPortalSubject = "boardinghouse:portal:%s"

// PortalLimiter throttles tenant portal reads per authenticated user.
type PortalLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewPortalLimiter(cfg config.Config, bucket *TokenBucket) *PortalLimiter {
	if bucket == nil || cfg.PortalRateLimit <= 0 || cfg.PortalRateBurst <= 0 {
		return nil
	}
	return &PortalLimiter{bucket: bucket, rate: cfg.PortalRateLimit, burst: cfg.PortalRateBurst}
}

func (l *PortalLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

// Allow always admits when the limiter is disabled.
func (l *PortalLimiter) Allow(ctx context.Context, subject string) (*RateLimitResult, error) {
	if !l.Enabled() {
		return &RateLimitResult{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyPortalSubject, strings.TrimSpace(subject)), l.rate, l.burst)
}
