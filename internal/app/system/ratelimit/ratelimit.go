// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// DefaultLoginRate allows 10 login attempts per minute per client IP.
const DefaultLoginRate = "10-M"

// DefaultCodeRate allows 5 attempts per minute against one login code.
// ulule periods are a single unit (S, M, H, D); "5-5m" does not parse.
const DefaultCodeRate = "5-M"

// IPMiddleware limits requests per client IP at the given ulule rate
// ("10-M", "100-H", ...). Limited requests get a 429 JSON envelope; the
// X-RateLimit-* headers are set on every response.
func IPMiddleware(rate string, onLimit func(r *http.Request)) (func(http.Handler) http.Handler, error) {
	rt, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(memory.NewStore(), rt, limiter.WithTrustForwardHeader(true))
	mw := stdlib.NewMiddleware(instance,
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			if onLimit != nil {
				onLimit(r)
			}
			respond.Fail(w, http.StatusTooManyRequests, "Too many attempts. Please wait a minute before trying again.")
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			respond.Fail(w, http.StatusInternalServerError, "An internal error occurred.")
		}),
	)
	return mw.Handler, nil
}

// LoginLimiter tracks attempts per login code so a single account cannot
// be guessed at from many addresses. Per-IP limits are applied by
// IPMiddleware in front of the login route.
type LoginLimiter struct {
	codes *limiter.Limiter
}

// NewLoginLimiter builds a limiter at the given rate (DefaultCodeRate if empty).
func NewLoginLimiter(rate string) (*LoginLimiter, error) {
	if rate == "" {
		rate = DefaultCodeRate
	}
	rt, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	return &LoginLimiter{codes: limiter.New(memory.NewStore(), rt)}, nil
}

// Check counts one attempt against loginCode and reports whether it is
// allowed. An empty code is always allowed.
func (ll *LoginLimiter) Check(ctx context.Context, w http.ResponseWriter, loginCode string) (bool, error) {
	key := codeKey(loginCode)
	if key == "" {
		return true, nil
	}
	lc, err := ll.codes.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if lc.Reached && w != nil {
		w.Header().Set("Retry-After", strconv.FormatInt(max(lc.Reset-time.Now().Unix(), 1), 10))
	}
	return !lc.Reached, nil
}

// Reset clears the count for loginCode after a successful sign-in.
func (ll *LoginLimiter) Reset(ctx context.Context, loginCode string) error {
	key := codeKey(loginCode)
	if key == "" {
		return nil
	}
	_, err := ll.codes.Reset(ctx, key)
	return err
}

func codeKey(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
