package middleware

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"cms-platform/pkg/apperrors"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// CooldownStore tracks the last accepted request per (client, endpoint) key.
type CooldownStore interface {
	// LastAccepted returns the last accepted timestamp for key, and whether
	// one was recorded.
	LastAccepted(ctx context.Context, key string) (time.Time, bool, error)
	// RecordAccepted stores the accepted timestamp for key. ttl bounds how
	// long the record needs to live; stores without expiry may ignore it.
	RecordAccepted(ctx context.Context, key string, t time.Time, ttl time.Duration) error
}

// MemoryCooldownStore keeps cooldown state in process memory. Suitable for a
// single-node deployment; state is lost on restart.
type MemoryCooldownStore struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func NewMemoryCooldownStore() *MemoryCooldownStore {
	return &MemoryCooldownStore{last: make(map[string]time.Time)}
}

func (s *MemoryCooldownStore) LastAccepted(_ context.Context, key string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.last[key]
	return t, ok, nil
}

func (s *MemoryCooldownStore) RecordAccepted(_ context.Context, key string, t time.Time, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[key] = t
	return nil
}

// RedisCooldownStore backs cooldown state with a shared, expiring key-value
// store so multiple instances agree on the window.
type RedisCooldownStore struct {
	Client *redis.Client
}

const cooldownKeyPrefix = "cooldown:"

func (s *RedisCooldownStore) LastAccepted(ctx context.Context, key string) (time.Time, bool, error) {
	val, err := s.Client.Get(ctx, cooldownKeyPrefix+key).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	ms, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, err
	}
	return time.UnixMilli(ms), true, nil
}

func (s *RedisCooldownStore) RecordAccepted(ctx context.Context, key string, t time.Time, ttl time.Duration) error {
	return s.Client.Set(ctx, cooldownKeyPrefix+key, strconv.FormatInt(t.UnixMilli(), 10), ttl).Err()
}

// CooldownLimiter enforces a minimum interval between accepted requests for
// the same (client, endpoint) pair.
type CooldownLimiter struct {
	store CooldownStore
	now   func() time.Time

	// mu serializes the read-modify-write so two concurrent requests for the
	// same key cannot both slip through the window.
	mu sync.Mutex
}

func NewCooldownLimiter(store CooldownStore) *CooldownLimiter {
	return &CooldownLimiter{store: store, now: time.Now}
}

// NewCooldownLimiterWithClock injects a deterministic clock for tests.
func NewCooldownLimiterWithClock(store CooldownStore, now func() time.Time) *CooldownLimiter {
	return &CooldownLimiter{store: store, now: now}
}

// Check accepts or rejects a request. A rejected request does NOT reset the
// timer; only accepted requests record a timestamp. The returned error
// carries the remaining wait rounded up to whole seconds.
func (l *CooldownLimiter) Check(ctx context.Context, clientKey, endpoint string, cooldown time.Duration) *apperrors.AppError {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := clientKey + ":" + endpoint
	now := l.now()

	last, found, err := l.store.LastAccepted(ctx, key)
	if err != nil {
		return apperrors.NewServiceUnavailable(apperrors.ErrCodeServiceUnavailable, "Service temporarily unavailable.", err)
	}

	if found {
		elapsed := now.Sub(last)
		if elapsed < cooldown {
			retryAfter := int(math.Ceil((cooldown - elapsed).Seconds()))
			return apperrors.NewTooManyRequests(
				apperrors.ErrCodeRateLimitExceeded,
				fmt.Sprintf("Rate limit exceeded. Please wait %d seconds.", retryAfter),
				retryAfter,
			)
		}
	}

	if err := l.store.RecordAccepted(ctx, key, now, cooldown); err != nil {
		return apperrors.NewServiceUnavailable(apperrors.ErrCodeServiceUnavailable, "Service temporarily unavailable.", err)
	}
	return nil
}

// CooldownMiddleware rate-limits a public endpoint per client IP. The
// cooldown is fetched through cooldownFn on every call so settings changes
// take effect immediately.
func CooldownMiddleware(limiter *CooldownLimiter, endpoint string, cooldownFn func(ctx context.Context) time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if appErr := limiter.Check(ctx, c.RealIP(), endpoint, cooldownFn(ctx)); appErr != nil {
				return appErr
			}
			return next(c)
		}
	}
}
