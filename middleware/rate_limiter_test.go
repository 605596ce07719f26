package middleware

import (
	"context"
	"testing"
	"time"

	"cms-platform/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestLimiter() (*CooldownLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewCooldownLimiterWithClock(NewMemoryCooldownStore(), clock.now), clock
}

func TestCooldownOkThenFail(t *testing.T) {
	limiter, clock := newTestLimiter()
	ctx := context.Background()
	cooldown := 300 * time.Second

	require.Nil(t, limiter.Check(ctx, "1.2.3.4", "contact", cooldown))

	clock.advance(10 * time.Second)
	appErr := limiter.Check(ctx, "1.2.3.4", "contact", cooldown)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeRateLimitExceeded, appErr.Code)
	assert.Equal(t, 429, appErr.HTTPStatus)
	assert.Equal(t, 290, appErr.RetryAfter)
}

func TestCooldownBothOkWhenSpacedOut(t *testing.T) {
	limiter, clock := newTestLimiter()
	ctx := context.Background()
	cooldown := 300 * time.Second

	require.Nil(t, limiter.Check(ctx, "1.2.3.4", "contact", cooldown))
	clock.advance(cooldown + time.Second)
	require.Nil(t, limiter.Check(ctx, "1.2.3.4", "contact", cooldown))
}

func TestCooldownFailedAttemptDoesNotResetTimer(t *testing.T) {
	limiter, clock := newTestLimiter()
	ctx := context.Background()
	cooldown := 300 * time.Second

	require.Nil(t, limiter.Check(ctx, "1.2.3.4", "contact", cooldown))

	// Hammering during the window must not extend it.
	for i := 0; i < 5; i++ {
		clock.advance(50 * time.Second)
		require.NotNil(t, limiter.Check(ctx, "1.2.3.4", "contact", cooldown))
	}

	// 300s after the single accepted request the window is open again.
	clock.advance(51 * time.Second)
	require.Nil(t, limiter.Check(ctx, "1.2.3.4", "contact", cooldown))
}

func TestCooldownRetryAfterRoundsUp(t *testing.T) {
	limiter, clock := newTestLimiter()
	ctx := context.Background()
	cooldown := 10 * time.Second

	require.Nil(t, limiter.Check(ctx, "1.2.3.4", "contact", cooldown))

	clock.advance(2500 * time.Millisecond)
	appErr := limiter.Check(ctx, "1.2.3.4", "contact", cooldown)
	require.NotNil(t, appErr)
	assert.Equal(t, 8, appErr.RetryAfter)
}

func TestCooldownKeysAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter()
	ctx := context.Background()
	cooldown := 300 * time.Second

	require.Nil(t, limiter.Check(ctx, "1.2.3.4", "contact", cooldown))

	// Different client, same endpoint.
	require.Nil(t, limiter.Check(ctx, "5.6.7.8", "contact", cooldown))
	// Same client, different endpoint.
	require.Nil(t, limiter.Check(ctx, "1.2.3.4", "comments", cooldown))

	// Original pair is still cooling down.
	require.NotNil(t, limiter.Check(ctx, "1.2.3.4", "contact", cooldown))
}
