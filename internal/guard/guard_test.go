package guard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		result := rl.Check("user-a")
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	rl.Check("user-a")
	rl.Check("user-a")
	result := rl.Check("user-a")

	assert.False(t, result.Allowed)
	assert.Equal(t, "rate_limiter", result.Guard)
}

func TestRateLimiter_SeparateKeys(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	r1 := rl.Check("user-a")
	r2 := rl.Check("user-b")

	assert.True(t, r1.Allowed)
	assert.True(t, r2.Allowed)
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	assert.True(t, rl.Check("user-a").Allowed)
	assert.False(t, rl.Check("user-a").Allowed)

	time.Sleep(15 * time.Millisecond)
	assert.True(t, rl.Check("user-a").Allowed)
}

func TestCircuitBreaker_ClosedByDefault(t *testing.T) {
	cb := NewCircuitBreaker(3, 5*time.Second)

	result := cb.Check("kafka")
	assert.True(t, result.Allowed)
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute)

	cb.Check("kafka")
	cb.RecordFailure("kafka")
	cb.RecordFailure("kafka")

	result := cb.Check("kafka")
	assert.False(t, result.Allowed)
	assert.Equal(t, "circuit_breaker", result.Guard)
}

func TestCircuitBreaker_HalfOpenAfterReset(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond)

	cb.Check("kafka")
	cb.RecordFailure("kafka")
	assert.False(t, cb.Check("kafka").Allowed)

	time.Sleep(15 * time.Millisecond)

	// One probe allowed while half-open.
	assert.True(t, cb.Check("kafka").Allowed)
	cb.RecordSuccess("kafka")
	assert.True(t, cb.Check("kafka").Allowed)
}

func TestCircuitBreaker_ReopensOnHalfOpenFailure(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond)

	cb.Check("kafka")
	cb.RecordFailure("kafka")
	time.Sleep(15 * time.Millisecond)

	assert.True(t, cb.Check("kafka").Allowed)
	cb.RecordFailure("kafka")
	assert.False(t, cb.Check("kafka").Allowed)
}

func TestIdempotencyGuard_AllowsFirstUse(t *testing.T) {
	ig := NewIdempotencyGuard()

	assert.True(t, ig.Check("press-1").Allowed)
	result := ig.Check("press-1")
	assert.False(t, result.Allowed)
	assert.Equal(t, "idempotency", result.Guard)
}

func TestIdempotencyGuard_EmptyKeyAlwaysAllowed(t *testing.T) {
	ig := NewIdempotencyGuard()

	assert.True(t, ig.Check("").Allowed)
	assert.True(t, ig.Check("").Allowed)
}

func TestIdempotencyGuard_RemoveAllowsRetry(t *testing.T) {
	ig := NewIdempotencyGuard()

	ig.Check("press-1")
	ig.Remove("press-1")
	assert.True(t, ig.Check("press-1").Allowed)
}
