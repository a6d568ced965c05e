package ratelimit

import (
	"testing"

	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
)

func TestAllowConsumesBurstThenRefuses(t *testing.T) {
	limiter := New(1, 2)
	user := uuid.New()

	assert.True(t, limiter.Allow(user), "first request should be allowed")
	assert.True(t, limiter.Allow(user), "second request should be allowed (burst of 2)")
	assert.False(t, limiter.Allow(user), "third immediate request should be refused: burst exhausted")
}

func TestAllowTracksUsersIndependently(t *testing.T) {
	limiter := New(1, 1)
	a, b := uuid.New(), uuid.New()

	assert.True(t, limiter.Allow(a), "user a's first request should be allowed")
	assert.False(t, limiter.Allow(a), "user a's second immediate request should be refused")
	assert.True(t, limiter.Allow(b), "user b should have its own independent bucket")
}
