package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowedUpToLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	assert.True(t, rl.IsAllowed("client"))
	assert.True(t, rl.IsAllowed("client"))
	assert.True(t, rl.IsAllowed("client"))
	assert.False(t, rl.IsAllowed("client"))
}

func TestKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	assert.True(t, rl.IsAllowed("a"))
	assert.False(t, rl.IsAllowed("a"))
	assert.True(t, rl.IsAllowed("b"))
}

func TestGetRemainingRequests(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	assert.Equal(t, 3, rl.GetRemainingRequests("client"))
	rl.IsAllowed("client")
	assert.Equal(t, 2, rl.GetRemainingRequests("client"))
	rl.IsAllowed("client")
	rl.IsAllowed("client")
	rl.IsAllowed("client")
	assert.Equal(t, 0, rl.GetRemainingRequests("client"))
}

func TestWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 50*time.Millisecond)

	assert.True(t, rl.IsAllowed("client"))
	assert.False(t, rl.IsAllowed("client"))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, rl.IsAllowed("client"))
}
