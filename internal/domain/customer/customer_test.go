package customer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionExpired(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	past, future := now.Add(-time.Minute), now.Add(time.Minute)

	assert.False(t, (&Session{}).Expired(now))
	assert.True(t, (&Session{ExpiresAt: &past}).Expired(now))
	assert.False(t, (&Session{ExpiresAt: &future}).Expired(now))
}

func TestValidityString(t *testing.T) {
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "valid", Valid.String())
	assert.Equal(t, "invalid", Invalid.String())
}
