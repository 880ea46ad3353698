package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionIsExpired(t *testing.T) {
	assert.False(t, (&Session{}).IsExpired())
	assert.True(t, (&Session{ExpiresAt: time.Now().Add(-time.Minute)}).IsExpired())
	assert.False(t, (&Session{ExpiresAt: time.Now().Add(time.Minute)}).IsExpired())
}
