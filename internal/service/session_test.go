package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHashToken(t *testing.T) {
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", HashToken("abc"))
	assert.Len(t, HashToken("whatever"), 64)
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "session:abc", sessionKey("abc"))
}

func TestCacheTTL(t *testing.T) {
	now := time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 5*time.Minute, cacheTTL(now, now.Add(time.Hour), 5*time.Minute))
	assert.Equal(t, 90*time.Second, cacheTTL(now, now.Add(90*time.Second), 5*time.Minute))
	assert.LessOrEqual(t, cacheTTL(now, now.Add(-time.Second), 5*time.Minute), time.Duration(0))
}
