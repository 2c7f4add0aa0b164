package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, limit int) (*FixedWindowLimiter, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	l := NewFixedWindowLimiter(db, limit, time.Minute)
	l.now = func() time.Time { return time.Unix(1200, 0) }
	return l, mock
}

func TestFixedWindowLimiter_FirstHitSetsExpiry(t *testing.T) {
	l, mock := newTestLimiter(t, 2)

	mock.ExpectIncr("ratelimit:ip:10.0.0.1:20").SetVal(1)
	mock.ExpectExpire("ratelimit:ip:10.0.0.1:20", 61*time.Second).SetVal(true)

	allowed, err := l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFixedWindowLimiter_OverLimit(t *testing.T) {
	l, mock := newTestLimiter(t, 2)

	mock.ExpectIncr("ratelimit:ip:10.0.0.1:20").SetVal(2)
	mock.ExpectIncr("ratelimit:ip:10.0.0.1:20").SetVal(3)

	allowed, err := l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFixedWindowLimiter_RedisError(t *testing.T) {
	l, mock := newTestLimiter(t, 2)

	mock.ExpectIncr("ratelimit:ip:10.0.0.1:20").SetErr(errors.New("connection refused"))

	allowed, err := l.Allow(context.Background(), "10.0.0.1")
	assert.Error(t, err)
	assert.False(t, allowed)
}
