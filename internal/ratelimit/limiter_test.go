package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relay-hub/settlement-hub/internal/mocks"
	"github.com/relay-hub/settlement-hub/internal/ratelimit"
)

// testLimiterMocks contains all the mocks needed for testing the limiter
type testLimiterMocks struct {
	ctrl             *gomock.Controller
	redisClient      *mocks.MockRedisClient
	redisRateLimiter *mocks.MockRedisRateLimiter
	clock            *mocks.MockClock
	now              time.Time
}

func setupTestLimiter(t *testing.T) *testLimiterMocks {
	ctrl := gomock.NewController(t)

	tm := &testLimiterMocks{
		ctrl:             ctrl,
		redisClient:      mocks.NewMockRedisClient(ctrl),
		redisRateLimiter: mocks.NewMockRedisRateLimiter(ctrl),
		clock:            mocks.NewMockClock(ctrl),
		now:              time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	tm.clock.EXPECT().Now().DoAndReturn(func() time.Time { return tm.now }).AnyTimes()
	return tm
}

func tearDownTestLimiter(m *testLimiterMocks) {
	m.ctrl.Finish()
}

// expectRedis mocks the connectivity check and the health monitor of a distributed limiter
func (m *testLimiterMocks) expectRedis(available bool) {
	statusCmd := redis.NewStatusCmd(context.Background())
	if available {
		statusCmd.SetVal("PONG")
	} else {
		statusCmd.SetErr(errors.New("connection refused"))
	}
	m.redisClient.EXPECT().Ping(gomock.Any()).Return(statusCmd)
	m.redisClient.EXPECT().NewRateLimiter().Return(m.redisRateLimiter).MaxTimes(1)
	m.clock.EXPECT().After(gomock.Any()).Return(make(chan time.Time)).AnyTimes()
}

func TestNewLimiter_InvalidConfig(t *testing.T) {
	m := setupTestLimiter(t)
	defer tearDownTestLimiter(m)

	_, err := ratelimit.NewLimiter(ratelimit.Config{}, nil, m.clock)
	assert.Error(t, err)
}

func TestLimiter_Local(t *testing.T) {
	m := setupTestLimiter(t)
	defer tearDownTestLimiter(m)

	l, err := ratelimit.NewLimiter(ratelimit.Config{RequestsPerSecond: 1, Burst: 2}, nil, m.clock)
	require.NoError(t, err)
	defer l.Close()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		d, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d within burst", i)
	}

	d, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, time.Second, d.RetryAfter)

	// Other callers have their own budget
	d, err = l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	// A denied request does not consume a token
	m.now = m.now.Add(time.Second)
	d, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestLimiter_Distributed(t *testing.T) {
	m := setupTestLimiter(t)
	defer tearDownTestLimiter(m)

	m.expectRedis(true)
	l, err := ratelimit.NewLimiter(ratelimit.Config{RequestsPerSecond: 5}, m.redisClient, m.clock)
	require.NoError(t, err)

	limit := redis_rate.Limit{Rate: 5, Burst: 5, Period: time.Second}
	gomock.InOrder(
		m.redisRateLimiter.EXPECT().Allow(gomock.Any(), "settlement-hub:ratelimit:10.0.0.1", limit).
			Return(&redis_rate.Result{Allowed: 1, Remaining: 4}, nil),
		m.redisRateLimiter.EXPECT().Allow(gomock.Any(), "settlement-hub:ratelimit:10.0.0.1", limit).
			Return(&redis_rate.Result{Allowed: 0, RetryAfter: 200 * time.Millisecond}, nil),
	)

	d, err := l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 200*time.Millisecond, d.RetryAfter)

	m.redisClient.EXPECT().Close().Return(nil)
	assert.NoError(t, l.Close())
	// Close is idempotent
	assert.NoError(t, l.Close())
}

func TestLimiter_RedisErrorFallsBackToLocal(t *testing.T) {
	m := setupTestLimiter(t)
	defer tearDownTestLimiter(m)

	m.expectRedis(true)
	l, err := ratelimit.NewLimiter(ratelimit.Config{RequestsPerSecond: 1, EnableLocalFallback: true}, m.redisClient, m.clock)
	require.NoError(t, err)

	// Only the first call reaches redis, later calls stay local until the health check succeeds
	m.redisRateLimiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("i/o timeout")).Times(1)

	d, err := l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	m.redisClient.EXPECT().Close().Return(nil)
	require.NoError(t, l.Close())
}

func TestLimiter_RedisErrorWithoutFallback(t *testing.T) {
	m := setupTestLimiter(t)
	defer tearDownTestLimiter(m)

	m.expectRedis(true)
	l, err := ratelimit.NewLimiter(ratelimit.Config{RequestsPerSecond: 1}, m.redisClient, m.clock)
	require.NoError(t, err)

	m.redisRateLimiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("i/o timeout"))

	_, err = l.Allow(context.Background(), "10.0.0.1")
	assert.Error(t, err)

	// Redis stays marked unavailable
	_, err = l.Allow(context.Background(), "10.0.0.1")
	assert.Error(t, err)

	m.redisClient.EXPECT().Close().Return(nil)
	require.NoError(t, l.Close())
}

func TestNewLimiter_RedisUnavailable(t *testing.T) {
	t.Run("fails without fallback", func(t *testing.T) {
		m := setupTestLimiter(t)
		defer tearDownTestLimiter(m)

		statusCmd := redis.NewStatusCmd(context.Background())
		statusCmd.SetErr(errors.New("connection refused"))
		m.redisClient.EXPECT().Ping(gomock.Any()).Return(statusCmd)

		_, err := ratelimit.NewLimiter(ratelimit.Config{RequestsPerSecond: 1}, m.redisClient, m.clock)
		assert.Error(t, err)
	})

	t.Run("starts local with fallback", func(t *testing.T) {
		m := setupTestLimiter(t)
		defer tearDownTestLimiter(m)

		m.expectRedis(false)
		l, err := ratelimit.NewLimiter(ratelimit.Config{RequestsPerSecond: 1, EnableLocalFallback: true}, m.redisClient, m.clock)
		require.NoError(t, err)

		d, err := l.Allow(context.Background(), "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, d.Allowed)

		m.redisClient.EXPECT().Close().Return(nil)
		require.NoError(t, l.Close())
	})
}
