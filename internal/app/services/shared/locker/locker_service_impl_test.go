package locker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRedis struct {
	mock.Mock
}

func (m *mockRedis) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockRedis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return m.Called(ctx, key, value, exp).Error(0)
}

func (m *mockRedis) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockRedis) AddToSet(ctx context.Context, key string, values ...interface{}) error {
	return m.Called(ctx, key, values).Error(0)
}

func (m *mockRedis) RemoveFromSet(ctx context.Context, key string, values ...interface{}) error {
	return m.Called(ctx, key, values).Error(0)
}

func (m *mockRedis) GetSetMembers(ctx context.Context, key string) ([]string, error) {
	args := m.Called(ctx, key)
	members, _ := args.Get(0).([]string)
	return members, args.Error(1)
}

func (m *mockRedis) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *mockRedis) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	args := m.Called(ctx, key, ttl)
	return args.Get(0).(int64), args.Error(1)
}

func newTestLocker(redis *mockRedis) *lockService {
	return &lockService{
		RedisRepository: redis,
		Log:             zap.NewNop(),
		newToken:        func() string { return "token-1" },
	}
}

func TestTryLock(t *testing.T) {
	ctx := context.Background()

	t.Run("Acquires with a fresh token", func(t *testing.T) {
		redis := new(mockRedis)
		redis.On("TrySetNX", ctx, "wizard:1:submit", "token-1", time.Minute).Return(true, nil).Once()

		acquired, token, err := newTestLocker(redis).TryLock(ctx, "wizard:1:submit", time.Minute)
		require.NoError(t, err)
		assert.True(t, acquired)
		assert.Equal(t, "token-1", token)
	})

	t.Run("Held lock is reported without error", func(t *testing.T) {
		redis := new(mockRedis)
		redis.On("TrySetNX", ctx, "wizard:1:submit", "token-1", time.Minute).Return(false, nil).Once()

		acquired, token, err := newTestLocker(redis).TryLock(ctx, "wizard:1:submit", time.Minute)
		require.NoError(t, err)
		assert.False(t, acquired)
		assert.Empty(t, token)
	})
}

func TestUnlock(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner releases the lock", func(t *testing.T) {
		redis := new(mockRedis)
		redis.On("Get", ctx, "k").Return(`"token-1"`, nil).Once()
		redis.On("Delete", ctx, "k").Return(nil).Once()

		require.NoError(t, newTestLocker(redis).Unlock(ctx, "k", "token-1"))
		redis.AssertExpectations(t)
	})

	t.Run("Expired lock is a no-op", func(t *testing.T) {
		redis := new(mockRedis)
		redis.On("Get", ctx, "k").Return("", nil).Once()

		require.NoError(t, newTestLocker(redis).Unlock(ctx, "k", "token-1"))
		redis.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Foreign lock is left alone", func(t *testing.T) {
		redis := new(mockRedis)
		redis.On("Get", ctx, "k").Return(`"token-2"`, nil).Once()

		err := newTestLocker(redis).Unlock(ctx, "k", "token-1")
		assert.ErrorIs(t, err, errLockNotOwned)
		redis.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Redis failure is returned", func(t *testing.T) {
		redis := new(mockRedis)
		redis.On("Get", ctx, "k").Return("", errors.New("conn reset")).Once()

		assert.Error(t, newTestLocker(redis).Unlock(ctx, "k", "token-1"))
	})
}
