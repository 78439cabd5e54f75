package locker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryRedis mimics the redis repository, including the compare-and-act
// scripts. Get returns "" for missing keys.
type memoryRedis struct {
	mu      sync.Mutex
	values  map[string]string
	expires map[string]time.Duration
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{values: map[string]string{}, expires: map[string]time.Duration{}}
}

func (m *memoryRedis) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *memoryRedis) TrySetNX(ctx context.Context, key, value string, exp time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.values[key]; exists {
		return false, nil
	}
	m.values[key] = value
	m.expires[key] = exp
	return true, nil
}

func (m *memoryRedis) DeleteIfEqual(ctx context.Context, key, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if stored, ok := m.values[key]; !ok || stored != value {
		return false, nil
	}
	delete(m.values, key)
	delete(m.expires, key)
	return true, nil
}

func (m *memoryRedis) ExpireIfEqual(ctx context.Context, key, value string, exp time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if stored, ok := m.values[key]; !ok || stored != value {
		return false, nil
	}
	m.expires[key] = exp
	return true, nil
}

func TestLockService(t *testing.T) {
	ctx := context.Background()

	t.Run("second TryLock on a held key is not acquired", func(t *testing.T) {
		svc := NewLockService(newMemoryRedis(), zap.NewNop())

		acquired, token, err := svc.TryLock(ctx, "claims:lock:123456789", time.Minute)
		require.NoError(t, err)
		assert.True(t, acquired)
		assert.NotEmpty(t, token)

		acquired, _, err = svc.TryLock(ctx, "claims:lock:123456789", time.Minute)
		require.NoError(t, err)
		assert.False(t, acquired)
	})

	t.Run("Lock gives up after the wait elapses", func(t *testing.T) {
		svc := NewLockService(newMemoryRedis(), zap.NewNop())
		_, err := svc.Lock(ctx, "k", time.Minute, 0)
		require.NoError(t, err)

		_, err = svc.Lock(ctx, "k", time.Minute, 150*time.Millisecond)
		assert.Error(t, err)
	})

	t.Run("Lock succeeds once the holder unlocks", func(t *testing.T) {
		svc := NewLockService(newMemoryRedis(), zap.NewNop())
		token, err := svc.Lock(ctx, "k", time.Minute, 0)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = svc.Unlock(ctx, "k", token)
		}()

		second, err := svc.Lock(ctx, "k", time.Minute, 2*time.Second)
		require.NoError(t, err)
		assert.NotEqual(t, token, second)
	})

	t.Run("Unlock refuses a foreign token", func(t *testing.T) {
		svc := NewLockService(newMemoryRedis(), zap.NewNop())
		_, token, err := svc.TryLock(ctx, "k", time.Minute)
		require.NoError(t, err)

		assert.Error(t, svc.Unlock(ctx, "k", "someone-else"))
		held, _ := svc.(*lockService).redisRepo.Get(ctx, "k")
		assert.Equal(t, token, held, "a foreign unlock leaves the lock in place")
		assert.NoError(t, svc.Unlock(ctx, "k", token))
		assert.NoError(t, svc.Unlock(ctx, "k", token), "releasing a missing lock is a no-op")
	})

	t.Run("Refresh extends only an owned lock", func(t *testing.T) {
		repo := newMemoryRedis()
		svc := NewLockService(repo, zap.NewNop())
		_, token, err := svc.TryLock(ctx, "k", time.Minute)
		require.NoError(t, err)

		require.NoError(t, svc.Refresh(ctx, "k", token, 5*time.Minute))
		assert.Equal(t, 5*time.Minute, repo.expires["k"])

		assert.Error(t, svc.Refresh(ctx, "k", "someone-else", time.Hour))
		assert.Equal(t, 5*time.Minute, repo.expires["k"])
	})
}
