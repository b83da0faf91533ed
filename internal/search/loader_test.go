package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	lastTTL time.Duration
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (m *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapCache) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = payload
	m.lastTTL = ttl
	return nil
}

func TestLoad_CachesResults(t *testing.T) {
	cache := newMapCache()
	l := NewLoader(cache, time.Minute)
	var calls atomic.Int32
	fetch := func(context.Context) ([]string, error) {
		calls.Add(1)
		return []string{"Ada Plumbing"}, nil
	}

	for range 3 {
		got, err := Load(context.Background(), l, "contractors:ada", fetch)
		require.NoError(t, err)
		assert.Equal(t, []string{"Ada Plumbing"}, got)
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, time.Minute, cache.lastTTL)
}

func TestLoad_SharesInFlightCalls(t *testing.T) {
	l := NewLoader(nil, 0)
	release := make(chan struct{})
	var calls atomic.Int32
	fetch := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Load(context.Background(), l, "k", fetch)
			assert.NoError(t, err)
			results[i] = v
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, []int{42, 42, 42, 42, 42}, results)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLoad_CacheErrorFallsBack(t *testing.T) {
	cache := newMapCache()
	cache.getErr = errors.New("redis down")
	l := NewLoader(cache, time.Minute)

	got, err := Load(context.Background(), l, "k", func(context.Context) (string, error) { return "fresh", nil })
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)
}

func TestLoad_ErrorsAreNotCached(t *testing.T) {
	cache := newMapCache()
	l := NewLoader(cache, time.Minute)
	boom := errors.New("backend 502")

	_, err := Load(context.Background(), l, "k", func(context.Context) (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)
	assert.Empty(t, cache.data)
}
