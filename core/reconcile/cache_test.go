package reconcile

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingRun(calls *int32) RunFunc {
	return func(ctx context.Context) (*Result, error) {
		atomic.AddInt32(calls, 1)
		return &Result{Table: NewMergedTable(nil, nil)}, nil
	}
}

// TestCache_Hit tests that a stored result is reused within the TTL.
func TestCache_Hit(t *testing.T) {
	var calls int32
	c := NewCache(5 * time.Minute)

	first, hit, err := c.GetOrRun(context.Background(), "job", countingRun(&calls))
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := c.GetOrRun(context.Background(), "job", countingRun(&calls))
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), calls)

	c.Invalidate("job")
	_, hit, err = c.GetOrRun(context.Background(), "job", countingRun(&calls))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int32(2), calls)
}

// TestCache_Expiration tests that an expired result is rebuilt.
func TestCache_Expiration(t *testing.T) {
	var calls int32
	now := time.Now()
	c := NewCache(time.Minute)
	c.now = func() time.Time { return now }

	_, _, err := c.GetOrRun(context.Background(), "job", countingRun(&calls))
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, hit, err := c.GetOrRun(context.Background(), "job", countingRun(&calls))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int32(2), calls)
}

// TestCache_Disabled never stores results when TTL is zero.
func TestCache_Disabled(t *testing.T) {
	var calls int32
	c := NewCache(0)

	for i := 0; i < 3; i++ {
		_, hit, err := c.GetOrRun(context.Background(), "job", countingRun(&calls))
		require.NoError(t, err)
		assert.False(t, hit)
	}
	assert.Equal(t, int32(3), calls)
}

func TestCache_ErrorNotStored(t *testing.T) {
	c := NewCache(time.Minute)
	_, _, err := c.GetOrRun(context.Background(), "job", func(ctx context.Context) (*Result, error) {
		return nil, fmt.Errorf("load failed")
	})
	assert.EqualError(t, err, "load failed")

	var calls int32
	_, hit, err := c.GetOrRun(context.Background(), "job", countingRun(&calls))
	require.NoError(t, err)
	assert.False(t, hit)
}

// TestCache_Concurrent collapses concurrent identical runs.
func TestCache_Concurrent(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	c := NewCache(time.Minute)
	run := func(ctx context.Context) (*Result, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return &Result{}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := c.GetOrRun(context.Background(), "job", run)
			assert.NoError(t, err)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls)
}
