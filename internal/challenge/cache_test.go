package challenge

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

// fakeSource is a scriptable fetchFunc with call counting and an optional
// block channel so tests can hold a fetch open
type fakeSource struct {
	calls atomic.Int32

	mu    sync.Mutex
	value []string
	err   error
	block chan struct{}
}

func (f *fakeSource) fetch(ctx context.Context) ([]string, error) {
	f.calls.Add(1)

	f.mu.Lock()
	block := f.block
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]string, len(f.value))
	copy(out, f.value)
	return out, nil
}

func (f *fakeSource) set(value []string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = value
	f.err = err
}

func (f *fakeSource) setBlock(block chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.block = block
}

func TestCollectionGetFetchesOnceWhileFresh(t *testing.T) {
	src := &fakeSource{}
	src.set([]string{"a", "b"}, nil)
	col := newCollection("test", time.Minute, src.fetch, nil)

	first, err := col.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, first)

	second, err := col.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), src.calls.Load(), "fresh reads must not refetch")
}

func TestCollectionReturnedSliceIsACopy(t *testing.T) {
	src := &fakeSource{}
	src.set([]string{"a"}, nil)
	col := newCollection("test", time.Minute, src.fetch, nil)

	first, err := col.Get(context.Background())
	require.NoError(t, err)
	first[0] = "mutated"

	second, err := col.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, second)
}

func TestCollectionServesStaleAndRefreshesInBackground(t *testing.T) {
	src := &fakeSource{}
	src.set([]string{"old"}, nil)
	col := newCollection("test", time.Millisecond, src.fetch, nil)

	_, err := col.Get(context.Background())
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	src.set([]string{"new"}, nil)

	// Past the freshness window the stale value is served without blocking
	stale, err := col.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, stale)

	col.Wait()
	require.Eventually(t, func() bool {
		cur, ok := col.Peek()
		return ok && len(cur) == 1 && cur[0] == "new"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestCollectionCoalescesConcurrentGets(t *testing.T) {
	src := &fakeSource{block: make(chan struct{})}
	src.set([]string{"a"}, nil)
	col := newCollection("test", time.Minute, src.fetch, nil)

	var wg sync.WaitGroup
	results := make([][]string, 4)
	errs := make([]error, 4)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = col.Get(context.Background())
	}()
	require.Eventually(t, func() bool {
		return src.calls.Load() == 1
	}, time.Second, time.Millisecond)

	for i := 1; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = col.Get(context.Background())
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(src.block)
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, []string{"a"}, results[i])
	}
	assert.Equal(t, int32(1), src.calls.Load(), "concurrent gets must share one fetch")
}

func TestCollectionCoalescedGetHonorsContext(t *testing.T) {
	src := &fakeSource{block: make(chan struct{})}
	src.set([]string{"a"}, nil)
	col := newCollection("test", time.Minute, src.fetch, nil)
	defer close(src.block)

	go col.Get(context.Background()) //nolint:errcheck
	require.Eventually(t, func() bool {
		return src.calls.Load() == 1
	}, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := col.Get(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCollectionInvalidateDiscardsInflightResult(t *testing.T) {
	src := &fakeSource{block: make(chan struct{})}
	src.set([]string{"pre-mutation"}, nil)
	col := newCollection("test", time.Minute, src.fetch, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		col.Get(context.Background()) //nolint:errcheck
	}()
	require.Eventually(t, func() bool {
		return src.calls.Load() == 1
	}, time.Second, time.Millisecond)

	// The mutation lands while the fetch is still in flight
	col.Invalidate()
	close(src.block)
	<-done

	_, ok := col.Peek()
	assert.False(t, ok, "pre-invalidation fetch result must not be stored")
}

func TestCollectionInvalidateDetachesInflightFetch(t *testing.T) {
	block := make(chan struct{})
	src := &fakeSource{block: block}
	src.set([]string{"pre-mutation"}, nil)
	col := newCollection("test", time.Minute, src.fetch, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		col.Get(context.Background()) //nolint:errcheck
	}()
	require.Eventually(t, func() bool {
		return src.calls.Load() == 1
	}, time.Second, time.Millisecond)

	// The mutation lands while the first fetch is still in flight. A get
	// after the invalidation must not coalesce onto that fetch.
	col.Invalidate()
	src.setBlock(nil)
	src.set([]string{"post-mutation"}, nil)

	value, err := col.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"post-mutation"}, value, "post-invalidation get served pre-mutation data")
	assert.Equal(t, int32(2), src.calls.Load(), "post-invalidation get must fetch fresh data")

	close(block)
	<-done
}

func TestCollectionGetErrorIsNotCached(t *testing.T) {
	src := &fakeSource{}
	src.set(nil, errors.New("backend down"))
	col := newCollection("test", time.Minute, src.fetch, nil)

	_, err := col.Get(context.Background())
	require.Error(t, err)
	_, ok := col.Peek()
	assert.False(t, ok)

	src.set([]string{"a"}, nil)
	value, err := col.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, value)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestCollectionRefreshForcesFetch(t *testing.T) {
	src := &fakeSource{}
	src.set([]string{"v1"}, nil)
	col := newCollection("test", time.Minute, src.fetch, nil)

	_, err := col.Get(context.Background())
	require.NoError(t, err)

	src.set([]string{"v2"}, nil)
	require.NoError(t, col.Refresh(context.Background()))

	value, ok := col.Peek()
	require.True(t, ok)
	assert.Equal(t, []string{"v2"}, value)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestCollectionOnStoreReportsCount(t *testing.T) {
	src := &fakeSource{}
	src.set([]string{"a", "b", "c"}, nil)

	var counts []int
	var mu sync.Mutex
	col := newCollection("test", time.Minute, src.fetch, func(count int) {
		mu.Lock()
		counts = append(counts, count)
		mu.Unlock()
	})

	_, err := col.Get(context.Background())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{3}, counts)
}
