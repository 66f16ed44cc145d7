package loader

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"chardash/internal/api"
	"chardash/internal/errors"
	"chardash/internal/store"
	"chardash/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type pagedFetcher struct {
	pages    int
	failPage atomic.Int32
	calls    atomic.Int32
	gate     chan struct{}
	mu       sync.Mutex
	sizes    []int
}

func (f *pagedFetcher) FetchPage(ctx context.Context, page, pageSize int) (*api.Page, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.sizes = append(f.sizes, pageSize)
	f.mu.Unlock()

	if page > 1 && f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if int(f.failPage.Load()) == page {
		return nil, errors.NewRemoteFetchError("test", 502, nil)
	}

	chars := make([]types.Character, pageSize)
	for i := range chars {
		chars[i] = types.Character{ID: page*100 + i, Name: fmt.Sprintf("c%d", page*100+i)}
	}
	p := &api.Page{Characters: chars}
	if page < f.pages {
		p.NextPage = "more"
	}
	return p, nil
}

func TestEnsureFirstPage(t *testing.T) {
	f := &pagedFetcher{pages: 3}
	s := store.New(f, store.WithPageSize(20))
	c := New(s)

	require.NoError(t, c.EnsureFirstPage(context.Background()))
	assert.Len(t, s.State().Characters, 20)
	assert.True(t, c.ShouldLoadRemaining())

	require.NoError(t, c.EnsureFirstPage(context.Background()))
	assert.Equal(t, int32(1), f.calls.Load(), "second call is a no-op")
}

func TestLoad(t *testing.T) {
	f := &pagedFetcher{pages: 3}
	s := store.New(f, store.WithPageSize(10))
	c := New(s)

	require.NoError(t, c.Load(context.Background()))
	st := s.State()
	assert.Equal(t, store.FullyLoaded, st.Phase)
	assert.Len(t, st.Characters, 30)
	assert.Equal(t, []int{10, 10, 10}, f.sizes)
	assert.False(t, c.ShouldLoadRemaining())
}

func TestLoadRemainingFailure(t *testing.T) {
	f := &pagedFetcher{pages: 3}
	f.failPage.Store(3)
	s := store.New(f, store.WithPageSize(10))
	c := New(s)

	err := c.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsRemoteFetch(err))

	st := s.State()
	assert.Equal(t, store.PartiallyLoaded, st.Phase)
	assert.Len(t, st.Characters, 10)
	assert.Empty(t, st.Err)
	assert.False(t, c.ShouldLoadRemaining())
	assert.NoError(t, c.LoadRemaining(context.Background()), "no retry once settled")
	assert.Equal(t, int32(3), f.calls.Load())
}

func TestStart(t *testing.T) {
	f := &pagedFetcher{pages: 2, gate: make(chan struct{})}
	s := store.New(f, store.WithPageSize(5))
	c := New(s)

	done := c.Start(context.Background())
	require.NoError(t, <-done)

	require.Eventually(t, func() bool { return s.State().BackgroundLoading() }, time.Second, 5*time.Millisecond)
	assert.Len(t, s.State().Characters, 5, "page one is visible while the rest loads")
	assert.False(t, c.ShouldLoadRemaining(), "background already underway")

	close(f.gate)
	_, open := <-done
	assert.False(t, open)
	c.Wait()

	assert.Equal(t, store.FullyLoaded, s.State().Phase)
	assert.Len(t, s.State().Characters, 10)
}

func TestStartFirstPageFailure(t *testing.T) {
	f := &pagedFetcher{pages: 2}
	f.failPage.Store(1)
	s := store.New(f)
	c := New(s)

	err := <-c.Start(context.Background())
	require.Error(t, err)
	c.Wait()

	st := s.State()
	assert.True(t, st.HasError())
	assert.NotEmpty(t, st.Err)
	assert.Equal(t, int32(1), f.calls.Load())

	f.failPage.Store(0)
	require.NoError(t, c.Reload(context.Background()))
	assert.Equal(t, store.FirstPageLoaded, s.State().Phase)
	assert.True(t, c.ShouldLoadRemaining())
}

func TestStartCancelled(t *testing.T) {
	f := &pagedFetcher{pages: 5, gate: make(chan struct{})}
	s := store.New(f, store.WithPageSize(5))
	c := New(s)

	ctx, cancel := context.WithCancel(context.Background())
	done := c.Start(ctx)
	require.NoError(t, <-done)
	require.Eventually(t, func() bool { return s.State().BackgroundLoading() }, time.Second, 5*time.Millisecond)

	cancel()
	c.Wait()
	assert.Equal(t, store.PartiallyLoaded, s.State().Phase)
	assert.Len(t, s.State().Characters, 5)
}

func TestReloadRejectedWhileLoading(t *testing.T) {
	f := &pagedFetcher{pages: 2, gate: make(chan struct{})}
	s := store.New(f, store.WithPageSize(5))
	c := New(s)

	<-c.Start(context.Background())
	require.Eventually(t, func() bool { return s.State().BackgroundLoading() }, time.Second, 5*time.Millisecond)

	err := c.Reload(context.Background())
	assert.True(t, errors.IsIllegalTransition(err))

	close(f.gate)
	c.Wait()
}
