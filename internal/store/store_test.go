package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"chardash/internal/api"
	"chardash/internal/errors"
	"chardash/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = time.Second
	tick    = 5 * time.Millisecond
)

type call struct {
	page, size int
}

// fakeFetcher serves numbered pages of generated characters.
type fakeFetcher struct {
	mu       sync.Mutex
	calls    []call
	pages    int
	perPage  int
	failPage int
	block    chan struct{}
}

func (f *fakeFetcher) FetchPage(ctx context.Context, page, pageSize int) (*api.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{page, pageSize})
	f.mu.Unlock()

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if page == f.failPage {
		return nil, errors.NewRemoteFetchError("fake", 500, nil)
	}

	per := f.perPage
	if per == 0 {
		per = pageSize
	}
	chars := make([]types.Character, per)
	for i := range chars {
		chars[i] = types.Character{ID: page*1000 + i, Name: fmt.Sprintf("p%d-%d", page, i)}
	}
	p := &api.Page{Characters: chars}
	if page < f.pages {
		p.NextPage = fmt.Sprintf("page=%d", page+1)
	}
	return p, nil
}

func (f *fakeFetcher) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func TestInitialState(t *testing.T) {
	s := New(&fakeFetcher{})
	st := s.State()

	assert.Empty(t, st.Characters)
	assert.NotNil(t, st.Characters)
	assert.Equal(t, 1, st.CurrentPage)
	assert.Equal(t, DefaultPageSize, st.PageSize)
	assert.Equal(t, types.SortNone, st.SortField)
	assert.Equal(t, types.Ascending, st.SortDirection)
	assert.Equal(t, Idle, st.Phase)
	assert.False(t, st.Loading())
	assert.False(t, st.BackgroundLoading())
	assert.Nil(t, st.Selected)
}

func TestFiltersResetPage(t *testing.T) {
	s := New(&fakeFetcher{})

	s.SetCurrentPage(4)
	s.SetSearchTerm("mic")
	assert.Equal(t, 1, s.State().CurrentPage)

	s.SetCurrentPage(4)
	s.SetTVShowFilter("DuckTales")
	assert.Equal(t, 1, s.State().CurrentPage)

	s.SetCurrentPage(4)
	require.NoError(t, s.SetPageSize(20))
	assert.Equal(t, 1, s.State().CurrentPage)
	assert.Equal(t, 20, s.State().PageSize)

	s.SetCurrentPage(4)
	s.ToggleSort(types.SortByName)
	assert.Equal(t, 4, s.State().CurrentPage, "sorting keeps the page")
}

func TestSetPageSizeRejectsNonPositive(t *testing.T) {
	s := New(&fakeFetcher{})
	err := s.SetPageSize(0)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInputError(err))
	assert.Equal(t, DefaultPageSize, s.State().PageSize)
}

func TestSetCurrentPageClamps(t *testing.T) {
	s := New(&fakeFetcher{})
	s.SetCurrentPage(-3)
	assert.Equal(t, 1, s.State().CurrentPage)
}

func TestToggleSort(t *testing.T) {
	s := New(&fakeFetcher{})

	s.ToggleSort(types.SortByName)
	assert.Equal(t, types.SortByName, s.State().SortField)
	assert.Equal(t, types.Ascending, s.State().SortDirection)

	s.ToggleSort(types.SortByName)
	assert.Equal(t, types.Descending, s.State().SortDirection)

	s.ToggleSort(types.SortByName)
	assert.Equal(t, types.Ascending, s.State().SortDirection)

	s.ToggleSort(types.SortByName)
	s.ToggleSort(types.SortNone)
	assert.Equal(t, types.SortNone, s.State().SortField)
	assert.Equal(t, types.Ascending, s.State().SortDirection)
}

func TestSelectedIsACopy(t *testing.T) {
	s := New(&fakeFetcher{})
	c := types.Character{ID: 1, Name: "Goofy"}
	s.SetSelectedCharacter(&c)
	c.Name = "changed"

	require.NotNil(t, s.State().Selected)
	assert.Equal(t, "Goofy", s.State().Selected.Name)

	s.SetSelectedCharacter(nil)
	assert.Nil(t, s.State().Selected)
}

func TestFetchFirstPage(t *testing.T) {
	f := &fakeFetcher{pages: 3}
	s := New(f)

	require.NoError(t, s.FetchFirstPage(context.Background(), 20))
	st := s.State()
	assert.Equal(t, FirstPageLoaded, st.Phase)
	assert.Len(t, st.Characters, 20)
	assert.Equal(t, 20, st.TotalCount)
	assert.Equal(t, 20, st.FirstPageSize)
	assert.Equal(t, uint64(1), st.Revision)
	assert.True(t, st.CanLoadRemaining())
	assert.Equal(t, []call{{1, 20}}, f.Calls())
}

func TestFetchFirstPageDefaultsToCurrentSize(t *testing.T) {
	f := &fakeFetcher{}
	s := New(f, WithPageSize(10))
	require.NoError(t, s.FetchFirstPage(context.Background(), 0))
	assert.Equal(t, []call{{1, 10}}, f.Calls())
}

func TestFetchFirstPageFailure(t *testing.T) {
	s := New(&fakeFetcher{failPage: 1})

	err := s.FetchFirstPage(context.Background(), 50)
	require.Error(t, err)
	assert.True(t, errors.IsRemoteFetch(err))

	st := s.State()
	assert.Equal(t, Error, st.Phase)
	assert.True(t, st.HasError())
	assert.NotEmpty(t, st.Err)
	assert.False(t, st.Loading())
	assert.Empty(t, st.Characters)
}

func TestFetchFirstPageWhileLoading(t *testing.T) {
	f := &fakeFetcher{block: make(chan struct{})}
	s := New(f)

	done := make(chan error, 1)
	go func() { done <- s.FetchFirstPage(context.Background(), 50) }()

	require.Eventually(t, func() bool { return s.State().Loading() }, waitFor, tick)

	err := s.FetchFirstPage(context.Background(), 50)
	assert.True(t, errors.IsIllegalTransition(err))

	close(f.block)
	require.NoError(t, <-done)
	assert.Len(t, f.Calls(), 1)
}

func TestFetchRemaining(t *testing.T) {
	f := &fakeFetcher{pages: 3}
	s := New(f)
	require.NoError(t, s.FetchFirstPage(context.Background(), 50))

	var seen []State
	unsubscribe := s.Subscribe(func(st State) { seen = append(seen, st) })
	defer unsubscribe()

	require.NoError(t, s.FetchRemainingCharacters(context.Background()))

	st := s.State()
	assert.Equal(t, FullyLoaded, st.Phase)
	assert.Len(t, st.Characters, 150)
	assert.Equal(t, 150, st.TotalCount)
	assert.Equal(t, "p1-0", st.Characters[0].Name)
	assert.Equal(t, "p3-49", st.Characters[149].Name)
	assert.Equal(t, []call{{1, 50}, {2, 50}, {3, 50}}, f.Calls())

	require.Len(t, seen, 2, "pending and fulfilled only")
	assert.True(t, seen[0].BackgroundLoading())
	assert.Len(t, seen[0].Characters, 50, "partial results are not published")
	assert.False(t, seen[1].BackgroundLoading())
}

func TestFetchRemainingUsesFirstPageSize(t *testing.T) {
	f := &fakeFetcher{pages: 2}
	s := New(f)
	require.NoError(t, s.FetchFirstPage(context.Background(), 20))
	require.NoError(t, s.SetPageSize(100))

	require.NoError(t, s.FetchRemainingCharacters(context.Background()))
	assert.Equal(t, []call{{1, 20}, {2, 20}}, f.Calls())
	assert.Equal(t, 100, s.State().PageSize)
}

func TestFetchRemainingFailureKeepsFirstPage(t *testing.T) {
	f := &fakeFetcher{pages: 5, failPage: 2}
	s := New(f)
	require.NoError(t, s.FetchFirstPage(context.Background(), 50))

	err := s.FetchRemainingCharacters(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsRemoteFetch(err))

	st := s.State()
	assert.Equal(t, PartiallyLoaded, st.Phase)
	assert.Len(t, st.Characters, 50)
	assert.Empty(t, st.Err, "background failures are not surfaced as errors")
	assert.False(t, st.BackgroundLoading())
	assert.False(t, st.CanLoadRemaining(), "no automatic retry")
}

func TestFetchRemainingGuard(t *testing.T) {
	t.Run("before first page", func(t *testing.T) {
		s := New(&fakeFetcher{})
		err := s.FetchRemainingCharacters(context.Background())
		assert.True(t, errors.IsIllegalTransition(err))
	})

	t.Run("after full load", func(t *testing.T) {
		f := &fakeFetcher{pages: 2}
		s := New(f)
		require.NoError(t, s.FetchFirstPage(context.Background(), 50))
		require.NoError(t, s.FetchRemainingCharacters(context.Background()))

		err := s.FetchRemainingCharacters(context.Background())
		assert.Error(t, err)
		assert.Len(t, f.Calls(), 2)
	})

	t.Run("empty first page", func(t *testing.T) {
		s := New(emptyFetcher{})
		require.NoError(t, s.FetchFirstPage(context.Background(), 50))

		err := s.FetchRemainingCharacters(context.Background())
		assert.True(t, IsNotNeeded(err))
		assert.Equal(t, FirstPageLoaded, s.State().Phase)
	})
}

type emptyFetcher struct{}

func (emptyFetcher) FetchPage(context.Context, int, int) (*api.Page, error) {
	return &api.Page{Characters: []types.Character{}}, nil
}

func TestFetchRemainingPageCap(t *testing.T) {
	f := &fakeFetcher{pages: 1000, perPage: 1}
	s := New(f, WithMaxPages(5))
	require.NoError(t, s.FetchFirstPage(context.Background(), 1))
	require.NoError(t, s.FetchRemainingCharacters(context.Background()))

	assert.Len(t, f.Calls(), 5)
	assert.Len(t, s.State().Characters, 5)
	assert.Equal(t, FullyLoaded, s.State().Phase)
}

func TestReloadAfterSettled(t *testing.T) {
	f := &fakeFetcher{pages: 2}
	s := New(f)
	require.NoError(t, s.FetchFirstPage(context.Background(), 50))
	require.NoError(t, s.FetchRemainingCharacters(context.Background()))
	rev := s.State().Revision

	require.NoError(t, s.FetchFirstPage(context.Background(), 50))
	st := s.State()
	assert.Equal(t, FirstPageLoaded, st.Phase)
	assert.Len(t, st.Characters, 50)
	assert.Greater(t, st.Revision, rev)
}

func TestSubscribeUnsubscribe(t *testing.T) {
	s := New(&fakeFetcher{})
	var n int
	unsubscribe := s.Subscribe(func(State) { n++ })

	s.SetSearchTerm("a")
	unsubscribe()
	s.SetSearchTerm("b")

	assert.Equal(t, 1, n)
}
