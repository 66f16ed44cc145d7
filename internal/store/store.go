// Package store holds the dashboard state and the only code allowed to
// change it. Every mutation goes through reduce under the store's lock,
// so readers always see a complete snapshot.
package store

import (
	"context"
	"sync"

	"chardash/internal/api"
	"chardash/internal/errors"
	"chardash/internal/log"
	"chardash/pkg/types"
)

// Listener is called with the new state after every successful dispatch.
type Listener func(State)

// Store owns a State.
type Store struct {
	mu        sync.Mutex
	state     State
	fetcher   api.PageFetcher
	maxPages  int
	listeners map[int]Listener
	nextID    int
	logger    *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithPageSize sets the initial page size.
func WithPageSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.state.PageSize = n
		}
	}
}

// WithMaxPages caps the background load. Page one counts toward the cap.
func WithMaxPages(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxPages = n
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// New creates an idle store backed by fetcher.
func New(fetcher api.PageFetcher, opts ...Option) *Store {
	s := &Store{
		state:     initialState(DefaultPageSize),
		fetcher:   fetcher,
		maxPages:  api.MaxPages,
		listeners: make(map[int]Listener),
		logger:    log.LogWithFields(log.F("component", "store")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) dispatch(a action) (State, error) {
	s.mu.Lock()
	next, err := reduce(s.state, a)
	if err != nil {
		s.mu.Unlock()
		return next, err
	}
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return next, nil
}

// SetPageSize changes the page size and returns to page one.
func (s *Store) SetPageSize(n int) error {
	_, err := s.dispatch(setPageSize{size: n})
	return err
}

// SetCurrentPage moves to page n. Values below one clamp to one.
func (s *Store) SetCurrentPage(n int) {
	s.dispatch(setCurrentPage{page: n})
}

// SetSearchTerm sets the name filter and returns to page one.
func (s *Store) SetSearchTerm(term string) {
	s.dispatch(setSearchTerm{term: term})
}

// SetTVShowFilter sets the TV show filter and returns to page one. An
// empty show clears it.
func (s *Store) SetTVShowFilter(show string) {
	s.dispatch(setTVShowFilter{show: show})
}

// ToggleSort flips the direction when field is already active, otherwise
// sorts ascending by field. SortNone clears sorting.
func (s *Store) ToggleSort(field types.SortField) {
	s.dispatch(toggleSort{field: field})
}

// SetSelectedCharacter opens the detail view for c. Nil closes it.
func (s *Store) SetSelectedCharacter(c *types.Character) {
	s.dispatch(setSelected{character: c})
}

// FetchFirstPage loads page one at pageSize, or at the current page size
// when pageSize is not positive. It fails with a TransitionError when a
// load is already running.
func (s *Store) FetchFirstPage(ctx context.Context, pageSize int) error {
	if pageSize <= 0 {
		pageSize = s.State().PageSize
	}
	if _, err := s.dispatch(firstPagePending{pageSize: pageSize}); err != nil {
		return err
	}

	page, err := s.fetcher.FetchPage(ctx, 1, pageSize)
	if err != nil {
		s.logger.With(log.F("page_size", pageSize)).Warnf("first page failed: %v", err)
		if _, derr := s.dispatch(firstPageRejected{message: err.Error()}); derr != nil {
			return derr
		}
		return err
	}

	chars := types.NormalizeAll(page.Characters)
	_, err = s.dispatch(firstPageFulfilled{characters: chars})
	s.logger.With(log.F("records", len(chars))).Debug("first page loaded")
	return err
}

// FetchRemainingCharacters loads pages 2..N at the first page's size and
// replaces the collection with page one plus everything fetched. Nothing
// is published until the last page arrives. A failure keeps page one and
// leaves the store PartiallyLoaded.
func (s *Store) FetchRemainingCharacters(ctx context.Context) error {
	st, err := s.dispatch(remainingPending{})
	if err != nil {
		return err
	}

	acc := make([]types.Character, len(st.Characters), len(st.Characters)*2)
	copy(acc, st.Characters)
	size := st.FirstPageSize

	for page := 2; page <= s.maxPages; page++ {
		p, err := s.fetcher.FetchPage(ctx, page, size)
		if err != nil {
			s.logger.With(log.F("page", page)).Warnf("background load stopped: %v", err)
			if _, derr := s.dispatch(remainingRejected{}); derr != nil {
				return derr
			}
			return errors.Wrapf(err, "background page %d", page)
		}
		acc = append(acc, types.NormalizeAll(p.Characters)...)
		if !p.HasNext() {
			break
		}
	}

	_, err = s.dispatch(remainingFulfilled{characters: acc})
	s.logger.With(log.F("records", len(acc))).Debug("background load finished")
	return err
}

// IsNotNeeded reports that FetchRemainingCharacters declined because the
// store does not hold exactly a first page.
func IsNotNeeded(err error) bool {
	return errors.Is(err, errRemainingNotNeeded)
}
