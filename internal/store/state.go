package store

import "chardash/pkg/types"

// DefaultPageSize is the initial table page size.
const DefaultPageSize = 50

// State is a snapshot of the dashboard. Characters is never modified in
// place; every replacement bumps Revision.
type State struct {
	Characters []types.Character
	Revision   uint64
	TotalCount int

	CurrentPage   int
	PageSize      int
	SearchTerm    string
	TVShowFilter  string
	SortField     types.SortField
	SortDirection types.SortDirection
	Selected      *types.Character

	Phase Phase
	// FirstPageSize is the page size page one was requested with.
	FirstPageSize int
	Err           string
}

func initialState(pageSize int) State {
	return State{
		Characters:    []types.Character{},
		CurrentPage:   1,
		PageSize:      pageSize,
		SortField:     types.SortNone,
		SortDirection: types.Ascending,
		Phase:         Idle,
	}
}

// Loading is true only while page one is being fetched.
func (s State) Loading() bool {
	return s.Phase == FirstPageLoading
}

// BackgroundLoading is true while pages 2..N are being fetched.
func (s State) BackgroundLoading() bool {
	return s.Phase == BackgroundLoading
}

// HasError reports a failed first-page load.
func (s State) HasError() bool {
	return s.Phase == Error
}

// FirstPageOnly reports that the store holds page one and nothing more:
// a non-empty collection no larger than the page it was fetched with.
func (s State) FirstPageOnly() bool {
	n := len(s.Characters)
	return n > 0 && n <= s.FirstPageSize
}

// CanLoadRemaining is the background-load guard.
func (s State) CanLoadRemaining() bool {
	return s.Phase == FirstPageLoaded && s.FirstPageOnly()
}
