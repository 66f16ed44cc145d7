package store

import (
	"chardash/internal/errors"
	"chardash/pkg/types"
)

// action is the closed set of mutations the store accepts.
type action interface {
	isAction()
}

type (
	setPageSize     struct{ size int }
	setCurrentPage  struct{ page int }
	setSearchTerm   struct{ term string }
	setTVShowFilter struct{ show string }
	toggleSort      struct{ field types.SortField }
	setSelected     struct{ character *types.Character }

	firstPagePending   struct{ pageSize int }
	firstPageFulfilled struct{ characters []types.Character }
	firstPageRejected  struct{ message string }

	remainingPending   struct{}
	remainingFulfilled struct{ characters []types.Character }
	remainingRejected  struct{}
)

func (setPageSize) isAction()        {}
func (setCurrentPage) isAction()     {}
func (setSearchTerm) isAction()      {}
func (setTVShowFilter) isAction()    {}
func (toggleSort) isAction()         {}
func (setSelected) isAction()        {}
func (firstPagePending) isAction()   {}
func (firstPageFulfilled) isAction() {}
func (firstPageRejected) isAction()  {}
func (remainingPending) isAction()   {}
func (remainingFulfilled) isAction() {}
func (remainingRejected) isAction()  {}

// errRemainingNotNeeded is returned when the background guard does not hold.
var errRemainingNotNeeded = errors.New("background load not needed")

// reduce applies a to s. It never mutates s.Characters.
func reduce(s State, a action) (State, error) {
	switch a := a.(type) {
	case setPageSize:
		if a.size <= 0 {
			return s, errors.NewInvalidInputError("page size must be positive", nil).WithContext("page_size", a.size)
		}
		s.PageSize = a.size
		s.CurrentPage = 1

	case setCurrentPage:
		s.CurrentPage = max(a.page, 1)

	case setSearchTerm:
		s.SearchTerm = a.term
		s.CurrentPage = 1

	case setTVShowFilter:
		s.TVShowFilter = a.show
		s.CurrentPage = 1

	case toggleSort:
		switch {
		case a.field == types.SortNone:
			s.SortField = types.SortNone
			s.SortDirection = types.Ascending
		case a.field == s.SortField:
			s.SortDirection = s.SortDirection.Flip()
		default:
			s.SortField = a.field
			s.SortDirection = types.Ascending
		}

	case setSelected:
		if a.character == nil {
			s.Selected = nil
		} else {
			c := *a.character
			s.Selected = &c
		}

	case firstPagePending:
		if err := transition(&s, FirstPageLoading); err != nil {
			return s, err
		}
		s.FirstPageSize = a.pageSize
		s.Err = ""

	case firstPageFulfilled:
		if err := transition(&s, FirstPageLoaded); err != nil {
			return s, err
		}
		s.replaceCharacters(a.characters)

	case firstPageRejected:
		if err := transition(&s, Error); err != nil {
			return s, err
		}
		s.Err = a.message

	case remainingPending:
		if s.Phase == FirstPageLoaded && !s.FirstPageOnly() {
			return s, errRemainingNotNeeded
		}
		if err := transition(&s, BackgroundLoading); err != nil {
			return s, err
		}

	case remainingFulfilled:
		if err := transition(&s, FullyLoaded); err != nil {
			return s, err
		}
		s.replaceCharacters(a.characters)

	case remainingRejected:
		if err := transition(&s, PartiallyLoaded); err != nil {
			return s, err
		}

	default:
		return s, errors.Newf("unknown action %T", a)
	}
	return s, nil
}

func transition(s *State, next Phase) error {
	if !s.Phase.CanTransition(next) {
		return errors.NewTransitionError(s.Phase.String(), next.String())
	}
	s.Phase = next
	return nil
}

func (s *State) replaceCharacters(chars []types.Character) {
	s.Characters = chars
	s.TotalCount = len(chars)
	s.Revision++
}
