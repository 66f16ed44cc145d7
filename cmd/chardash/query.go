package main

import (
	"context"
	"strings"

	"chardash/internal/api"
	"chardash/internal/errors"
	"chardash/internal/loader"
	"chardash/internal/selectors"
	"chardash/internal/store"
	"chardash/pkg/types"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
)

// queryOptions are the loading and filter flags shared by list and export.
type queryOptions struct {
	all      bool
	search   string
	show     string
	sort     string
	desc     bool
	match    string
	page     int
	pageSize int
}

func (q *queryOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&q.all, "all", "a", false, "load every page instead of just the first")
	cmd.Flags().StringVarP(&q.search, "search", "s", "", "case-insensitive name substring")
	cmd.Flags().StringVar(&q.show, "show", "", "only characters appearing in this TV show")
	cmd.Flags().StringVar(&q.sort, "sort", "", "sort field (name)")
	cmd.Flags().BoolVar(&q.desc, "desc", false, "sort descending")
	cmd.Flags().StringVarP(&q.match, "match", "m", "", "name glob, e.g. 'Mickey*'")
	cmd.Flags().IntVarP(&q.page, "page", "p", 1, "page to print")
	cmd.Flags().IntVar(&q.pageSize, "page-size", 0, "rows per page (default from config)")
}

// queryResult is one filtered page plus the numbers around it.
type queryResult struct {
	State   store.State
	Rows    []types.Character
	Matched int
	Pages   int
}

// runQuery loads characters through the store and applies the filters the
// same way the dashboard does. --match narrows the filtered list before
// paging.
func runQuery(ctx context.Context, opts *rootOptions, fetcher api.PageFetcher, q *queryOptions) (queryResult, error) {
	field, ok := types.ParseSortField(q.sort)
	if !ok {
		return queryResult{}, errors.NewInvalidInputError("unknown sort field "+q.sort, nil).WithContext("sort", q.sort)
	}

	var matcher glob.Glob
	if q.match != "" {
		g, err := glob.Compile(strings.ToLower(q.match))
		if err != nil {
			return queryResult{}, errors.NewInvalidInputError("invalid match pattern", err).WithContext("match", q.match)
		}
		matcher = g
	}

	s, err := opts.newStore(fetcher, q.pageSize)
	if err != nil {
		return queryResult{}, err
	}
	ctrl := loader.New(s)
	if q.all {
		err = ctrl.Load(ctx)
	} else {
		err = ctrl.EnsureFirstPage(ctx)
	}
	// a failed background step still leaves page one to print
	if err != nil && !s.State().HasError() && len(s.State().Characters) > 0 {
		err = nil
	}
	if err != nil {
		return queryResult{}, err
	}

	s.SetSearchTerm(q.search)
	s.SetTVShowFilter(q.show)
	if field != types.SortNone {
		s.ToggleSort(field)
		if q.desc {
			s.ToggleSort(field)
		}
	}
	s.SetCurrentPage(q.page)

	st := s.State()
	sel := selectors.New(opts.cfg.Language())
	if matcher == nil {
		return queryResult{
			State:   st,
			Rows:    sel.PaginatedCharacters(st),
			Matched: sel.FilteredCount(st),
			Pages:   sel.TotalPages(st),
		}, nil
	}

	var matched []types.Character
	for _, c := range sel.FilteredCharacters(st) {
		if matcher.Match(strings.ToLower(c.DisplayName())) {
			matched = append(matched, c)
		}
	}
	return queryResult{
		State:   st,
		Rows:    selectors.Paginate(matched, st.CurrentPage, st.PageSize),
		Matched: len(matched),
		Pages:   selectors.PageCount(len(matched), st.PageSize),
	}, nil
}
