// Package selectors derives the table rows, paging numbers, show list and
// chart dataset from a store snapshot. Each derivation remembers its last
// inputs and hands back the identical slice while they stay the same.
package selectors

import (
	"sort"
	"strings"
	"sync"

	"chardash/internal/chart"
	"chardash/internal/store"
	"chardash/pkg/types"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type filterKey struct {
	revision  uint64
	search    string
	show      string
	field     types.SortField
	direction types.SortDirection
}

type pageKey struct {
	filterKey
	page int
	size int
}

// Selectors is bound to one store. Revisions from different stores are
// not comparable.
type Selectors struct {
	mu       sync.Mutex
	collator *collate.Collator

	filteredKey filterKey
	filtered    []types.Character
	hasFiltered bool

	pagedKey pageKey
	paged    []types.Character
	hasPaged bool

	showsKey filterKey
	shows    []string
	hasShows bool

	chartKey pageKey
	chart    chart.Dataset
	hasChart bool
}

// New returns selectors that sort names for the given language.
func New(lang language.Tag) *Selectors {
	return &Selectors{collator: collate.New(lang)}
}

func keyOf(s store.State) filterKey {
	return filterKey{
		revision:  s.Revision,
		search:    s.SearchTerm,
		show:      s.TVShowFilter,
		field:     s.SortField,
		direction: s.SortDirection,
	}
}

func pageKeyOf(s store.State) pageKey {
	return pageKey{filterKey: keyOf(s), page: s.CurrentPage, size: s.PageSize}
}

// FilteredCharacters applies the name search, the TV show filter and the
// sort, in that order.
func (sel *Selectors) FilteredCharacters(s store.State) []types.Character {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	return sel.filteredLocked(s)
}

func (sel *Selectors) filteredLocked(s store.State) []types.Character {
	key := keyOf(s)
	if sel.hasFiltered && sel.filteredKey == key {
		return sel.filtered
	}

	search := strings.ToLower(s.SearchTerm)
	show := strings.ToLower(s.TVShowFilter)

	out := make([]types.Character, 0, len(s.Characters))
	for _, c := range s.Characters {
		if search != "" && (c.Name == "" || !strings.Contains(strings.ToLower(c.Name), search)) {
			continue
		}
		if show != "" && !anyContains(c.TVShows, show) {
			continue
		}
		out = append(out, c)
	}

	if s.SortField == types.SortByName {
		desc := s.SortDirection == types.Descending
		sort.SliceStable(out, func(i, j int) bool {
			cmp := sel.collator.CompareString(out[i].Name, out[j].Name)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	sel.filteredKey, sel.filtered, sel.hasFiltered = key, out, true
	return out
}

func anyContains(values []string, lowerNeedle string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), lowerNeedle) {
			return true
		}
	}
	return false
}

// PaginatedCharacters is the current page of the filtered list. A page
// past the end is empty.
func (sel *Selectors) PaginatedCharacters(s store.State) []types.Character {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	return sel.pagedLocked(s)
}

func (sel *Selectors) pagedLocked(s store.State) []types.Character {
	key := pageKeyOf(s)
	if sel.hasPaged && sel.pagedKey == key {
		return sel.paged
	}

	sel.pagedKey, sel.paged, sel.hasPaged = key, Paginate(sel.filteredLocked(s), s.CurrentPage, s.PageSize), true
	return sel.paged
}

// Paginate returns page (1-based) of chars at size rows per page. A page
// past the end is empty. The result's capacity ends at the page so an
// append cannot write into chars.
func Paginate(chars []types.Character, page, size int) []types.Character {
	size = max(size, 1)
	page = max(page, 1)
	start := min((page-1)*size, len(chars))
	end := min(start+size, len(chars))
	return chars[start:end:end]
}

// PageCount is ceil(n / size).
func PageCount(n, size int) int {
	size = max(size, 1)
	return (n + size - 1) / size
}

// FilteredCount is the number of characters left after filtering.
func (sel *Selectors) FilteredCount(s store.State) int {
	return len(sel.FilteredCharacters(s))
}

// TotalPages is ceil(FilteredCount / PageSize).
func (sel *Selectors) TotalPages(s store.State) int {
	return PageCount(sel.FilteredCount(s), s.PageSize)
}

// UniqueTVShows lists every show appearing in the filtered set, once,
// sorted.
func (sel *Selectors) UniqueTVShows(s store.State) []string {
	sel.mu.Lock()
	defer sel.mu.Unlock()

	key := keyOf(s)
	if sel.hasShows && sel.showsKey == key {
		return sel.shows
	}

	seen := make(map[string]struct{})
	shows := []string{}
	for _, c := range sel.filteredLocked(s) {
		for _, show := range c.TVShows {
			if show == "" {
				continue
			}
			if _, ok := seen[show]; ok {
				continue
			}
			seen[show] = struct{}{}
			shows = append(shows, show)
		}
	}
	sort.Strings(shows)

	sel.showsKey, sel.shows, sel.hasShows = key, shows, true
	return shows
}

// FilmsChart is the films-per-character dataset for the current page.
func (sel *Selectors) FilmsChart(s store.State) chart.Dataset {
	sel.mu.Lock()
	defer sel.mu.Unlock()

	key := pageKeyOf(s)
	if sel.hasChart && sel.chartKey == key {
		return sel.chart
	}

	sel.chartKey, sel.chart, sel.hasChart = key, chart.FilmsPerCharacter(sel.pagedLocked(s)), true
	return sel.chart
}
