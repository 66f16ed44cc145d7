// Package chart turns a page of characters into the films-per-character
// dataset shown by the dashboard and written by the exporter.
package chart

import (
	"fmt"
	"sort"
	"strings"

	"chardash/pkg/types"
)

// Title is the dataset's display title.
const Title = "Films per Character"

// Slice is one character's share of the chart.
type Slice struct {
	Name   string
	Films  int
	Titles []string
}

// Percentage is the slice's share of total, in percent.
func (s Slice) Percentage(total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(s.Films) / float64(total) * 100
}

// FormatPercentage renders the share with two decimals, or "0%" when
// total is zero.
func (s Slice) FormatPercentage(total int) string {
	if total <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.2f%%", s.Percentage(total))
}

// FilmList joins the film titles for display.
func (s Slice) FilmList() string {
	if len(s.Titles) == 0 {
		return "No films"
	}
	return strings.Join(s.Titles, ", ")
}

// Dataset is an ordered list of slices, largest first.
type Dataset struct {
	Slices []Slice
	Total  int
}

// Empty reports whether no character had any film.
func (d Dataset) Empty() bool {
	return len(d.Slices) == 0
}

// FilmsPerCharacter keeps the characters that appear in at least one film
// and orders them by film count, descending. Ties keep input order.
func FilmsPerCharacter(chars []types.Character) Dataset {
	ds := Dataset{Slices: []Slice{}}
	for _, c := range chars {
		if len(c.Films) == 0 {
			continue
		}
		ds.Slices = append(ds.Slices, Slice{
			Name:   c.DisplayName(),
			Films:  len(c.Films),
			Titles: c.Films,
		})
		ds.Total += len(c.Films)
	}
	sort.SliceStable(ds.Slices, func(i, j int) bool {
		return ds.Slices[i].Films > ds.Slices[j].Films
	})
	return ds
}
