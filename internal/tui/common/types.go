package common

import (
	"chardash/internal/chart"
	"chardash/internal/store"
	"chardash/pkg/types"
)

type Mode int

const (
	Normal Mode = iota
	Search
	Detail
)

func (m Mode) String() string {
	switch m {
	case Search:
		return "search"
	case Detail:
		return "detail"
	default:
		return "normal"
	}
}

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	State() store.State
	Rows() []types.Character
	FilteredCount() int
	TotalPages() int
	Chart() chart.Dataset
	Mode() Mode
	ShowHelp() bool
	ShowChart() bool
	TableView() string
	SearchView() string
	StatusView() string
	HelpView() string
	StatusMsg() string
	Width() int
}
