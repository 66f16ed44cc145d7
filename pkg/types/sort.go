package types

// SortField names the column the character table is ordered by.
type SortField int

const (
	// SortNone keeps upstream order
	SortNone SortField = iota
	// SortByName orders by locale-aware name comparison
	SortByName
)

func (f SortField) String() string {
	switch f {
	case SortByName:
		return "name"
	default:
		return "none"
	}
}

// ParseSortField maps a CLI/config value onto a SortField.
func ParseSortField(s string) (SortField, bool) {
	switch s {
	case "", "none":
		return SortNone, true
	case "name":
		return SortByName, true
	}
	return SortNone, false
}

// SortDirection is ascending or descending.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Flip returns the opposite direction.
func (d SortDirection) Flip() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}
