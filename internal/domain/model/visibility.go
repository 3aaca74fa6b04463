package model

// Visibility selects whether soft-deleted rows take part in a read.
type Visibility int

const (
	ActiveOnly Visibility = iota
	IncludeInactive
)

// Admits reports whether a row with the given active flag passes the filter.
func (v Visibility) Admits(isActive bool) bool {
	return isActive || v == IncludeInactive
}
