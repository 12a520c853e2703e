package core

import (
	"cmp"
	"slices"
)

// Sort orders views by the sort state. Unsorted returns a copy in input
// order. The sort is stable in both directions: descending inverts the
// comparison rather than reversing the output, so equal keys keep their
// input order.
func Sort(views []ProductView, state SortState) []ProductView {
	sorted := slices.Clone(views)
	if sorted == nil {
		sorted = []ProductView{}
	}

	compare := comparator(state.Column)
	if compare == nil {
		return sorted
	}

	if state.Direction == Descending {
		asc := compare
		compare = func(a, b ProductView) int { return asc(b, a) }
	}

	slices.SortStableFunc(sorted, compare)
	return sorted
}

// comparator returns the ascending comparison for a column, or nil for
// ColumnNone and unknown columns.
func comparator(c Column) func(a, b ProductView) int {
	switch c {
	case ColumnID:
		return func(a, b ProductView) int { return cmp.Compare(a.ID, b.ID) }
	case ColumnName:
		return func(a, b ProductView) int { return cmp.Compare(a.Name, b.Name) }
	case ColumnCategory:
		return func(a, b ProductView) int { return cmp.Compare(a.Category.Name, b.Category.Name) }
	case ColumnUser:
		return func(a, b ProductView) int { return cmp.Compare(a.User.Name, b.User.Name) }
	default:
		return nil
	}
}
