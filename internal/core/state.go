package core

// Click returns the next sort state after the header of column c is clicked.
//
//	other column   -> (c, asc)
//	c, asc         -> (c, desc)
//	c, desc        -> unsorted
func (s SortState) Click(c Column) SortState {
	if c == ColumnNone {
		return s
	}
	if s.Column != c {
		return SortedBy(c, Ascending)
	}
	if s.Direction == Ascending {
		return SortedBy(c, Descending)
	}
	return Unsorted
}

// SetUser selects the owner filter. An empty name selects all users.
func (s *FilterState) SetUser(name string) {
	if name == "" {
		name = AllUsers
	}
	s.SelectedUser = name
}

// SetSearchTerm replaces the free text filter.
func (s *FilterState) SetSearchTerm(term string) {
	s.SearchTerm = term
}

// ToggleCategory removes name from the selected categories if present,
// otherwise appends it.
func (s *FilterState) ToggleCategory(name string) {
	if !s.HasCategory(name) {
		s.SelectedCategories = append(s.SelectedCategories, name)
		return
	}

	kept := make([]string, 0, len(s.SelectedCategories))
	for _, c := range s.SelectedCategories {
		if c != name {
			kept = append(kept, c)
		}
	}
	s.SelectedCategories = kept
}

// ResetFilters clears the user, search and category filters.
// The sort state is left as is.
func (s *FilterState) ResetFilters() {
	s.SelectedUser = AllUsers
	s.SearchTerm = ""
	s.SelectedCategories = []string{}
}

// ClickSortColumn advances the sort cycle for column c.
func (s *FilterState) ClickSortColumn(c Column) {
	s.Sort = s.Sort.Click(c)
}

// SortIcon returns the Font Awesome icon class for a column header.
func (s SortState) SortIcon(c Column) string {
	if c != s.Column || c == ColumnNone {
		return "fa-sort"
	}
	if s.Direction == Descending {
		return "fa-sort-down"
	}
	return "fa-sort-up"
}
