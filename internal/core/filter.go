package core

import "strings"

// Filter returns the views that pass the user, search and category
// filters of state. The result preserves input order and never aliases
// the input slice.
func Filter(views []ProductView, state FilterState) []ProductView {
	search := strings.ToLower(state.SearchTerm)

	filtered := make([]ProductView, 0, len(views))
	for _, v := range views {
		if state.SelectedUser != AllUsers && v.User.Name != state.SelectedUser {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(v.Name), search) {
			continue
		}
		if len(state.SelectedCategories) > 0 && !state.HasCategory(v.Category.Name) {
			continue
		}
		filtered = append(filtered, v)
	}
	return filtered
}
