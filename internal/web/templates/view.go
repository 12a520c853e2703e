// Package templates renders the product table pages as templ components.
// Components live in *.templ files; run `templ generate` after editing them.
package templates

import "github.com/JonMunkholm/catalog/internal/core"

// Element ids targeted by partial updates.
const (
	PanelID = "product-view"  // whole filter panel and table
	TableID = "product-table" // table only, swapped while typing a search
	ClearID = "search-clear"  // clear button slot, swapped out of band
)

// ViewData is everything needed to render one product view.
type ViewData struct {
	Users      []core.User
	Categories []core.Category
	State      core.FilterState
	Rows       []core.ProductView
}

// UserClass colours the owner cell by gender.
func UserClass(u core.User) string {
	if u.Gender == core.GenderMale {
		return "has-text-link"
	}
	return "has-text-danger"
}
