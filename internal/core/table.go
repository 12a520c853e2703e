package core

// NoMatchesMessage is shown when filtering leaves no rows.
const NoMatchesMessage = "No products matching selected criteria"

// Apply runs the filter then the sort of state over views.
func Apply(views []ProductView, state FilterState) []ProductView {
	return Sort(Filter(views, state), state.Sort)
}

// Table is one product view instance: the joined rows of a catalog plus
// the filter and sort state that a single viewer mutates.
//
// Table is not safe for concurrent use. Each viewer owns its own Table and
// every mutation runs to completion before the next one starts.
type Table struct {
	catalog *Catalog
	views   []ProductView
	state   FilterState
}

// NewTable joins the catalog and starts with the default filter state.
func NewTable(catalog *Catalog) (*Table, error) {
	views, err := catalog.Views()
	if err != nil {
		return nil, err
	}
	return NewTableFromViews(catalog, views), nil
}

// NewTableFromViews starts a Table over rows that were already joined.
// The rows are shared and never modified.
func NewTableFromViews(catalog *Catalog, views []ProductView) *Table {
	return &Table{
		catalog: catalog,
		views:   views,
		state:   NewFilterState(),
	}
}

// Catalog returns the source catalog, used to render the filter panel.
func (t *Table) Catalog() *Catalog {
	return t.catalog
}

// VisibleRows recomputes the filtered and sorted rows.
// An empty result means nothing matched.
func (t *Table) VisibleRows() []ProductView {
	return Apply(t.views, t.state)
}

// State returns a snapshot of the current filter state.
func (t *Table) State() FilterState {
	return t.state.Clone()
}

// SetUser selects the owner filter.
func (t *Table) SetUser(name string) {
	t.state.SetUser(name)
}

// SetSearchTerm replaces the free text filter.
func (t *Table) SetSearchTerm(term string) {
	t.state.SetSearchTerm(term)
}

// ClearSearch empties the free text filter only.
func (t *Table) ClearSearch() {
	t.state.SetSearchTerm("")
}

// ToggleCategory adds or removes a category from the selection.
func (t *Table) ToggleCategory(name string) {
	t.state.ToggleCategory(name)
}

// ResetFilters clears every filter but keeps the sort.
func (t *Table) ResetFilters() {
	t.state.ResetFilters()
}

// ClickSortColumn advances the sort cycle for column c.
func (t *Table) ClickSortColumn(c Column) {
	t.state.ClickSortColumn(c)
}
