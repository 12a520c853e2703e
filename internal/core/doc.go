// Package core provides the product table domain logic.
//
// This package is independent of any UI or transport layer. It can be used
// by the web handlers, CLI tools, or tests without modification.
//
// # Pipeline
//
// Rows shown to a viewer are computed in three pure steps:
//
//  1. [Join] resolves every product's category and that category's owner
//     into a [ProductView]. Missing references are errors
//     ([ErrMissingCategory], [ErrMissingOwner]).
//  2. [Filter] keeps views matching the [FilterState]: owner name, case
//     insensitive substring of the product name, and category membership.
//  3. [Sort] orders the result stably by one [Column] and [Direction].
//
// [Apply] chains the last two steps.
//
// # State
//
// A [Table] owns one [FilterState] and exposes the mutations a viewer can
// perform: [Table.SetUser], [Table.SetSearchTerm], [Table.ToggleCategory],
// [Table.ResetFilters] and [Table.ClickSortColumn]. Sorting cycles per
// column through ascending, descending and unsorted:
//
//	t.ClickSortColumn(ColumnName) // name asc
//	t.ClickSortColumn(ColumnName) // name desc
//	t.ClickSortColumn(ColumnName) // unsorted
//
// Resetting filters never touches the sort state.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// See error_messages.go for the code reference.
package core
