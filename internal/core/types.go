package core

import (
	"fmt"
	"strings"
)

// AllUsers is the user filter sentinel that disables filtering by owner.
const AllUsers = "All"

// Gender of a category owner. Only affects presentation.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// User owns one or more categories.
type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Gender Gender `json:"gender"`
}

// Category groups products and has exactly one owning user.
type Category struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Icon    string `json:"icon"`    // Glyph label, e.g. "🍏"
	OwnerID int    `json:"ownerId"` // -> User.ID
}

// Product belongs to exactly one category.
type Product struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	CategoryID int    `json:"categoryId"` // -> Category.ID
}

// ProductView is a product joined with its category and the category's owner.
// It is a read-only projection built by Join.
type ProductView struct {
	Product
	Category Category `json:"category"`
	User     User     `json:"user"`
}

// Column identifies a sortable table column.
type Column string

const (
	ColumnNone     Column = ""
	ColumnID       Column = "id"
	ColumnName     Column = "name"
	ColumnCategory Column = "category"
	ColumnUser     Column = "user"
)

// Columns lists the sortable columns in display order.
var Columns = []Column{ColumnID, ColumnName, ColumnCategory, ColumnUser}

// Label returns the table header text for the column.
func (c Column) Label() string {
	switch c {
	case ColumnID:
		return "ID"
	case ColumnName:
		return "Product"
	case ColumnCategory:
		return "Category"
	case ColumnUser:
		return "User"
	default:
		return ""
	}
}

// ParseColumn converts a column name to a Column.
// An empty string parses to ColumnNone.
func ParseColumn(s string) (Column, error) {
	switch c := Column(strings.ToLower(strings.TrimSpace(s))); c {
	case ColumnNone, ColumnID, ColumnName, ColumnCategory, ColumnUser:
		return c, nil
	default:
		return ColumnNone, fmt.Errorf("%w: %q", ErrUnknownColumn, s)
	}
}

// Direction is the sort order applied to a column.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection converts "asc"/"desc" to a Direction.
// Anything other than "desc" is ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Descending)) {
		return Descending
	}
	return Ascending
}

// SortState is either unsorted (Column == ColumnNone) or sorted by one
// column in one direction. The zero value is the initial unsorted state.
type SortState struct {
	Column    Column    `json:"column"`
	Direction Direction `json:"direction"`
}

// Unsorted is the initial sort state.
var Unsorted = SortState{Column: ColumnNone, Direction: Ascending}

// SortedBy returns a sort state for column c in direction d.
func SortedBy(c Column, d Direction) SortState {
	if c == ColumnNone {
		return Unsorted
	}
	return SortState{Column: c, Direction: d}
}

// IsSorted reports whether a column is selected.
func (s SortState) IsSorted() bool {
	return s.Column != ColumnNone
}

// FilterState holds the active filter criteria and sort state of one view.
type FilterState struct {
	SelectedUser       string    `json:"selectedUser"`
	SearchTerm         string    `json:"searchTerm"`
	SelectedCategories []string  `json:"selectedCategories"`
	Sort               SortState `json:"sort"`
}

// NewFilterState returns the default state: all users, no search,
// no categories, unsorted.
func NewFilterState() FilterState {
	return FilterState{
		SelectedUser:       AllUsers,
		SelectedCategories: []string{},
		Sort:               Unsorted,
	}
}

// Clone returns a deep copy safe to hand to readers.
func (s FilterState) Clone() FilterState {
	c := s
	c.SelectedCategories = append(make([]string, 0, len(s.SelectedCategories)), s.SelectedCategories...)
	return c
}

// HasCategory reports whether name is among the selected categories.
func (s FilterState) HasCategory(name string) bool {
	for _, c := range s.SelectedCategories {
		if c == name {
			return true
		}
	}
	return false
}

// IsFiltered reports whether any of the user, search or category filters is active.
func (s FilterState) IsFiltered() bool {
	return s.SelectedUser != AllUsers || s.SearchTerm != "" || len(s.SelectedCategories) > 0
}
