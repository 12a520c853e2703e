package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUsers() []User {
	return []User{
		{ID: 1, Name: "Roma", Gender: GenderMale},
		{ID: 2, Name: "Anna", Gender: GenderFemale},
		{ID: 3, Name: "Max", Gender: GenderMale},
	}
}

func testCategories() []Category {
	return []Category{
		{ID: 1, Name: "Grocery", Icon: "🍞", OwnerID: 2},
		{ID: 2, Name: "Drinks", Icon: "🍺", OwnerID: 1},
		{ID: 3, Name: "Electronics", Icon: "💻", OwnerID: 2},
	}
}

func testProducts() []Product {
	return []Product{
		{ID: 1, Name: "Milk", CategoryID: 2},
		{ID: 2, Name: "Bread", CategoryID: 1},
		{ID: 3, Name: "Phone", CategoryID: 3},
		{ID: 4, Name: "Beer", CategoryID: 2},
		{ID: 5, Name: "Laptop", CategoryID: 3},
		{ID: 6, Name: "Milkshake", CategoryID: 1},
	}
}

func testViews(t *testing.T) []ProductView {
	t.Helper()
	views, err := Join(testProducts(), testCategories(), testUsers())
	require.NoError(t, err)
	return views
}

func ids(views []ProductView) []int {
	out := make([]int, len(views))
	for i, v := range views {
		out[i] = v.ID
	}
	return out
}

func names(views []ProductView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Name
	}
	return out
}

// isSubsequence reports whether sub appears in full in the same relative order.
func isSubsequence(sub, full []int) bool {
	j := 0
	for _, v := range full {
		if j < len(sub) && sub[j] == v {
			j++
		}
	}
	return j == len(sub)
}

// ============================================================================
// Join
// ============================================================================

func TestJoin_ResolvesCategoryAndOwner(t *testing.T) {
	views := testViews(t)

	require.Len(t, views, 6)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids(views))

	milk := views[0]
	assert.Equal(t, "Drinks", milk.Category.Name)
	assert.Equal(t, "🍺", milk.Category.Icon)
	assert.Equal(t, "Roma", milk.User.Name)
	assert.Equal(t, GenderMale, milk.User.Gender)

	phone := views[2]
	assert.Equal(t, "Electronics", phone.Category.Name)
	assert.Equal(t, "Anna", phone.User.Name)
}

func TestJoin_Empty(t *testing.T) {
	views, err := Join(nil, testCategories(), testUsers())
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestJoin_MissingCategory(t *testing.T) {
	products := append(testProducts(), Product{ID: 7, Name: "Ghost", CategoryID: 99})

	views, err := Join(products, testCategories(), testUsers())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCategory)
	assert.Contains(t, err.Error(), "product 7 references category 99")
	assert.Nil(t, views)
}

func TestJoin_MissingOwner(t *testing.T) {
	categories := append(testCategories(), Category{ID: 4, Name: "Orphans", OwnerID: 42})
	products := append(testProducts(), Product{ID: 7, Name: "Sock", CategoryID: 4})

	_, err := Join(products, categories, testUsers())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingOwner)
	assert.Contains(t, err.Error(), "category 4 references user 42")
}

func TestJoin_ReportsEveryBrokenReference(t *testing.T) {
	categories := append(testCategories(), Category{ID: 4, Name: "Orphans", OwnerID: 42})
	products := append(testProducts(),
		Product{ID: 7, Name: "Ghost", CategoryID: 99},
		Product{ID: 8, Name: "Sock", CategoryID: 4},
	)

	_, err := Join(products, categories, testUsers())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCategory)
	assert.ErrorIs(t, err, ErrMissingOwner)
}

// ============================================================================
// Catalog
// ============================================================================

func TestNewCatalog_Lookups(t *testing.T) {
	c, err := NewCatalog(testUsers(), testCategories(), testProducts())
	require.NoError(t, err)

	u, ok := c.User(2)
	require.True(t, ok)
	assert.Equal(t, "Anna", u.Name)

	_, ok = c.User(404)
	assert.False(t, ok)

	cat, ok := c.Category(3)
	require.True(t, ok)
	assert.Equal(t, "Electronics", cat.Name)

	_, ok = c.Category(404)
	assert.False(t, ok)

	assert.True(t, c.HasUserName("Max"))
	assert.False(t, c.HasUserName("max"))

	views, err := c.Views()
	require.NoError(t, err)
	assert.Equal(t, testViews(t), views)
}

func TestNewCatalog_DuplicateIDs(t *testing.T) {
	tests := []struct {
		name       string
		users      []User
		categories []Category
		products   []Product
	}{
		{
			name:  "users",
			users: append(testUsers(), User{ID: 1, Name: "Clone"}),
		},
		{
			name:       "categories",
			users:      testUsers(),
			categories: append(testCategories(), Category{ID: 2, Name: "Clone", OwnerID: 1}),
		},
		{
			name:       "products",
			users:      testUsers(),
			categories: testCategories(),
			products:   append(testProducts(), Product{ID: 6, Name: "Clone", CategoryID: 1}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.users, tt.categories, tt.products)
			assert.ErrorIs(t, err, ErrDuplicateID)
		})
	}
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c, err := NewCatalog(testUsers(), testCategories(), testProducts())
	require.NoError(t, err)

	users := c.Users()
	users[0].Name = "Changed"

	u, _ := c.User(1)
	assert.Equal(t, "Roma", u.Name)
}

// ============================================================================
// Filter
// ============================================================================

func TestFilter(t *testing.T) {
	views := testViews(t)

	tests := []struct {
		name  string
		setup func(s *FilterState)
		want  []int
	}{
		{
			name:  "default state keeps everything",
			setup: func(s *FilterState) {},
			want:  []int{1, 2, 3, 4, 5, 6},
		},
		{
			name:  "user filter is exact",
			setup: func(s *FilterState) { s.SetUser("Anna") },
			want:  []int{2, 3, 5, 6},
		},
		{
			name:  "user filter is case sensitive",
			setup: func(s *FilterState) { s.SetUser("anna") },
			want:  []int{},
		},
		{
			name:  "unknown user yields nothing",
			setup: func(s *FilterState) { s.SetUser("Nobody") },
			want:  []int{},
		},
		{
			name:  "search is case insensitive substring",
			setup: func(s *FilterState) { s.SetSearchTerm("MILK") },
			want:  []int{1, 6},
		},
		{
			name:  "categories match any selected",
			setup: func(s *FilterState) { s.ToggleCategory("Electronics"); s.ToggleCategory("Drinks") },
			want:  []int{1, 3, 4, 5},
		},
		{
			name: "all filters combine with AND",
			setup: func(s *FilterState) {
				s.SetUser("Anna")
				s.SetSearchTerm("l")
				s.ToggleCategory("Grocery")
			},
			want: []int{6},
		},
		{
			name:  "unknown category yields nothing",
			setup: func(s *FilterState) { s.ToggleCategory("Toys") },
			want:  []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewFilterState()
			tt.setup(&state)

			got := Filter(views, state)
			assert.Equal(t, tt.want, ids(got))
			assert.True(t, isSubsequence(ids(got), ids(views)), "filter must preserve order")
		})
	}
}

func TestFilter_ResetStateIsIdentity(t *testing.T) {
	views := testViews(t)

	state := NewFilterState()
	state.SetUser("Roma")
	state.SetSearchTerm("zzz")
	state.ToggleCategory("Drinks")
	state.ResetFilters()

	assert.Equal(t, views, Filter(views, state))
}

func TestFilter_DoesNotAliasInput(t *testing.T) {
	views := testViews(t)
	got := Filter(views, NewFilterState())
	got[0].Name = "Changed"
	assert.Equal(t, "Milk", views[0].Name)
}

// ============================================================================
// Sort
// ============================================================================

func TestSort(t *testing.T) {
	views := testViews(t)

	tests := []struct {
		name  string
		state SortState
		want  []int
	}{
		{name: "unsorted keeps input order", state: Unsorted, want: []int{1, 2, 3, 4, 5, 6}},
		{name: "id desc", state: SortedBy(ColumnID, Descending), want: []int{6, 5, 4, 3, 2, 1}},
		{name: "name asc", state: SortedBy(ColumnName, Ascending), want: []int{4, 2, 5, 1, 6, 3}},
		{name: "name desc", state: SortedBy(ColumnName, Descending), want: []int{3, 6, 1, 5, 2, 4}},
		// Drinks(1,4) Electronics(3,5) Grocery(2,6); ties keep input order.
		{name: "category asc is stable", state: SortedBy(ColumnCategory, Ascending), want: []int{1, 4, 3, 5, 2, 6}},
		{name: "category desc is stable", state: SortedBy(ColumnCategory, Descending), want: []int{2, 6, 3, 5, 1, 4}},
		// Anna(2,3,5,6) Roma(1,4)
		{name: "user asc is stable", state: SortedBy(ColumnUser, Ascending), want: []int{2, 3, 5, 6, 1, 4}},
		{name: "user desc is stable", state: SortedBy(ColumnUser, Descending), want: []int{1, 4, 2, 3, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sort(views, tt.state)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSort_UnsortedIsIdentityOnShuffledInput(t *testing.T) {
	views := testViews(t)
	shuffled := []ProductView{views[4], views[0], views[5], views[2]}

	assert.Equal(t, []int{5, 1, 6, 3}, ids(Sort(shuffled, Unsorted)))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	views := testViews(t)
	_ = Sort(views, SortedBy(ColumnID, Descending))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids(views))
}

func TestSort_EmptyInput(t *testing.T) {
	got := Sort(nil, SortedBy(ColumnName, Ascending))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ============================================================================
// Sort state machine
// ============================================================================

func TestSortState_Click(t *testing.T) {
	s := Unsorted

	s = s.Click(ColumnName)
	assert.Equal(t, SortState{Column: ColumnName, Direction: Ascending}, s)

	s = s.Click(ColumnName)
	assert.Equal(t, SortState{Column: ColumnName, Direction: Descending}, s)

	s = s.Click(ColumnName)
	assert.Equal(t, Unsorted, s)
	assert.False(t, s.IsSorted())
}

func TestSortState_ClickOtherColumnRestartsCycle(t *testing.T) {
	for _, start := range []SortState{SortedBy(ColumnID, Ascending), SortedBy(ColumnID, Descending)} {
		got := start.Click(ColumnUser)
		assert.Equal(t, SortedBy(ColumnUser, Ascending), got)
	}
}

func TestSortState_ClickNoneIsNoop(t *testing.T) {
	s := SortedBy(ColumnID, Descending)
	assert.Equal(t, s, s.Click(ColumnNone))
}

func TestSortState_SortIcon(t *testing.T) {
	assert.Equal(t, "fa-sort", Unsorted.SortIcon(ColumnID))
	assert.Equal(t, "fa-sort-up", SortedBy(ColumnID, Ascending).SortIcon(ColumnID))
	assert.Equal(t, "fa-sort-down", SortedBy(ColumnID, Descending).SortIcon(ColumnID))
	assert.Equal(t, "fa-sort", SortedBy(ColumnID, Descending).SortIcon(ColumnName))
}

func TestParseColumn(t *testing.T) {
	tests := []struct {
		in      string
		want    Column
		wantErr bool
	}{
		{in: "", want: ColumnNone},
		{in: "id", want: ColumnID},
		{in: "Name", want: ColumnName},
		{in: " category ", want: ColumnCategory},
		{in: "user", want: ColumnUser},
		{in: "price", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColumn(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownColumn)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, Descending, ParseDirection("DESC"))
	assert.Equal(t, Ascending, ParseDirection("asc"))
	assert.Equal(t, Ascending, ParseDirection("sideways"))
}

// ============================================================================
// Filter state transitions
// ============================================================================

func TestToggleCategory_IsItsOwnInverse(t *testing.T) {
	s := NewFilterState()
	s.ToggleCategory("Drinks")
	before := s.Clone()

	s.ToggleCategory("Grocery")
	assert.Equal(t, []string{"Drinks", "Grocery"}, s.SelectedCategories)

	s.ToggleCategory("Grocery")
	assert.ElementsMatch(t, before.SelectedCategories, s.SelectedCategories)
}

func TestToggleCategory_RemovesAllOccurrences(t *testing.T) {
	s := NewFilterState()
	s.SelectedCategories = []string{"Drinks", "Grocery", "Drinks"}

	s.ToggleCategory("Drinks")
	assert.Equal(t, []string{"Grocery"}, s.SelectedCategories)
}

func TestResetFilters_KeepsSort(t *testing.T) {
	s := NewFilterState()
	s.SetUser("Roma")
	s.SetSearchTerm("milk")
	s.ToggleCategory("Drinks")
	s.ClickSortColumn(ColumnName)
	s.ClickSortColumn(ColumnName)

	s.ResetFilters()

	assert.Equal(t, AllUsers, s.SelectedUser)
	assert.Empty(t, s.SearchTerm)
	assert.Empty(t, s.SelectedCategories)
	assert.False(t, s.IsFiltered())
	assert.Equal(t, SortedBy(ColumnName, Descending), s.Sort)
}

func TestSetUser_EmptyMeansAll(t *testing.T) {
	s := NewFilterState()
	s.SetUser("Anna")
	s.SetUser("")
	assert.Equal(t, AllUsers, s.SelectedUser)
}

// ============================================================================
// Table
// ============================================================================

func newTestTable(t *testing.T) *Table {
	t.Helper()
	c, err := NewCatalog(testUsers(), testCategories(), testProducts())
	require.NoError(t, err)
	table, err := NewTable(c)
	require.NoError(t, err)
	return table
}

func TestTable_VisibleRowsFollowsMutations(t *testing.T) {
	table := newTestTable(t)

	assert.Len(t, table.VisibleRows(), 6)

	table.SetUser("Anna")
	table.ClickSortColumn(ColumnName)
	assert.Equal(t, []string{"Bread", "Laptop", "Milkshake", "Phone"}, names(table.VisibleRows()))

	table.SetSearchTerm("MILK")
	assert.Equal(t, []string{"Milkshake"}, names(table.VisibleRows()))

	table.ClearSearch()
	table.ToggleCategory("Electronics")
	assert.Equal(t, []string{"Laptop", "Phone"}, names(table.VisibleRows()))

	table.ResetFilters()
	assert.Len(t, table.VisibleRows(), 6)
	assert.Equal(t, SortedBy(ColumnName, Ascending), table.State().Sort)
}

func TestTable_StateIsSnapshot(t *testing.T) {
	table := newTestTable(t)
	table.ToggleCategory("Drinks")

	snap := table.State()
	snap.SelectedCategories[0] = "Changed"
	snap.SelectedUser = "Changed"

	assert.Equal(t, []string{"Drinks"}, table.State().SelectedCategories)
	assert.Equal(t, AllUsers, table.State().SelectedUser)
}

func TestTable_UnknownUserIsEmptyNotError(t *testing.T) {
	table := newTestTable(t)
	table.SetUser("Nobody")

	rows := table.VisibleRows()
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestNewTable_MalformedCatalog(t *testing.T) {
	c, err := NewCatalog(testUsers(), testCategories(), []Product{{ID: 1, Name: "Ghost", CategoryID: 9}})
	require.NoError(t, err)

	_, err = NewTable(c)
	assert.ErrorIs(t, err, ErrMissingCategory)
}

func TestExample_PhoneAndTable(t *testing.T) {
	users := []User{{ID: 1, Name: "Max", Gender: GenderMale}}
	categories := []Category{{ID: 1, Name: "Electronics", Icon: "💻", OwnerID: 1}}
	products := []Product{
		{ID: 1, Name: "Phone", CategoryID: 1},
		{ID: 2, Name: "Table", CategoryID: 1},
	}

	views, err := Join(products, categories, users)
	require.NoError(t, err)

	state := NewFilterState()
	state.SetSearchTerm("pho")
	assert.Equal(t, []int{1}, ids(Filter(views, state)))

	assert.Equal(t, []string{"Table", "Phone"}, names(Sort(views, SortedBy(ColumnName, Descending))))

	state = NewFilterState()
	state.ToggleCategory("Electronics")
	state.ToggleCategory("Electronics")
	assert.Empty(t, state.SelectedCategories)
	assert.Equal(t, views, Filter(views, state))
}
