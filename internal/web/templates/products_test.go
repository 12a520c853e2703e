package templates

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/catalog/internal/core"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func sampleData() ViewData {
	roma := core.User{ID: 1, Name: "Roma", Gender: core.GenderMale}
	anna := core.User{ID: 2, Name: "Anna", Gender: core.GenderFemale}
	drinks := core.Category{ID: 2, Name: "Drinks", Icon: "🍺", OwnerID: 1}
	fruits := core.Category{ID: 3, Name: "Fruits", Icon: "🍏", OwnerID: 2}

	state := core.NewFilterState()
	state.ToggleCategory("Drinks")
	state.ClickSortColumn(core.ColumnName)
	state.ClickSortColumn(core.ColumnName)

	return ViewData{
		Users:      []core.User{roma, anna},
		Categories: []core.Category{drinks, fruits},
		State:      state,
		Rows: []core.ProductView{
			{Product: core.Product{ID: 1, Name: "Milk", CategoryID: 2}, Category: drinks, User: roma},
			{Product: core.Product{ID: 5, Name: "Apple", CategoryID: 3}, Category: fruits, User: anna},
		},
	}
}

func TestPage_WrapsPanelInDocument(t *testing.T) {
	out := renderString(t, Page(sampleData()))

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, "<title>Product Categories</title>")
	assert.Contains(t, out, `<div id="product-view">`)
	assert.True(t, strings.HasSuffix(out, "</html>"))
}

func TestProductTable_Rows(t *testing.T) {
	data := sampleData()
	out := renderString(t, ProductTable(data.State, data.Rows))

	assert.Equal(t, 2, strings.Count(out, `data-cy="Product"`))
	assert.Contains(t, out, `<td class="has-text-weight-bold" data-cy="ProductId">5</td>`)
	assert.Contains(t, out, `<td data-cy="ProductCategory">🍏 - Fruits</td>`)
	assert.Contains(t, out, `<td data-cy="ProductUser" class="has-text-link">Roma</td>`)
	assert.Contains(t, out, `<td data-cy="ProductUser" class="has-text-danger">Anna</td>`)
	assert.Contains(t, out, `<p data-cy="NoMatchingMessage"></p>`)
}

func TestProductTable_SortIcons(t *testing.T) {
	data := sampleData()
	out := renderString(t, ProductTable(data.State, data.Rows))

	assert.Equal(t, 1, strings.Count(out, "fa-sort-down"), "name is sorted descending")
	assert.Equal(t, 3, strings.Count(out, `class="fas fa-sort"`))
	assert.Contains(t, out, `action="/view/sort/name"`)
}

func TestProductTable_NoMatches(t *testing.T) {
	out := renderString(t, ProductTable(core.NewFilterState(), nil))

	assert.Contains(t, out, core.NoMatchesMessage)
	assert.NotContains(t, out, `data-cy="Product"`)
}

func TestFilterPanel_ReflectsState(t *testing.T) {
	out := renderString(t, FilterPanel(sampleData()))

	assert.Contains(t, out, `data-cy="FilterAllUsers" class="button is-white is-active"`)
	assert.Contains(t, out, `value="Drinks" data-cy="Category" class="button mr-2 my-1 is-info"`)
	assert.Contains(t, out, `value="Fruits" data-cy="Category" class="button mr-2 my-1"`)
	assert.Contains(t, out, `data-cy="AllCategories" formaction="/view/reset" hx-post="/view/reset" class="button is-success mr-6 is-outlined"`)
	assert.NotContains(t, out, `data-cy="ClearButton"`, "no clear button without a search term")
	assert.Contains(t, out, `data-cy="ResetAllButton"`)
}

func TestFilterPanel_EscapesUserInput(t *testing.T) {
	data := sampleData()
	data.State.SetSearchTerm(`"><script>alert(1)</script>`)
	data.Users = append(data.Users, core.User{ID: 9, Name: "<b>Eve</b>", Gender: core.GenderFemale})

	out := renderString(t, FilterPanel(data))

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<b>Eve</b>")
	assert.Contains(t, out, "&lt;b&gt;Eve&lt;/b&gt;")
	assert.Contains(t, out, `data-cy="ClearButton"`)
}

func TestErrorAlert(t *testing.T) {
	out := renderString(t, ErrorAlert("Your view session has expired", "Reload the page", "SES001"))

	assert.Contains(t, out, `data-cy="ErrorAlert"`)
	assert.Contains(t, out, "Your view session has expired <small>(SES001)</small>")
	assert.Contains(t, out, "<p>Reload the page</p>")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRender_ReturnsFirstWriteError(t *testing.T) {
	err := Page(sampleData()).Render(context.Background(), failingWriter{})
	assert.EqualError(t, err, "broken pipe")
}

func TestPage_LoadsHTMX(t *testing.T) {
	out := renderString(t, Page(sampleData()))

	assert.Contains(t, out, `<script src="https://cdn.jsdelivr.net/npm/htmx.org@2.0.4/dist/htmx.min.js"></script>`)
	assert.Contains(t, out, `<meta name="htmx-config" content='{"includeIndicatorStyles":false}'>`)
}

func TestFilterPanel_SearchUpdatesTableWhileTyping(t *testing.T) {
	out := renderString(t, FilterPanel(sampleData()))

	assert.Contains(t, out, `hx-post="/view/search" hx-trigger="input changed delay:300ms"`)
	assert.Contains(t, out, `hx-target="#product-table" hx-select="#product-table" hx-select-oob="#search-clear"`)
	assert.Contains(t, out, `<span id="search-clear" class="icon is-right"></span>`)
}

func TestProductTable_TargetID(t *testing.T) {
	out := renderString(t, ProductTable(core.NewFilterState(), nil))

	assert.True(t, strings.HasPrefix(out, `<div id="product-table" class="box table-container">`))
}

func TestUserClass(t *testing.T) {
	assert.Equal(t, "has-text-link", UserClass(core.User{Gender: core.GenderMale}))
	assert.Equal(t, "has-text-danger", UserClass(core.User{Gender: core.GenderFemale}))
}
