package core

import "fmt"

// Catalog holds the three source collections and id indexes over them.
// A Catalog is immutable once built and safe for concurrent readers.
type Catalog struct {
	users      []User
	categories []Category
	products   []Product

	userByID     map[int]int // id -> index into users
	categoryByID map[int]int // id -> index into categories
}

// NewCatalog indexes the given collections.
// Returns an error if an id repeats within a collection.
func NewCatalog(users []User, categories []Category, products []Product) (*Catalog, error) {
	c := &Catalog{
		users:        users,
		categories:   categories,
		products:     products,
		userByID:     make(map[int]int, len(users)),
		categoryByID: make(map[int]int, len(categories)),
	}

	for i, u := range users {
		if _, exists := c.userByID[u.ID]; exists {
			return nil, fmt.Errorf("%w: user id %d", ErrDuplicateID, u.ID)
		}
		c.userByID[u.ID] = i
	}

	for i, cat := range categories {
		if _, exists := c.categoryByID[cat.ID]; exists {
			return nil, fmt.Errorf("%w: category id %d", ErrDuplicateID, cat.ID)
		}
		c.categoryByID[cat.ID] = i
	}

	seen := make(map[int]bool, len(products))
	for _, p := range products {
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: product id %d", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = true
	}

	return c, nil
}

// User returns the user with the given id.
// Returns false if not found.
func (c *Catalog) User(id int) (User, bool) {
	i, ok := c.userByID[id]
	if !ok {
		return User{}, false
	}
	return c.users[i], true
}

// Category returns the category with the given id.
// Returns false if not found.
func (c *Catalog) Category(id int) (Category, bool) {
	i, ok := c.categoryByID[id]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// Users returns all users in source order.
func (c *Catalog) Users() []User {
	return append([]User(nil), c.users...)
}

// Categories returns all categories in source order.
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// Products returns all products in source order.
func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

// HasUserName reports whether any user is called name.
func (c *Catalog) HasUserName(name string) bool {
	for _, u := range c.users {
		if u.Name == name {
			return true
		}
	}
	return false
}

// Views joins the catalog into view rows.
func (c *Catalog) Views() ([]ProductView, error) {
	return join(c.products, c.Category, c.User)
}
