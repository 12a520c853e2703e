package core

import (
	"errors"
	"fmt"
)

// Join resolves each product's category and the category's owner into a
// ProductView. Output order matches the input product order.
//
// A product whose category does not exist, or a category whose owner does
// not exist, is an error. Every broken reference is reported, not just the
// first one, and no partial result is returned.
func Join(products []Product, categories []Category, users []User) ([]ProductView, error) {
	categoryByID := make(map[int]Category, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = c
	}
	userByID := make(map[int]User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	return join(products,
		func(id int) (Category, bool) {
			c, ok := categoryByID[id]
			return c, ok
		},
		func(id int) (User, bool) {
			u, ok := userByID[id]
			return u, ok
		},
	)
}

func join(products []Product, category func(int) (Category, bool), user func(int) (User, bool)) ([]ProductView, error) {
	views := make([]ProductView, 0, len(products))
	var errs []error

	for _, p := range products {
		cat, ok := category(p.CategoryID)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: product %d references category %d",
				ErrMissingCategory, p.ID, p.CategoryID))
			continue
		}

		owner, ok := user(cat.OwnerID)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: category %d references user %d",
				ErrMissingOwner, cat.ID, cat.OwnerID))
			continue
		}

		views = append(views, ProductView{
			Product:  p,
			Category: cat,
			User:     owner,
		})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return views, nil
}
