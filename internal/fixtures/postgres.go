package fixtures

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/catalog/internal/core"
	"github.com/jackc/pgx/v5"
)

// Querier is the subset of pgx used to read fixtures.
// Satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const (
	selectUsers      = `SELECT id, name, gender FROM users ORDER BY id`
	selectCategories = `SELECT id, name, icon, owner_id FROM categories ORDER BY id`
	selectProducts   = `SELECT id, name, category_id FROM products ORDER BY id`
)

// PostgresSource reads fixtures from the users, categories and products tables.
// Rows are read in id order, which becomes the unsorted table order.
type PostgresSource struct {
	DB Querier
}

// Load reads all three tables and indexes them.
func (s *PostgresSource) Load(ctx context.Context) (*core.Catalog, error) {
	users, err := queryAll(ctx, s.DB, selectUsers, func(row pgx.CollectableRow) (core.User, error) {
		var (
			u      core.User
			gender string
		)
		err := row.Scan(&u.ID, &u.Name, &gender)
		u.Gender = core.Gender(gender)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("load postgres users: %w", err)
	}

	categories, err := queryAll(ctx, s.DB, selectCategories, func(row pgx.CollectableRow) (core.Category, error) {
		var c core.Category
		err := row.Scan(&c.ID, &c.Name, &c.Icon, &c.OwnerID)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("load postgres categories: %w", err)
	}

	products, err := queryAll(ctx, s.DB, selectProducts, func(row pgx.CollectableRow) (core.Product, error) {
		var p core.Product
		err := row.Scan(&p.ID, &p.Name, &p.CategoryID)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("load postgres products: %w", err)
	}

	return core.NewCatalog(users, categories, products)
}

func queryAll[T any](ctx context.Context, db Querier, sql string, scan pgx.RowToFunc[T]) ([]T, error) {
	rows, err := db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scan)
}
