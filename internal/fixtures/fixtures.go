// Package fixtures loads the users, categories and products that back the
// product table. Data is read once at startup; the result is immutable.
package fixtures

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/JonMunkholm/catalog/internal/core"
	"github.com/bytedance/sonic"
)

// Fixture file names inside a fixture directory.
const (
	UsersFile      = "users.json"
	CategoriesFile = "categories.json"
	ProductsFile   = "products.json"
)

//go:embed data/*.json
var embedded embed.FS

// Source loads a catalog.
type Source interface {
	Load(ctx context.Context) (*core.Catalog, error)
}

// FSSource reads the three fixture files from a filesystem.
type FSSource struct {
	FS   fs.FS
	Name string // Shown in logs: "embedded" or the directory path
}

// Embedded returns the fixtures bundled with the binary.
func Embedded() *FSSource {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return &FSSource{FS: sub, Name: "embedded"}
}

// Dir returns a source reading fixtures from a directory on disk.
func Dir(path string) *FSSource {
	return &FSSource{FS: os.DirFS(path), Name: path}
}

// Load reads and indexes the fixtures.
func (s *FSSource) Load(ctx context.Context) (*core.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		users      []core.User
		categories []core.Category
		products   []core.Product
	)

	if err := s.decode(UsersFile, &users); err != nil {
		return nil, err
	}
	if err := s.decode(CategoriesFile, &categories); err != nil {
		return nil, err
	}
	if err := s.decode(ProductsFile, &products); err != nil {
		return nil, err
	}

	return core.NewCatalog(users, categories, products)
}

func (s *FSSource) decode(name string, v any) error {
	data, err := fs.ReadFile(s.FS, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("fixture not found: %s in %s", name, s.Name)
		}
		return fmt.Errorf("read fixture %s: %w", name, err)
	}

	if err := sonic.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode fixture %s: %w", name, err)
	}
	return nil
}
