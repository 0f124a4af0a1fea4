// Package catalog serves the fixed category taxonomy. The catalog is
// embedded at build time and loaded once; validity of stored records
// against it is advisory, not enforced.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed catalog.json
var catalogJSON []byte

// Category is one top-level classification with its optional detail tags.
type Category struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

var categories []Category

func init() {
	var doc struct {
		Categories []Category `json:"categories"`
	}
	if err := json.Unmarshal(catalogJSON, &doc); err != nil {
		panic(fmt.Sprintf("catalog: parse embedded catalog.json: %v", err))
	}
	categories = doc.Categories
}

// Categories returns the full catalog. The slice is a copy; callers cannot
// mutate the loaded catalog.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = Category{
			Name:          c.Name,
			Subcategories: append([]string(nil), c.Subcategories...),
		}
	}
	return out
}

// Lookup finds a category by name, case-insensitively.
func Lookup(name string) (Category, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return Category{
				Name:          c.Name,
				Subcategories: append([]string(nil), c.Subcategories...),
			}, true
		}
	}
	return Category{}, false
}
