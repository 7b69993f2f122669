package controllers

import (
	"strings"

	"storefront/entities"
)

// CategoryFilter selects which products the catalog shows. Values >= 0 are
// category ids.
type CategoryFilter int64

const (
	AllCategories CategoryFilter = -1
	FavoritesOnly CategoryFilter = -2
)

// FilterProducts keeps the products that match filter and whose name
// contains query, ignoring case.
func FilterProducts(products []entities.Product, filter CategoryFilter, query string, favorites map[uint]bool) []entities.Product {
	needle := strings.ToLower(query)
	out := make([]entities.Product, 0, len(products))
	for _, p := range products {
		var inCategory bool
		switch filter {
		case AllCategories:
			inCategory = true
		case FavoritesOnly:
			inCategory = favorites[p.ID]
		default:
			inCategory = int64(p.CategoryID) == int64(filter)
		}
		if inCategory && (needle == "" || strings.Contains(strings.ToLower(p.Name), needle)) {
			out = append(out, p)
		}
	}
	return out
}
