// Package catalog holds the pure filtering and sorting logic applied to the
// product list. It has no storage or transport dependencies so the query
// behavior can be tested against fixed fixtures.
package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"storefront-api/internal/model"
)

// Query narrows and orders a product list. Zero values mean "no constraint".
type Query struct {
	// Search matches name, description, or material, case-insensitive substring.
	Search string
	// Category must equal the product category exactly.
	Category string
	// Materials keeps products whose material is in the set.
	Materials []string
	// MinPrice/MaxPrice bound the price range inclusively.
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	// Sort is one of the Sort* constants; unknown values fall back to SortNewest.
	Sort string
}

const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
)

// Apply filters then sorts, returning a new slice. Filters run in order:
// search, category, material, price range. The sort is stable, so ties keep
// input order.
func Apply(products []*model.Product, q Query) []*model.Product {
	out := make([]*model.Product, 0, len(products))
	for _, p := range products {
		if matches(p, q) {
			out = append(out, p)
		}
	}

	sortProducts(out, q.Sort)
	return out
}

func matches(p *model.Product, q Query) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) &&
			!strings.Contains(strings.ToLower(p.Material), needle) {
			return false
		}
	}

	if q.Category != "" && p.Category != q.Category {
		return false
	}

	if len(q.Materials) > 0 {
		found := false
		for _, m := range q.Materials {
			if p.Material == m {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if q.MinPrice != nil && p.Price.LessThan(*q.MinPrice) {
		return false
	}
	if q.MaxPrice != nil && p.Price.GreaterThan(*q.MaxPrice) {
		return false
	}

	return true
}

func sortProducts(products []*model.Product, key string) {
	var less func(a, b *model.Product) bool

	switch key {
	case SortOldest:
		less = func(a, b *model.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortPriceAsc:
		less = func(a, b *model.Product) bool { return a.Price.LessThan(b.Price) }
	case SortPriceDesc:
		less = func(a, b *model.Product) bool { return a.Price.GreaterThan(b.Price) }
	case SortNameAsc:
		less = func(a, b *model.Product) bool { return a.Name < b.Name }
	case SortNameDesc:
		less = func(a, b *model.Product) bool { return a.Name > b.Name }
	default: // SortNewest
		less = func(a, b *model.Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	}

	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}
