// Package filter derives the visible subset of a product collection.
//
// Criteria compose with AND: search term, category and price range each
// narrow the result independently. A price range applies only when both
// bounds are present.
package filter

import (
	"strings"

	"github.com/niksmo/catalog/internal/core/domain"
)

// Visible returns the products matching c in source order. The source
// slice is never modified.
func Visible(products []domain.Product, c domain.FilterCriteria) []domain.Product {
	term := strings.ToLower(c.SearchTerm)
	lo, hi, byPrice := c.PriceRange()

	visible := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		if c.Category != "" && p.Category != c.Category {
			continue
		}
		if byPrice && (p.Price < lo || p.Price > hi) {
			continue
		}
		visible = append(visible, p)
	}
	return visible
}

// ParseCriteria builds criteria from raw text inputs. A price bound that is
// blank or not a number is treated as absent.
func ParseCriteria(searchTerm, category, minPrice, maxPrice string) domain.FilterCriteria {
	return domain.FilterCriteria{
		SearchTerm: searchTerm,
		Category:   strings.TrimSpace(category),
		MinPrice:   parseBound(minPrice),
		MaxPrice:   parseBound(maxPrice),
	}
}

func parseBound(s string) *float64 {
	f, err := domain.ParseNumber(s)
	if err != nil {
		return nil
	}
	return &f
}

// Categories lists distinct non-empty categories in first-seen order.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}
