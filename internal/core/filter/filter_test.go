package filter_test

import (
	"testing"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/filter"
	"github.com/stretchr/testify/assert"
)

func products() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Widget", Category: "Tools", Price: 10},
		{ID: "2", Name: "Gadget", Category: "Electronics", Price: 50},
		{ID: "3", Name: "Wide Lamp", Category: "Home", Price: 25},
	}
}

func bound(v float64) *float64 { return &v }

func names(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestVisible(t *testing.T) {
	t.Run("NoCriteriaIsIdentity", func(t *testing.T) {
		src := products()
		assert.Equal(t, src, filter.Visible(src, domain.FilterCriteria{}))
	})

	t.Run("SearchIsCaseInsensitive", func(t *testing.T) {
		got := filter.Visible(products(), domain.FilterCriteria{SearchTerm: "wid"})
		assert.Equal(t, []string{"Widget", "Wide Lamp"}, names(got))
	})

	t.Run("Category", func(t *testing.T) {
		got := filter.Visible(products(),
			domain.FilterCriteria{Category: "Electronics"})
		assert.Equal(t, []string{"Gadget"}, names(got))
	})

	t.Run("InclusivePriceRange", func(t *testing.T) {
		got := filter.Visible(products(), domain.FilterCriteria{
			MinPrice: bound(10), MaxPrice: bound(25),
		})
		assert.Equal(t, []string{"Widget", "Wide Lamp"}, names(got))
	})

	t.Run("PartialRangeIgnored", func(t *testing.T) {
		src := products()
		assert.Equal(t, src, filter.Visible(src,
			domain.FilterCriteria{MinPrice: bound(30)}))
		assert.Equal(t, src, filter.Visible(src,
			domain.FilterCriteria{MaxPrice: bound(5)}))
	})

	t.Run("ComposesWithAnd", func(t *testing.T) {
		got := filter.Visible(products(), domain.FilterCriteria{
			SearchTerm: "wid",
			Category:   "Home",
			MinPrice:   bound(0),
			MaxPrice:   bound(100),
		})
		assert.Equal(t, []string{"Wide Lamp"}, names(got))
	})

	t.Run("SourceUntouched", func(t *testing.T) {
		src := products()
		_ = filter.Visible(src, domain.FilterCriteria{SearchTerm: "gadget"})
		assert.Equal(t, products(), src)
	})

	t.Run("EmptySource", func(t *testing.T) {
		got := filter.Visible(nil, domain.FilterCriteria{SearchTerm: "x"})
		assert.Empty(t, got)
	})
}

func TestParseCriteria(t *testing.T) {
	c := filter.ParseCriteria("w", " Tools ", "1.5", "abc")
	assert.Equal(t, "w", c.SearchTerm)
	assert.Equal(t, "Tools", c.Category)
	if assert.NotNil(t, c.MinPrice) {
		assert.Equal(t, 1.5, *c.MinPrice)
	}
	assert.Nil(t, c.MaxPrice)

	_, _, ok := c.PriceRange()
	assert.False(t, ok)
}

func TestCategories(t *testing.T) {
	src := append(products(),
		domain.Product{Name: "Hammer", Category: "Tools"},
		domain.Product{Name: "Loose"},
	)
	assert.Equal(t, []string{"Tools", "Electronics", "Home"},
		filter.Categories(src))
}
