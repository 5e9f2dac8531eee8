package domain

import "time"

type (
	Product struct {
		ID               string
		Name             string
		Description      string
		Category         string
		Price            float64
		SellingPrice     float64
		Tags             []string
		Use              string
		MinimumQuantity  int
		QuantityOnHand   int
		ReservedQuantity int
		Discount         float64
		ImageURLs        []string
		AddedBy          string
		ExpiresAt        time.Time
		Timestamp        time.Time
		CreatedAt        time.Time
		UpdatedAt        time.Time
	}

	Review struct {
		ID           string
		ProductID    string
		Rating       int
		ReviewerName string
		Comment      string
		CreatedAt    time.Time
	}

	// ReviewUpdate is a partial review. Nil fields are left untouched
	// server-side.
	ReviewUpdate struct {
		Rating       *int
		ReviewerName *string
		Comment      *string
	}
)

// Empty reports whether the update carries no field at all.
func (u ReviewUpdate) Empty() bool {
	return u.Rating == nil && u.ReviewerName == nil && u.Comment == nil
}

type FilterCriteria struct {
	SearchTerm string
	Category   string
	MinPrice   *float64
	MaxPrice   *float64
}

// PriceRange reports the bounds and whether price filtering applies.
// Both bounds must be supplied, a single bound means no price filtering.
func (c FilterCriteria) PriceRange() (lo, hi float64, ok bool) {
	if c.MinPrice == nil || c.MaxPrice == nil {
		return 0, 0, false
	}
	return *c.MinPrice, *c.MaxPrice, true
}
