package form

import (
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
)

var productFields = []Field[domain.Product]{
	textField("name", "Name", Text,
		func(p *domain.Product) *string { return &p.Name }),
	textField("description", "Description", TextArea,
		func(p *domain.Product) *string { return &p.Description }),
	numberField("price", "Price",
		func(p *domain.Product) *float64 { return &p.Price }),
	textField("category", "Category", Text,
		func(p *domain.Product) *string { return &p.Category }),
	listField("tags", "Tags (comma-separated)",
		func(p *domain.Product) *[]string { return &p.Tags }),
	textField("use", "Use", Text,
		func(p *domain.Product) *string { return &p.Use }),
	integerField("minimumQuantity", "Minimum Quantity",
		func(p *domain.Product) *int { return &p.MinimumQuantity }),
	numberField("sellingPrice", "Selling Price",
		func(p *domain.Product) *float64 { return &p.SellingPrice }),
	textField("addedBy", "Added By", Text,
		func(p *domain.Product) *string { return &p.AddedBy }),
	timestampField("expiresAt", "Expires At",
		func(p *domain.Product) *time.Time { return &p.ExpiresAt }),
	integerField("quantityOnHand", "Quantity on Hand",
		func(p *domain.Product) *int { return &p.QuantityOnHand }),
	integerField("reservedQuantity", "Reserved Quantity",
		func(p *domain.Product) *int { return &p.ReservedQuantity }),
	numberField("discount", "Discount",
		func(p *domain.Product) *float64 { return &p.Discount }),
	listField("imageUrls", "Image URLs (comma-separated)",
		func(p *domain.Product) *[]string { return &p.ImageURLs }),
}

var reviewFields = []Field[domain.Review]{
	textField("productId", "Product ID", Text,
		func(r *domain.Review) *string { return &r.ProductID }),
	integerField("rating", "Rating (1-5)",
		func(r *domain.Review) *int { return &r.Rating }),
	textField("reviewerName", "Reviewer Name", Text,
		func(r *domain.Review) *string { return &r.ReviewerName }),
	textField("comment", "Comment", TextArea,
		func(r *domain.Review) *string { return &r.Comment }),
}

var reviewUpdateFields = []Field[domain.ReviewUpdate]{
	optionalIntegerField("rating", "Rating (1-5)",
		func(u *domain.ReviewUpdate) **int { return &u.Rating }),
	optionalTextField("reviewerName", "Reviewer Name", Text,
		func(u *domain.ReviewUpdate) **string { return &u.ReviewerName }),
	optionalTextField("comment", "Comment", TextArea,
		func(u *domain.ReviewUpdate) **string { return &u.Comment }),
}

var defaultTimestamp = time.Date(2024, time.December, 2, 12, 0, 0, 0, time.UTC)

// DefaultProduct is the value a product draft starts from and returns to
// after a successful creation.
func DefaultProduct() domain.Product {
	return domain.Product{
		Name:             "Sample Product",
		Description:      "A description",
		Price:            10,
		Category:         "Category Name",
		Tags:             []string{"tag1", "tag2"},
		Use:              "for_rent",
		MinimumQuantity:  10,
		SellingPrice:     15,
		AddedBy:          "Kaleb",
		QuantityOnHand:   100,
		ReservedQuantity: 10,
		Discount:         5,
		ImageURLs:        []string{"https://example.com/image.jpg"},
		Timestamp:        defaultTimestamp,
	}
}

func DefaultReview() domain.Review {
	return domain.Review{}
}

func DefaultReviewUpdate() domain.ReviewUpdate {
	return domain.ReviewUpdate{}
}

func NewProductDraft() *Draft[domain.Product] {
	return newDraft(productFields, DefaultProduct)
}

func NewReviewDraft() *Draft[domain.Review] {
	return newDraft(reviewFields, DefaultReview)
}

func NewReviewUpdateDraft() *Draft[domain.ReviewUpdate] {
	return newDraft(reviewUpdateFields, DefaultReviewUpdate)
}
