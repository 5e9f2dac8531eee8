package httphandler

import (
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
)

type (
	Product struct {
		ID               string     `json:"id"`
		Name             string     `json:"name"`
		Description      string     `json:"description"`
		Price            float64    `json:"price"`
		Category         string     `json:"category"`
		Tags             []string   `json:"tags"`
		Use              string     `json:"use"`
		MinimumQuantity  int        `json:"minimumQuantity"`
		SellingPrice     float64    `json:"sellingPrice"`
		AddedBy          string     `json:"addedBy"`
		ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
		QuantityOnHand   int        `json:"quantityOnHand"`
		ReservedQuantity int        `json:"reservedQuantity"`
		Discount         float64    `json:"discount"`
		ImageURLs        []string   `json:"imageUrls"`
		Timestamp        *time.Time `json:"timestamp,omitempty"`
		CreatedAt        *time.Time `json:"createdAt,omitempty"`
		UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
	}

	ProductList struct {
		Data []Product `json:"data"`
	}

	Review struct {
		ID           string     `json:"id"`
		ProductID    string     `json:"productId"`
		Rating       int        `json:"rating"`
		ReviewerName string     `json:"reviewerName"`
		Comment      string     `json:"comment"`
		CreatedAt    *time.Time `json:"createdAt,omitempty"`
	}

	ReviewUpdate struct {
		Rating       *int    `json:"rating"`
		ReviewerName *string `json:"reviewerName"`
		Comment      *string `json:"comment"`
	}

	Message struct {
		Message string `json:"message"`
	}
)

func optTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func productToDomain(p Product) domain.Product {
	return domain.Product{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Category:         p.Category,
		Price:            p.Price,
		SellingPrice:     p.SellingPrice,
		Tags:             p.Tags,
		Use:              p.Use,
		MinimumQuantity:  p.MinimumQuantity,
		QuantityOnHand:   p.QuantityOnHand,
		ReservedQuantity: p.ReservedQuantity,
		Discount:         p.Discount,
		ImageURLs:        p.ImageURLs,
		AddedBy:          p.AddedBy,
		ExpiresAt:        derefTime(p.ExpiresAt),
		Timestamp:        derefTime(p.Timestamp),
	}
}

func productFromDomain(p domain.Product) Product {
	return Product{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		Category:         p.Category,
		Tags:             p.Tags,
		Use:              p.Use,
		MinimumQuantity:  p.MinimumQuantity,
		SellingPrice:     p.SellingPrice,
		AddedBy:          p.AddedBy,
		ExpiresAt:        optTime(p.ExpiresAt),
		QuantityOnHand:   p.QuantityOnHand,
		ReservedQuantity: p.ReservedQuantity,
		Discount:         p.Discount,
		ImageURLs:        p.ImageURLs,
		Timestamp:        optTime(p.Timestamp),
		CreatedAt:        optTime(p.CreatedAt),
		UpdatedAt:        optTime(p.UpdatedAt),
	}
}

func reviewToDomain(r Review) domain.Review {
	return domain.Review{
		ProductID:    r.ProductID,
		Rating:       r.Rating,
		ReviewerName: r.ReviewerName,
		Comment:      r.Comment,
	}
}

func reviewFromDomain(r domain.Review) Review {
	return Review{
		ID:           r.ID,
		ProductID:    r.ProductID,
		Rating:       r.Rating,
		ReviewerName: r.ReviewerName,
		Comment:      r.Comment,
		CreatedAt:    optTime(r.CreatedAt),
	}
}
