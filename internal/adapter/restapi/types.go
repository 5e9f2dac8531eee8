package restapi

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
)

type (
	product struct {
		ID               string   `json:"id,omitempty"`
		Name             string   `json:"name"`
		Description      string   `json:"description"`
		Price            number   `json:"price"`
		Category         string   `json:"category"`
		Tags             []string `json:"tags"`
		Use              string   `json:"use"`
		MinimumQuantity  integer  `json:"minimumQuantity"`
		SellingPrice     number   `json:"sellingPrice"`
		AddedBy          string   `json:"addedBy"`
		ExpiresAt        *stamp   `json:"expiresAt,omitempty"`
		QuantityOnHand   integer  `json:"quantityOnHand"`
		ReservedQuantity integer  `json:"reservedQuantity"`
		Discount         number   `json:"discount"`
		ImageURLs        []string `json:"imageUrls"`
		Timestamp        *stamp   `json:"timestamp,omitempty"`
		CreatedAt        *stamp   `json:"createdAt,omitempty"`
		UpdatedAt        *stamp   `json:"updatedAt,omitempty"`
	}

	productList struct {
		Data json.RawMessage `json:"data"`
	}

	review struct {
		ID           string  `json:"id,omitempty"`
		ProductID    string  `json:"productId"`
		Rating       integer `json:"rating"`
		ReviewerName string  `json:"reviewerName"`
		Comment      string  `json:"comment"`
		CreatedAt    *stamp  `json:"createdAt,omitempty"`
	}

	reviewUpdate struct {
		Rating       *int    `json:"rating,omitempty"`
		ReviewerName *string `json:"reviewerName,omitempty"`
		Comment      *string `json:"comment,omitempty"`
	}

	failure struct {
		Message string `json:"message"`
	}
)

// number accepts a JSON number or a numeric string, the remote API is not
// consistent about price encoding.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*n = 0
			return nil
		}
		f, err := domain.ParseNumber(s)
		if err != nil {
			return err
		}
		*n = number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = number(f)
	return nil
}

type integer int

func (n *integer) UnmarshalJSON(b []byte) error {
	var f number
	if err := f.UnmarshalJSON(b); err != nil {
		return err
	}
	*n = integer(f)
	return nil
}

// stamp is a timestamp that decodes to zero when the value is not RFC 3339.
type stamp time.Time

func newStamp(t time.Time) *stamp {
	if t.IsZero() {
		return nil
	}
	s := stamp(t)
	return &s
}

func (s *stamp) time() time.Time {
	if s == nil {
		return time.Time{}
	}
	return time.Time(*s)
}

func (s stamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(s).Format(time.RFC3339Nano))
}

func (s *stamp) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		*s = stamp{}
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		*s = stamp{}
		return nil
	}
	*s = stamp(t)
	return nil
}

func productFromDomain(p domain.Product) product {
	return product{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Price:            number(p.Price),
		Category:         p.Category,
		Tags:             p.Tags,
		Use:              p.Use,
		MinimumQuantity:  integer(p.MinimumQuantity),
		SellingPrice:     number(p.SellingPrice),
		AddedBy:          p.AddedBy,
		ExpiresAt:        newStamp(p.ExpiresAt),
		QuantityOnHand:   integer(p.QuantityOnHand),
		ReservedQuantity: integer(p.ReservedQuantity),
		Discount:         number(p.Discount),
		ImageURLs:        p.ImageURLs,
		Timestamp:        newStamp(p.Timestamp),
	}
}

func (p product) toDomain() domain.Product {
	return domain.Product{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Category:         p.Category,
		Price:            float64(p.Price),
		SellingPrice:     float64(p.SellingPrice),
		Tags:             p.Tags,
		Use:              p.Use,
		MinimumQuantity:  int(p.MinimumQuantity),
		QuantityOnHand:   int(p.QuantityOnHand),
		ReservedQuantity: int(p.ReservedQuantity),
		Discount:         float64(p.Discount),
		ImageURLs:        p.ImageURLs,
		AddedBy:          p.AddedBy,
		ExpiresAt:        p.ExpiresAt.time(),
		Timestamp:        p.Timestamp.time(),
		CreatedAt:        p.CreatedAt.time(),
		UpdatedAt:        p.UpdatedAt.time(),
	}
}

func reviewFromDomain(r domain.Review) review {
	return review{
		ID:           r.ID,
		ProductID:    r.ProductID,
		Rating:       integer(r.Rating),
		ReviewerName: r.ReviewerName,
		Comment:      r.Comment,
	}
}

func (r review) toDomain() domain.Review {
	return domain.Review{
		ID:           r.ID,
		ProductID:    r.ProductID,
		Rating:       int(r.Rating),
		ReviewerName: r.ReviewerName,
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt.time(),
	}
}

func reviewUpdateFromDomain(u domain.ReviewUpdate) reviewUpdate {
	return reviewUpdate{
		Rating:       u.Rating,
		ReviewerName: u.ReviewerName,
		Comment:      u.Comment,
	}
}
