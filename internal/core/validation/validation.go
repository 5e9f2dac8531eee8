// Package validation checks candidate products and reviews against their
// field rules before anything is sent to the remote API.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/niksmo/catalog/internal/core/domain"
)

type (
	productSchema struct {
		Name             string   `field:"name" validate:"required"`
		Description      string   `field:"description" validate:"required"`
		Price            float64  `field:"price" validate:"gt=0"`
		Category         string   `field:"category" validate:"required"`
		Tags             []string `field:"tags"`
		Use              string   `field:"use" validate:"required"`
		MinimumQuantity  int      `field:"minimumQuantity" validate:"gt=0"`
		SellingPrice     float64  `field:"sellingPrice" validate:"gt=0"`
		AddedBy          string   `field:"addedBy" validate:"required"`
		QuantityOnHand   int      `field:"quantityOnHand" validate:"gt=0"`
		ReservedQuantity int      `field:"reservedQuantity" validate:"gte=0"`
		Discount         float64  `field:"discount" validate:"gte=0"`
		ImageURLs        []string `field:"imageUrls" validate:"dive,absurl"`
	}

	reviewSchema struct {
		ProductID    string `field:"productId" validate:"required"`
		Rating       int    `field:"rating" validate:"min=1,max=5"`
		ReviewerName string `field:"reviewerName" validate:"required"`
		Comment      string `field:"comment" validate:"required"`
	}
)

const (
	ratingRule   = "min=1,max=5"
	nonEmptyRule = "required"
)

// A SchemaValidator validates records totally: every field is checked and
// every violation is reported in a single [domain.ValidationError].
type SchemaValidator struct {
	v *validator.Validate
}

func New() SchemaValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("field")
	})
	if err := v.RegisterValidation("absurl", isAbsoluteURL); err != nil {
		panic(err) // develop mistake
	}
	return SchemaValidator{v}
}

func isAbsoluteURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}

// Product returns the normalized product or a [*domain.ValidationError].
//
// typeErrs are coercion failures collected before validation, fields
// listed there are not checked again.
func (s SchemaValidator) Product(
	p domain.Product, typeErrs ...domain.FieldError,
) (domain.Product, error) {
	p = normalizeProduct(p)
	schema := productSchema{
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		Category:         p.Category,
		Tags:             p.Tags,
		Use:              p.Use,
		MinimumQuantity:  p.MinimumQuantity,
		SellingPrice:     p.SellingPrice,
		AddedBy:          p.AddedBy,
		QuantityOnHand:   p.QuantityOnHand,
		ReservedQuantity: p.ReservedQuantity,
		Discount:         p.Discount,
		ImageURLs:        p.ImageURLs,
	}

	errs := s.collect(s.v.Struct(schema), typeErrs)
	if len(errs) != 0 {
		return domain.Product{}, &domain.ValidationError{Fields: errs}
	}
	return p, nil
}

// Review validates a review draft for creation.
func (s SchemaValidator) Review(
	r domain.Review, typeErrs ...domain.FieldError,
) (domain.Review, error) {
	r.ProductID = strings.TrimSpace(r.ProductID)
	r.ReviewerName = strings.TrimSpace(r.ReviewerName)
	r.Comment = strings.TrimSpace(r.Comment)

	schema := reviewSchema{
		ProductID:    r.ProductID,
		Rating:       r.Rating,
		ReviewerName: r.ReviewerName,
		Comment:      r.Comment,
	}

	errs := s.collect(s.v.Struct(schema), typeErrs)
	if len(errs) != 0 {
		return domain.Review{}, &domain.ValidationError{Fields: errs}
	}
	return r, nil
}

// ReviewUpdate validates only the fields present in u.
func (s SchemaValidator) ReviewUpdate(
	u domain.ReviewUpdate, typeErrs ...domain.FieldError,
) (domain.ReviewUpdate, error) {
	errs := append([]domain.FieldError(nil), typeErrs...)
	skip := fieldSet(typeErrs)

	if u.Rating != nil && !skip["rating"] {
		errs = s.appendVar(errs, "rating", *u.Rating, ratingRule)
	}
	if u.ReviewerName != nil && !skip["reviewerName"] {
		name := strings.TrimSpace(*u.ReviewerName)
		u.ReviewerName = &name
		errs = s.appendVar(errs, "reviewerName", name, nonEmptyRule)
	}
	if u.Comment != nil && !skip["comment"] {
		comment := strings.TrimSpace(*u.Comment)
		u.Comment = &comment
		errs = s.appendVar(errs, "comment", comment, nonEmptyRule)
	}

	if len(errs) != 0 {
		return domain.ReviewUpdate{}, &domain.ValidationError{Fields: errs}
	}
	return u, nil
}

func (s SchemaValidator) appendVar(
	errs []domain.FieldError, field string, value any, rule string,
) []domain.FieldError {
	err := s.v.Var(value, rule)
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return errs
	}
	for _, fe := range ves {
		errs = append(errs, toFieldError(field, fe))
	}
	return errs
}

func (s SchemaValidator) collect(
	err error, typeErrs []domain.FieldError,
) []domain.FieldError {
	errs := append([]domain.FieldError(nil), typeErrs...)
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		if err != nil {
			panic(err) // invalid schema value, develop mistake
		}
		return errs
	}

	skip := fieldSet(typeErrs)
	for _, fe := range ves {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if skip[field] {
			continue
		}
		errs = append(errs, toFieldError(field, fe))
	}
	return errs
}

func fieldSet(errs []domain.FieldError) map[string]bool {
	m := make(map[string]bool, len(errs))
	for _, e := range errs {
		m[e.Field] = true
	}
	return m
}

func toFieldError(field string, fe validator.FieldError) domain.FieldError {
	switch fe.Tag() {
	case "required":
		return domain.FieldError{
			Field: field, Reason: domain.ReasonRequired, Message: "is required",
		}
	case "gt":
		return domain.FieldError{
			Field:   field,
			Reason:  domain.ReasonBelowMinimum,
			Message: "must be a positive number",
		}
	case "gte":
		return domain.FieldError{
			Field:   field,
			Reason:  domain.ReasonBelowMinimum,
			Message: "must be non-negative",
		}
	case "absurl":
		return domain.FieldError{
			Field:   field,
			Reason:  domain.ReasonMalformedURL,
			Message: fmt.Sprintf("%q is not an absolute URL", fe.Value()),
		}
	case "min", "max":
		return domain.FieldError{
			Field:   field,
			Reason:  domain.ReasonOutOfRange,
			Message: "must be between 1 and 5",
		}
	}
	return domain.FieldError{
		Field:   field,
		Reason:  domain.ReasonWrongType,
		Message: "failed rule " + fe.Tag(),
	}
}

func normalizeProduct(p domain.Product) domain.Product {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Category = strings.TrimSpace(p.Category)
	p.Use = strings.TrimSpace(p.Use)
	p.AddedBy = strings.TrimSpace(p.AddedBy)

	if p.Tags == nil {
		p.Tags = []string{}
	}
	tags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = strings.TrimSpace(t)
	}
	p.Tags = tags

	urls := make([]string, len(p.ImageURLs))
	for i, u := range p.ImageURLs {
		urls[i] = strings.TrimSpace(u)
	}
	p.ImageURLs = urls
	return p
}
