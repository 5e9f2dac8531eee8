package port

import (
	"context"

	"github.com/niksmo/catalog/internal/core/domain"
)

type ProductsFetcher interface {
	FetchProducts(context.Context) ([]domain.Product, error)
	FetchProduct(ctx context.Context, id string) (domain.Product, error)
}

// ProductsWriter returns the record echoed by the server, a zero value when
// the response carried no product.
type ProductsWriter interface {
	CreateProduct(context.Context, domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type ReviewsAPI interface {
	FetchReviews(ctx context.Context, productID string) ([]domain.Review, error)
	CreateReview(context.Context, domain.Review) (domain.Review, error)
	UpdateReview(ctx context.Context, id string, u domain.ReviewUpdate) error
	DeleteReview(ctx context.Context, id string) error
}

type CatalogAPI interface {
	ProductsFetcher
	ProductsWriter
	ReviewsAPI
}

// ProductsCollection is the local product collection kept in step with
// successful submissions.
type ProductsCollection interface {
	Add(domain.Product)
	Replace(domain.Product) bool
	Remove(id string) bool
}

type SubmissionPublisher interface {
	PublishSubmission(context.Context, domain.SubmissionEvent) error
}
