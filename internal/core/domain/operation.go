package domain

import "time"

type Operation int

const (
	OpCreateProduct Operation = iota + 1
	OpUpdateProduct
	OpDeleteProduct
	OpCreateReview
	OpUpdateReview
	OpDeleteReview
	OpListProducts
	OpGetProduct
	OpListReviews
)

const UnexpectedMessage = "An unexpected error occurred."

type opMessages struct {
	name      string
	success   string
	fallback  string
	missingID string
}

var operations = map[Operation]opMessages{
	OpCreateProduct: {
		name:     "create-product",
		success:  "Product created successfully!",
		fallback: "Failed to create product.",
	},
	OpUpdateProduct: {
		name:      "update-product",
		success:   "Product updated successfully!",
		fallback:  "Failed to update product.",
		missingID: "Product ID is required to update a product.",
	},
	OpDeleteProduct: {
		name:      "delete-product",
		success:   "Product deleted successfully!",
		fallback:  "Failed to delete product.",
		missingID: "Product ID is required to delete a product.",
	},
	OpCreateReview: {
		name:     "create-review",
		success:  "Review created successfully!",
		fallback: "Failed to create review.",
	},
	OpUpdateReview: {
		name:      "update-review",
		success:   "Review updated successfully!",
		fallback:  "Failed to update review.",
		missingID: "Review ID is required to update a review.",
	},
	OpDeleteReview: {
		name:      "delete-review",
		success:   "Review deleted successfully!",
		fallback:  "Failed to delete review.",
		missingID: "Review ID is required to delete a review.",
	},
	OpListProducts: {
		name:     "list-products",
		fallback: "Failed to fetch products.",
	},
	OpGetProduct: {
		name:      "get-product",
		fallback:  "Failed to load product. Please try again later.",
		missingID: "Please provide a valid product ID.",
	},
	OpListReviews: {
		name:      "list-reviews",
		fallback:  "Failed to fetch reviews.",
		missingID: "Please provide a valid product ID.",
	},
}

func (o Operation) String() string {
	if m, ok := operations[o]; ok {
		return m.name
	}
	return "unknown"
}

func (o Operation) SuccessMessage() string {
	return operations[o].success
}

// FallbackMessage is used when a failed request carries no server message.
func (o Operation) FallbackMessage() string {
	if m, ok := operations[o]; ok {
		return m.fallback
	}
	return UnexpectedMessage
}

func (o Operation) MissingIDMessage() string {
	if m, ok := operations[o]; ok && m.missingID != "" {
		return m.missingID
	}
	return "Identifier is required."
}

// RequiresID reports whether the operation targets an existing record.
func (o Operation) RequiresID() bool {
	switch o {
	case OpUpdateProduct, OpDeleteProduct, OpUpdateReview, OpDeleteReview,
		OpGetProduct, OpListReviews:
		return true
	}
	return false
}

// A SubmissionEvent records the terminal outcome of one submission.
type SubmissionEvent struct {
	ID         string
	Op         Operation
	TargetID   string
	Succeeded  bool
	Message    string
	OccurredAt time.Time
}
