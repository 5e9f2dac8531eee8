package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/catalog/internal/adapter/storage"
	"github.com/niksmo/catalog/internal/core/domain"
)

// GET    /products            200 {"data": [...]}
// GET    /products/{id}       200 product, 404
// POST   /products            201 product, 400
// PATCH  /products/{id}       200 product, 400, 404
// DELETE /products/{id}       204, 404
// GET    /reviews/{productId} 200 [...]
// POST   /reviews             201 review, 400
// PATCH  /reviews/{id}        200 review, 400, 404
// DELETE /reviews/{id}        200 {"message"}, 404

type Repository interface {
	ListProducts(context.Context) ([]domain.Product, error)
	ReadProduct(ctx context.Context, id string) (domain.Product, error)
	StoreProduct(context.Context, domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListReviews(ctx context.Context, productID string) ([]domain.Review, error)
	StoreReview(context.Context, domain.Review) (domain.Review, error)
	UpdateReview(ctx context.Context, id string, u domain.ReviewUpdate) (domain.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

type CatalogHandler struct {
	repo Repository
}

func RegisterCatalog(mux *http.ServeMux, repo Repository) {
	h := CatalogHandler{repo}
	mux.HandleFunc("GET /products", h.ListProducts)
	mux.HandleFunc("GET /products/{id}", h.GetProduct)
	mux.HandleFunc("POST /products", h.PostProduct)
	mux.HandleFunc("PATCH /products/{id}", h.PatchProduct)
	mux.HandleFunc("DELETE /products/{id}", h.DeleteProduct)
	mux.HandleFunc("GET /reviews/{productId}", h.ListReviews)
	mux.HandleFunc("POST /reviews", h.PostReview)
	mux.HandleFunc("PATCH /reviews/{id}", h.PatchReview)
	mux.HandleFunc("DELETE /reviews/{id}", h.DeleteReview)
}

func (h CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.ListProducts"

	ps, err := h.repo.ListProducts(r.Context())
	if err != nil {
		h.fail(w, op, err, "failed to list products")
		return
	}

	list := ProductList{Data: make([]Product, len(ps))}
	for i, p := range ps {
		list.Data[i] = productFromDomain(p)
	}
	writeJSON(w, http.StatusOK, list)
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"

	p, err := h.repo.ReadProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, op, err, "failed to read product")
		return
	}
	writeJSON(w, http.StatusOK, productFromDomain(p))
}

func (h CatalogHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PostProduct"

	var p Product
	if !decodeJSON(w, r, op, &p) {
		return
	}

	stored, err := h.repo.StoreProduct(r.Context(), productToDomain(p))
	if err != nil {
		h.fail(w, op, err, "failed to store product")
		return
	}

	slog.Info("product created", "op", op, "id", stored.ID)
	writeJSON(w, http.StatusCreated, productFromDomain(stored))
}

func (h CatalogHandler) PatchProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PatchProduct"

	var p Product
	if !decodeJSON(w, r, op, &p) {
		return
	}

	id := r.PathValue("id")
	updated, err := h.repo.UpdateProduct(r.Context(), id, productToDomain(p))
	if err != nil {
		h.fail(w, op, err, "failed to update product")
		return
	}
	writeJSON(w, http.StatusOK, productFromDomain(updated))
}

func (h CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.DeleteProduct"

	if err := h.repo.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, op, err, "failed to delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h CatalogHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.ListReviews"

	rs, err := h.repo.ListReviews(r.Context(), r.PathValue("productId"))
	if err != nil {
		h.fail(w, op, err, "failed to list reviews")
		return
	}

	reviews := make([]Review, len(rs))
	for i, v := range rs {
		reviews[i] = reviewFromDomain(v)
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h CatalogHandler) PostReview(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PostReview"

	var v Review
	if !decodeJSON(w, r, op, &v) {
		return
	}

	stored, err := h.repo.StoreReview(r.Context(), reviewToDomain(v))
	if err != nil {
		h.fail(w, op, err, "failed to store review")
		return
	}
	writeJSON(w, http.StatusCreated, reviewFromDomain(stored))
}

func (h CatalogHandler) PatchReview(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PatchReview"

	var u ReviewUpdate
	if !decodeJSON(w, r, op, &u) {
		return
	}

	updated, err := h.repo.UpdateReview(
		r.Context(),
		r.PathValue("id"),
		domain.ReviewUpdate{
			Rating:       u.Rating,
			ReviewerName: u.ReviewerName,
			Comment:      u.Comment,
		},
	)
	if err != nil {
		h.fail(w, op, err, "failed to update review")
		return
	}
	writeJSON(w, http.StatusOK, reviewFromDomain(updated))
}

func (h CatalogHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.DeleteReview"

	if err := h.repo.DeleteReview(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, op, err, "failed to delete review")
		return
	}
	writeJSON(w, http.StatusOK, Message{"review deleted"})
}

func (h CatalogHandler) fail(
	w http.ResponseWriter, op string, err error, msg string,
) {
	log := slog.With("op", op)

	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, Message{"not found"})
		log.Info("not found", "err", err)
		return
	}
	writeJSON(w, http.StatusInternalServerError, Message{msg})
	log.Error(msg, "err", err)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, op string, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, Message{"invalid JSON data"})
		slog.Warn("failed to parse JSON", "op", op, "err", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "err", err)
	}
}
