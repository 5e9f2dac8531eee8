// Package storage keeps the products and reviews served by the stub API.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/catalog/internal/core/domain"
)

var ErrNotFound = errors.New("not found")

type Memory struct {
	mu       sync.RWMutex
	products []domain.Product
	reviews  []domain.Review
	now      func() time.Time
}

func NewMemory(seed []domain.Product) *Memory {
	m := &Memory{now: time.Now}
	for _, p := range seed {
		m.products = append(m.products, m.stamp(p))
	}
	return m
}

func (m *Memory) stamp(p domain.Product) domain.Product {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := m.now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	return p
}

func (m *Memory) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Memory.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.products), nil
}

func (m *Memory) ReadProduct(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "Memory.ReadProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.productIndex(id)
	if i < 0 {
		return domain.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return m.products[i], nil
}

func (m *Memory) StoreProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "Memory.StoreProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p.ID = ""
	p.CreatedAt = time.Time{}
	p = m.stamp(p)
	m.products = append(m.products, p)

	slog.Debug("product stored", "op", op, "id", p.ID)
	return p, nil
}

func (m *Memory) UpdateProduct(
	ctx context.Context, id string, p domain.Product,
) (domain.Product, error) {
	const op = "Memory.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.productIndex(id)
	if i < 0 {
		return domain.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	p.ID = id
	p.CreatedAt = m.products[i].CreatedAt
	p = m.stamp(p)
	m.products[i] = p
	return p, nil
}

func (m *Memory) DeleteProduct(ctx context.Context, id string) error {
	const op = "Memory.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.productIndex(id)
	if i < 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	m.products = slices.Delete(m.products, i, i+1)
	return nil
}

func (m *Memory) ListReviews(
	ctx context.Context, productID string,
) ([]domain.Review, error) {
	const op = "Memory.ListReviews"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	reviews := []domain.Review{}
	for _, r := range m.reviews {
		if r.ProductID == productID {
			reviews = append(reviews, r)
		}
	}
	return reviews, nil
}

func (m *Memory) StoreReview(
	ctx context.Context, r domain.Review,
) (domain.Review, error) {
	const op = "Memory.StoreReview"

	if err := ctx.Err(); err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r.ID = uuid.NewString()
	r.CreatedAt = m.now().UTC()
	m.reviews = append(m.reviews, r)
	return r, nil
}

func (m *Memory) UpdateReview(
	ctx context.Context, id string, u domain.ReviewUpdate,
) (domain.Review, error) {
	const op = "Memory.UpdateReview"

	if err := ctx.Err(); err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.reviewIndex(id)
	if i < 0 {
		return domain.Review{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	r := &m.reviews[i]
	if u.Rating != nil {
		r.Rating = *u.Rating
	}
	if u.ReviewerName != nil {
		r.ReviewerName = *u.ReviewerName
	}
	if u.Comment != nil {
		r.Comment = *u.Comment
	}
	return *r, nil
}

func (m *Memory) DeleteReview(ctx context.Context, id string) error {
	const op = "Memory.DeleteReview"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.reviewIndex(id)
	if i < 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	m.reviews = slices.Delete(m.reviews, i, i+1)
	return nil
}

func (m *Memory) productIndex(id string) int {
	return slices.IndexFunc(m.products, func(p domain.Product) bool {
		return p.ID == id
	})
}

func (m *Memory) reviewIndex(id string) int {
	return slices.IndexFunc(m.reviews, func(r domain.Review) bool {
		return r.ID == id
	})
}
