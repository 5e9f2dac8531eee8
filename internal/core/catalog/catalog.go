// Package catalog holds the fetched product collection and the visible
// subset derived from it.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/filter"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/niksmo/catalog/internal/core/reporter"
)

var _ port.ProductsCollection = (*Store)(nil)

const noProductsMessage = "No products found."

type Status int

const (
	Loading Status = iota
	Ready
	Failed
)

// A Store owns the canonical product collection. Every change to the
// collection or to the criteria recomputes the visible subset and notifies
// subscribers.
type Store struct {
	fetcher port.ProductsFetcher
	report  reporter.Slot

	mu       sync.RWMutex
	status   Status
	products []domain.Product
	criteria domain.FilterCriteria
	visible  []domain.Product
	subs     map[int]func([]domain.Product)
	nextSub  int
	pending  [][]domain.Product
	draining bool
}

func New(fetcher port.ProductsFetcher) *Store {
	return &Store{
		fetcher: fetcher,
		subs:    make(map[int]func([]domain.Product)),
	}
}

// Load fetches the collection. On failure the collection is left empty and
// the failure message replaces the content in the report slot.
func (s *Store) Load(ctx context.Context) error {
	const op = "Store.Load"
	log := slog.With("op", op)

	s.mu.Lock()
	s.status = Loading
	s.mu.Unlock()

	products, err := s.fetcher.FetchProducts(ctx)
	if err != nil {
		s.mu.Lock()
		s.status = Failed
		s.products = nil
		s.mu.Unlock()
		s.recompute()

		msg := domain.OpListProducts.FallbackMessage()
		if errors.Is(err, domain.ErrNoProducts) {
			msg = noProductsMessage
		}
		s.report.SetError(msg)
		log.Warn("failed to fetch products", "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.status = Ready
	s.products = products
	s.mu.Unlock()
	s.report.Clear()
	s.recompute()

	log.Info("products loaded", "nProducts", len(products))
	return nil
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Store) Report() *reporter.Slot {
	return &s.report
}

// SetProducts replaces the whole collection.
func (s *Store) SetProducts(products []domain.Product) {
	s.mu.Lock()
	s.products = slices.Clone(products)
	s.status = Ready
	s.mu.Unlock()
	s.recompute()
}

func (s *Store) SetCriteria(c domain.FilterCriteria) {
	s.mu.Lock()
	s.criteria = c
	s.mu.Unlock()
	s.recompute()
}

func (s *Store) SetSearchTerm(term string) {
	s.updateCriteria(func(c *domain.FilterCriteria) { c.SearchTerm = term })
}

// SetCategory narrows by category, an empty category lifts the restriction.
func (s *Store) SetCategory(category string) {
	s.updateCriteria(func(c *domain.FilterCriteria) { c.Category = category })
}

// SetPriceRange takes the raw text of both bounds.
func (s *Store) SetPriceRange(minPrice, maxPrice string) {
	parsed := filter.ParseCriteria("", "", minPrice, maxPrice)
	s.updateCriteria(func(c *domain.FilterCriteria) {
		c.MinPrice = parsed.MinPrice
		c.MaxPrice = parsed.MaxPrice
	})
}

func (s *Store) updateCriteria(fn func(*domain.FilterCriteria)) {
	s.mu.Lock()
	fn(&s.criteria)
	s.mu.Unlock()
	s.recompute()
}

func (s *Store) Criteria() domain.FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

func (s *Store) Visible() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.visible)
}

func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter.Categories(s.products)
}

// Add appends a newly created product.
func (s *Store) Add(p domain.Product) {
	s.mu.Lock()
	s.products = append(s.products, p)
	s.mu.Unlock()
	s.recompute()
}

// Replace swaps the stored product with the same ID.
func (s *Store) Replace(p domain.Product) bool {
	s.mu.Lock()
	i := s.index(p.ID)
	if i >= 0 {
		s.products[i] = p
	}
	s.mu.Unlock()

	if i < 0 {
		return false
	}
	s.recompute()
	return true
}

func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	i := s.index(id)
	if i >= 0 {
		s.products = slices.Delete(s.products, i, i+1)
	}
	s.mu.Unlock()

	if i < 0 {
		return false
	}
	s.recompute()
	return true
}

func (s *Store) index(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.products, func(p domain.Product) bool {
		return p.ID == id
	})
}

// Subscribe registers fn to receive every recomputed visible subset.
// Subsets arrive one at a time in the order they were computed, so the
// last one received is the current one. fn may mutate the store; the
// resulting subset is delivered after fn returns. The returned func
// cancels the subscription.
func (s *Store) Subscribe(fn func(visible []domain.Product)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) recompute() {
	s.mu.Lock()
	s.visible = filter.Visible(s.products, s.criteria)
	s.pending = append(s.pending, slices.Clone(s.visible))
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.drain()
}

// drain delivers pending subsets until none is left. It is entered with
// mu held and returns with mu released.
func (s *Store) drain() {
	for len(s.pending) != 0 {
		visible := s.pending[0]
		s.pending = s.pending[1:]
		subs := make([]func([]domain.Product), 0, len(s.subs))
		for _, id := range sortedKeys(s.subs) {
			subs = append(subs, s.subs[id])
		}
		s.mu.Unlock()

		for _, fn := range subs {
			fn(visible)
		}

		s.mu.Lock()
	}
	s.pending = nil
	s.draining = false
	s.mu.Unlock()
}

func sortedKeys(m map[int]func([]domain.Product)) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
