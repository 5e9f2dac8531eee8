// Package form implements the drafts edited by the catalog forms.
//
// Every form is declared as a static table of [Field] descriptors. Inputs
// arrive as text and are coerced strictly into the typed draft value;
// failed coercions are kept as wrong-type field errors until the input is
// corrected or the draft is reset.
package form

import (
	"fmt"
	"sync"

	"github.com/niksmo/catalog/internal/core/domain"
)

// A Draft is the not yet persisted record a single form is editing.
type Draft[T any] struct {
	mu       sync.Mutex
	fields   []Field[T]
	defaults func() T
	value    T
	invalid  map[string]domain.FieldError
	raw      map[string]string
}

func newDraft[T any](fields []Field[T], defaults func() T) *Draft[T] {
	d := &Draft[T]{fields: fields, defaults: defaults}
	d.reset()
	return d
}

func (d *Draft[T]) Fields() []Field[T] {
	return d.fields
}

// Set coerces text into the named field. On a coercion failure the value
// keeps its previous state and the failure is reported by [Draft.TypeErrors].
func (d *Draft[T]) Set(name, text string) error {
	f, ok := d.field(name)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownField, name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := f.set(&d.value, text); err != nil {
		fe := coercionError(name, err)
		d.invalid[name] = fe
		d.raw[name] = text
		return fmt.Errorf("%s: %s", name, fe.Message)
	}
	delete(d.invalid, name)
	delete(d.raw, name)
	return nil
}

// Get returns the text shown for the named field, the rejected input when
// the last Set failed.
func (d *Draft[T]) Get(name string) string {
	f, ok := d.field(name)
	if !ok {
		return ""
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if raw, ok := d.raw[name]; ok {
		return raw
	}
	return f.get(&d.value)
}

func (d *Draft[T]) Value() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Replace overwrites the whole draft value.
func (d *Draft[T]) Replace(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.value = v
	clear(d.invalid)
	clear(d.raw)
}

// TypeErrors lists pending coercion failures in field order.
func (d *Draft[T]) TypeErrors() []domain.FieldError {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []domain.FieldError
	for _, f := range d.fields {
		if fe, ok := d.invalid[f.Name]; ok {
			errs = append(errs, fe)
		}
	}
	return errs
}

// Reset restores the draft to its defaults.
func (d *Draft[T]) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

func (d *Draft[T]) reset() {
	d.value = d.defaults()
	d.invalid = make(map[string]domain.FieldError)
	d.raw = make(map[string]string)
}

func (d *Draft[T]) field(name string) (Field[T], bool) {
	for _, f := range d.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field[T]{}, false
}
