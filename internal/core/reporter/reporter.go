// Package reporter holds the last user-facing outcome of a form.
package reporter

import (
	"errors"
	"sync"

	"github.com/niksmo/catalog/internal/core/domain"
)

// A Slot holds either the last error or the last success message, never
// both. The zero value is empty and ready to use.
type Slot struct {
	mu      sync.RWMutex
	err     string
	success string
}

func (s *Slot) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = msg
	s.success = ""
}

func (s *Slot) SetSuccess(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.success = msg
	s.err = ""
}

// Fail stores the normalized message of err and returns it.
func (s *Slot) Fail(err error, op domain.Operation) string {
	msg := Message(err, op)
	s.SetError(msg)
	return msg
}

func (s *Slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
	s.success = ""
}

func (s *Slot) ErrorMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Slot) SuccessMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.success
}

// Message converts any failure cause into the single string shown to the
// user.
func Message(err error, op domain.Operation) string {
	var (
		guardErr      *domain.GuardError
		validationErr *domain.ValidationError
		transportErr  *domain.TransportError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &guardErr):
		return guardErr.Message
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.As(err, &transportErr):
		if transportErr.Message != "" {
			return transportErr.Message
		}
		return op.FallbackMessage()
	}
	return domain.UnexpectedMessage
}
