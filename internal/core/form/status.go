package form

import (
	"strings"
	"sync"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/reporter"
)

type State int

const (
	Idle State = iota
	Validating
	Sending
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Validating:
		return "validating"
	case Sending:
		return "sending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "idle"
}

// A Status tracks the submission state machine of one form together with
// its report slot. At most one submission runs at a time.
type Status struct {
	mu     sync.Mutex
	state  State
	busy   bool
	report reporter.Slot
}

// Begin starts a submission. It returns false when one is already in flight.
func (s *Status) Begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	s.state = Validating
	return true
}

func (s *Status) Advance(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// Finish ends the running submission in a terminal state.
func (s *Status) Finish(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.busy = false
}

// Touch returns a finished form to Idle on the next user action.
func (s *Status) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.busy {
		s.state = Idle
	}
}

func (s *Status) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Status) Report() *reporter.Slot {
	return &s.report
}

// A Target is a form that addresses an existing record by identifier.
type Target struct {
	Status
	idMu sync.Mutex
	id   string
}

// SetID stores id without surrounding whitespace.
func (t *Target) SetID(id string) {
	t.Touch()
	t.idMu.Lock()
	defer t.idMu.Unlock()
	t.id = strings.TrimSpace(id)
}

func (t *Target) ID() string {
	t.idMu.Lock()
	defer t.idMu.Unlock()
	return t.id
}

// A Form pairs a draft with the identifier it targets, the identifier is
// unused by create forms.
type Form[T any] struct {
	Target
	Draft *Draft[T]
}

// Set changes one input of the draft.
func (f *Form[T]) Set(name, text string) error {
	f.Touch()
	return f.Draft.Set(name, text)
}

func NewProductForm() *Form[domain.Product] {
	return &Form[domain.Product]{Draft: NewProductDraft()}
}

func NewReviewForm() *Form[domain.Review] {
	return &Form[domain.Review]{Draft: NewReviewDraft()}
}

func NewReviewUpdateForm() *Form[domain.ReviewUpdate] {
	return &Form[domain.ReviewUpdate]{Draft: NewReviewUpdateDraft()}
}

func NewTarget() *Target {
	return &Target{}
}
