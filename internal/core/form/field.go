package form

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
)

type Kind int

const (
	Text Kind = iota
	TextArea
	Number
	Integer
	List
	Timestamp
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case TextArea:
		return "textarea"
	case Number:
		return "number"
	case Integer:
		return "integer"
	case List:
		return "list"
	case Timestamp:
		return "timestamp"
	}
	return "unknown"
}

var errEmpty = errors.New("empty input")

// A Field describes one input of a form and how its text maps onto the
// draft value T.
type Field[T any] struct {
	Name  string
	Label string
	Kind  Kind
	get   func(*T) string
	set   func(*T, string) error
}

func textField[T any](
	name, label string, kind Kind, ptr func(*T) *string,
) Field[T] {
	return Field[T]{
		Name: name, Label: label, Kind: kind,
		get: func(v *T) string { return *ptr(v) },
		set: func(v *T, s string) error {
			*ptr(v) = s
			return nil
		},
	}
}

func optionalTextField[T any](
	name, label string, kind Kind, ptr func(*T) **string,
) Field[T] {
	return Field[T]{
		Name: name, Label: label, Kind: kind,
		get: func(v *T) string {
			if p := *ptr(v); p != nil {
				return *p
			}
			return ""
		},
		set: func(v *T, s string) error {
			if strings.TrimSpace(s) == "" {
				*ptr(v) = nil
				return nil
			}
			*ptr(v) = &s
			return nil
		},
	}
}

func numberField[T any](
	name, label string, ptr func(*T) *float64,
) Field[T] {
	return Field[T]{
		Name: name, Label: label, Kind: Number,
		get: func(v *T) string {
			return strconv.FormatFloat(*ptr(v), 'f', -1, 64)
		},
		set: func(v *T, s string) error {
			if strings.TrimSpace(s) == "" {
				return errEmpty
			}
			f, err := domain.ParseNumber(s)
			if err != nil {
				return err
			}
			*ptr(v) = f
			return nil
		},
	}
}

func integerField[T any](
	name, label string, ptr func(*T) *int,
) Field[T] {
	return Field[T]{
		Name: name, Label: label, Kind: Integer,
		get: func(v *T) string { return strconv.Itoa(*ptr(v)) },
		set: func(v *T, s string) error {
			if strings.TrimSpace(s) == "" {
				return errEmpty
			}
			n, err := domain.ParseInteger(s)
			if err != nil {
				return err
			}
			*ptr(v) = n
			return nil
		},
	}
}

func optionalIntegerField[T any](
	name, label string, ptr func(*T) **int,
) Field[T] {
	return Field[T]{
		Name: name, Label: label, Kind: Integer,
		get: func(v *T) string {
			if p := *ptr(v); p != nil {
				return strconv.Itoa(*p)
			}
			return ""
		},
		set: func(v *T, s string) error {
			if strings.TrimSpace(s) == "" {
				*ptr(v) = nil
				return nil
			}
			n, err := domain.ParseInteger(s)
			if err != nil {
				return err
			}
			*ptr(v) = &n
			return nil
		},
	}
}

// listField reads comma-separated input, blank entries are dropped.
func listField[T any](
	name, label string, ptr func(*T) *[]string,
) Field[T] {
	return Field[T]{
		Name: name, Label: label, Kind: List,
		get: func(v *T) string { return strings.Join(*ptr(v), ", ") },
		set: func(v *T, s string) error {
			items := []string{}
			for _, item := range strings.Split(s, ",") {
				if item = strings.TrimSpace(item); item != "" {
					items = append(items, item)
				}
			}
			*ptr(v) = items
			return nil
		},
	}
}

func timestampField[T any](
	name, label string, ptr func(*T) *time.Time,
) Field[T] {
	return Field[T]{
		Name: name, Label: label, Kind: Timestamp,
		get: func(v *T) string {
			if t := *ptr(v); !t.IsZero() {
				return t.Format(time.RFC3339)
			}
			return ""
		},
		set: func(v *T, s string) error {
			s = strings.TrimSpace(s)
			if s == "" {
				*ptr(v) = time.Time{}
				return nil
			}
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return err
			}
			*ptr(v) = t
			return nil
		},
	}
}

func coercionError(field string, err error) domain.FieldError {
	fe := domain.FieldError{Field: field, Reason: domain.ReasonWrongType}
	switch {
	case errors.Is(err, errEmpty):
		fe.Reason = domain.ReasonRequired
		fe.Message = "is required"
	case errors.Is(err, domain.ErrNotNumeric):
		fe.Message = "must be a number"
	case errors.Is(err, domain.ErrNotInteger):
		fe.Message = "must be an integer"
	default:
		fe.Message = "must be an RFC 3339 timestamp"
	}
	return fe
}
