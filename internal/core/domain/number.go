package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseNumber is a strict decimal parse of text input. Empty input, NaN and
// infinities are rejected instead of being coerced to a value.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q: %w", s, ErrNotNumeric)
	}
	return f, nil
}

func ParseInteger(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrNotInteger)
	}
	return n, nil
}
