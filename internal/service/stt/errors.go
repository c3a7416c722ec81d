package stt

import (
	"errors"
	"fmt"
	"math"

	"stt-normalization-service/internal/models"
)

// ErrUnknownProvider is returned when no adapter is registered under the
// requested provider id.
var ErrUnknownProvider = errors.New("unknown STT provider")

// MalformedWordError reports a token missing valid numeric timing.
// Every downstream offset computation depends on valid word times, so a
// malformed word fails the whole document rather than being coerced.
type MalformedWordError struct {
	Provider string
	Index    int
	Reason   string
}

func (e *MalformedWordError) Error() string {
	return fmt.Sprintf("%s: malformed word at index %d: %s", e.Provider, e.Index, e.Reason)
}

// ValidateWords checks the adapter-boundary invariants on a normalized
// word list: finite numeric times with start <= end, non-decreasing
// start times across the list.
func ValidateWords(provider string, words []models.Word) error {
	prev := math.Inf(-1)
	for i, w := range words {
		if !isFinite(w.Start) || !isFinite(w.End) {
			return &MalformedWordError{Provider: provider, Index: i, Reason: "non-numeric start/end time"}
		}
		if w.Start > w.End {
			return &MalformedWordError{Provider: provider, Index: i,
				Reason: fmt.Sprintf("start %v after end %v", w.Start, w.End)}
		}
		if w.Start < prev {
			return &MalformedWordError{Provider: provider, Index: i,
				Reason: fmt.Sprintf("start %v before preceding word at %v", w.Start, prev)}
		}
		prev = w.Start
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
