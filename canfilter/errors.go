package canfilter

import "errors"

// Sentinel errors for the three documented failure modes. Use errors.Is
// against these rather than comparing Code() integers when working in Go;
// Code() exists for the CLI/API/TUI boundary, which must surface the
// documented -1/-2 contract verbatim.
var (
	// ErrCapacityExhausted is returned when an insert would push
	// ENDofTable/4 past the 512-word hardware cap.
	ErrCapacityExhausted = errors.New("canfilter: capacity exhausted")

	// ErrTableEmpty is returned when a delete/update targets an empty
	// section (count for that kind is zero).
	ErrTableEmpty = errors.New("canfilter: table empty")

	// ErrNotFound is returned when a delete/update finds no matching
	// entry in a non-empty section.
	ErrNotFound = errors.New("canfilter: entry not found")
)

// Code maps an engine error to the documented public return code:
// nil -> 0, ErrCapacityExhausted/ErrTableEmpty -> -1, ErrNotFound -> -2.
// Any other error (there should be none on the mutation path) maps to -1.
func Code(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNotFound):
		return -2
	default:
		return -1
	}
}
