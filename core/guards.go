package core

import "math"

// Number is any numeric type the guards accept.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Range bounds an integer guard.  Nil bounds are open.
type Range struct {
	Min *int
	Max *int
}

// AtLeast returns a Range with only a lower bound.
func AtLeast(min int) Range {
	return Range{Min: &min}
}

// Between returns a closed Range.
func Between(min, max int) Range {
	return Range{Min: &min, Max: &max}
}

// Ptr returns a pointer to v.  Handy for building nullable fields.
func Ptr[T any](v T) *T {
	return &v
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// OptionalFinite returns the value behind v when it is present and finite.
// Absent, NaN and infinite values all come back as (0, false).
func OptionalFinite[T Number](v *T) (T, bool) {
	if v == nil {
		var zero T
		return zero, false
	}
	if !IsFinite(float64(*v)) {
		var zero T
		return zero, false
	}
	return *v, true
}

// EnsureFinite returns the value behind v or fails with message.
func EnsureFinite[T Number](v *T, message string) (T, error) {
	value, ok := OptionalFinite(v)
	if !ok {
		return value, NewRamError(message)
	}
	return value, nil
}

// EnsurePositive requires a finite value > 0.
func EnsurePositive[T Number](v *T, message string) (T, error) {
	value, err := EnsureFinite(v, message)
	if err != nil {
		return value, err
	}
	if value <= 0 {
		return value, NewRamError(message)
	}
	return value, nil
}

// EnsureNonNegative requires a finite value >= 0.
func EnsureNonNegative[T Number](v *T, message string) (T, error) {
	value, err := EnsureFinite(v, message)
	if err != nil {
		return value, err
	}
	if value < 0 {
		return value, NewRamError(message)
	}
	return value, nil
}

// EnsureIntegerInRange requires a finite integral value inside bounds.
func EnsureIntegerInRange[T Number](v *T, message string, bounds Range) (int, error) {
	value, err := EnsureFinite(v, message)
	if err != nil {
		return 0, err
	}
	f := float64(value)
	if f != math.Trunc(f) {
		return 0, NewRamError(message)
	}
	if bounds.Min != nil && f < float64(*bounds.Min) {
		return 0, NewRamError(message)
	}
	if bounds.Max != nil && f > float64(*bounds.Max) {
		return 0, NewRamError(message)
	}
	return int(f), nil
}

// Assert fails with message when cond is false.
func Assert(cond bool, message string) error {
	if !cond {
		return NewRamError(message)
	}
	return nil
}

// DedupeStrings drops empty and repeated messages, keeping first-seen order.
func DedupeStrings(messages []string) []string {
	seen := make(map[string]bool, len(messages))
	out := make([]string, 0, len(messages))
	for _, m := range messages {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
