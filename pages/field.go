// Package pages gathers the upstream data each page renders.
package pages

// FieldState records what happened to one piece of page data.
type FieldState int

const (
	// NotRequested fields are not part of the route's data.
	NotRequested FieldState = iota
	Loaded
	// Empty fields were skipped because the route needs a session and there was none.
	Empty
	// Failed fields hold their empty default after an upstream error.
	Failed
)

func (s FieldState) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Empty:
		return "empty"
	case Failed:
		return "failed"
	default:
		return "not-requested"
	}
}

// Field is a value together with how it was obtained. Value is the empty
// default (nil, or an empty slice for lists) unless State is Loaded.
type Field[T any] struct {
	State FieldState
	Value T
}

func loaded[T any](v T) Field[T] {
	return Field[T]{State: Loaded, Value: v}
}

// OK reports whether the value came from a successful upstream call.
func (f Field[T]) OK() bool {
	return f.State == Loaded
}

func (f Field[T]) Requested() bool {
	return f.State != NotRequested
}

// Get returns the value and whether it was loaded.
func (f Field[T]) Get() (T, bool) {
	return f.Value, f.OK()
}
