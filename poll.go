package future

// A Poll is the outcome of polling a [Future] once.
// It is either Ready, carrying the result, or Pending, carrying nothing.
//
// Pending does not schedule anything by itself.
// Arranging to be woken is the responsibility of whoever returned it, via
// the [Waker] of the current poll call.
type Poll[T any] struct {
	value T
	ready bool
}

// Ready returns a [Poll] that carries a result.
func Ready[T any](v T) Poll[T] {
	return Poll[T]{value: v, ready: true}
}

// Pending returns a [Poll] that carries nothing.
func Pending[T any]() Poll[T] {
	return Poll[T]{}
}

// IsReady reports whether p carries a result.
func (p Poll[T]) IsReady() bool {
	return p.ready
}

// IsPending reports whether p carries nothing.
func (p Poll[T]) IsPending() bool {
	return !p.ready
}

// Get returns the result of p, if any.
func (p Poll[T]) Get() (T, bool) {
	return p.value, p.ready
}

// Value returns the result of p.
// It panics if p is Pending.
func (p Poll[T]) Value() T {
	if !p.ready {
		panic("future: Value called on a pending Poll")
	}
	return p.value
}
