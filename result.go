package future

// A Result is a value-or-error pair.
//
// The library does not interpret operation-level errors; they ride through
// combinators inside Ready results like any other value.
// Result is the conventional carrier: a Future that can fail has type
// Future[Result[T]], and [AndThen] and [MapErr] compose such Futures with
// short-circuiting.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok returns a [Result] carrying a value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Err returns a [Result] carrying an error.
func Err[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Get returns the value and the error of r.
func (r Result[T]) Get() (T, error) {
	return r.Value, r.Err
}
