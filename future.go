package future

// A Future is an asynchronous operation represented as a poll-driven state
// machine.
//
// Poll attempts to resolve the Future to its final value.
// If the value is not available yet, Poll stores the [Waker] obtained from
// c somewhere the eventual source of progress can reach, and returns
// Pending.
// A Future that returns Pending without storing the Waker anywhere stalls
// forever.
//
// Poll is never called concurrently for the same Future.
// Whoever owns a Future, be it a combinator, an [Executor] slot, or a
// caller driving it by hand, is its only poller.
//
// Once Poll has returned Ready, calling Poll again panics.
type Future[T any] interface {
	Poll(c *Context) Poll[T]
}

// PollFunc adapts a plain function to the [Future] interface.
type PollFunc[T any] func(c *Context) Poll[T]

// Poll calls f.
func (f PollFunc[T]) Poll(c *Context) Poll[T] { return f(c) }

// Resolved returns a [Future] that is immediately ready with v.
func Resolved[T any](v T) Future[T] {
	return &resolved[T]{value: v}
}

type resolved[T any] struct {
	value T
	done  bool
}

func (f *resolved[T]) Poll(c *Context) Poll[T] {
	if f.done {
		panic("future: poll called after completion")
	}
	f.done = true
	v := f.value
	var zero T
	f.value = zero
	return Ready(v)
}

// Lazy returns a [Future] that computes its result by calling f once, on
// first poll.
func Lazy[T any](f func() T) Future[T] {
	return &lazy[T]{f: f}
}

type lazy[T any] struct {
	f func() T
}

func (l *lazy[T]) Poll(c *Context) Poll[T] {
	f := l.f
	if f == nil {
		panic("future: poll called after completion")
	}
	l.f = nil
	return Ready(f())
}

// NeverDone returns a [Future] that never completes.
// It stores no [Waker]; nothing ever resumes it.
func NeverDone[T any]() Future[T] {
	return PollFunc[T](func(c *Context) Poll[T] {
		return Pending[T]()
	})
}

type canceler interface {
	Cancel()
}

// Cancel drops v, canceling it if it is cancelable.
//
// If v has a Cancel method, Cancel invokes it; otherwise Cancel does
// nothing.
// Combinators call Cancel on every sub-Future they discard before
// completion, so cancellation propagates to the leaves, where resources
// are released and stored Wakers are de-registered.
//
// Canceling a Future more than once is harmless.
// A canceled Future must not be polled again.
func Cancel(v any) {
	if c, ok := v.(canceler); ok {
		c.Cancel()
	}
}
