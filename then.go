package future

// Then returns a [Future] that first drives f to completion, then drives
// the Future constructed by next from f's result.
//
// The second Future is constructed and polled in the same call that
// completes the first; there is no extra suspension point between them.
func Then[A, B any](f Future[A], next func(A) Future[B]) Future[B] {
	if next == nil {
		panic("future: Then(nil): undefined behavior")
	}
	return &then[A, B]{first: f, next: next}
}

// then is a two-phase state machine.
// Phase one owns first; the transition to phase two moves f's result into
// next and replaces first with the Future it constructs.
// No phase holds a reference into another phase's state.
type then[A, B any] struct {
	first  Future[A]
	next   func(A) Future[B]
	second Future[B]
	done   bool
}

func (t *then[A, B]) Poll(c *Context) Poll[B] {
	if t.done {
		panic("future: poll called after completion")
	}
	if t.second == nil {
		v, ok := t.first.Poll(c).Get()
		if !ok {
			return Pending[B]()
		}
		t.first = nil
		next := t.next
		t.next = nil
		t.second = next(v)
	}
	v, ok := t.second.Poll(c).Get()
	if !ok {
		return Pending[B]()
	}
	t.done = true
	t.second = nil
	return Ready(v)
}

func (t *then[A, B]) Cancel() {
	if t.done {
		return
	}
	t.done = true
	if t.second != nil {
		Cancel(t.second)
		t.second = nil
		return
	}
	Cancel(t.first)
	t.first = nil
	t.next = nil
}

// AndThen is [Then] for Futures that can fail.
//
// If f completes with an error, the error is returned as is and next is
// never called.
// Otherwise next receives the value and its Future produces the final
// result.
func AndThen[A, B any](f Future[Result[A]], next func(A) Future[Result[B]]) Future[Result[B]] {
	if next == nil {
		panic("future: AndThen(nil): undefined behavior")
	}
	return Then(f, func(r Result[A]) Future[Result[B]] {
		if r.Err != nil {
			return Resolved(Err[B](r.Err))
		}
		return next(r.Value)
	})
}
