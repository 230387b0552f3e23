package future

// Race returns a [Future] that completes with the result of whichever of
// a and b completes first. The loser is canceled without being polled
// again.
//
// Each poll checks a before b, so if both become ready in the same poll
// call, a wins. This tie-break is fixed and may be relied upon.
//
// Both sub-Futures receive the same [Context], so whichever external event
// fires first wakes the race directly.
func Race[T any](a, b Future[T]) Future[T] {
	return &race[T]{left: a, right: b}
}

type race[T any] struct {
	left, right Future[T]
}

func (r *race[T]) Poll(c *Context) Poll[T] {
	if r.left == nil {
		panic("future: poll called after completion")
	}
	if p := r.left.Poll(c); p.IsReady() {
		loser := r.right
		r.left, r.right = nil, nil
		Cancel(loser)
		return p
	}
	if p := r.right.Poll(c); p.IsReady() {
		loser := r.left
		r.left, r.right = nil, nil
		Cancel(loser)
		return p
	}
	return Pending[T]()
}

func (r *race[T]) Cancel() {
	if r.left != nil {
		Cancel(r.left)
		Cancel(r.right)
		r.left, r.right = nil, nil
	}
}
