package future

import "slices"

// A Pair carries the two results of a [Join].
type Pair[A, B any] struct {
	First  A
	Second B
}

// Join returns a [Future] that completes with the results of both a and b
// once both have completed, in whichever order they become ready.
//
// A sub-Future that completes early has its result stored and is never
// polled again; only the unfinished one is polled on later calls.
func Join[A, B any](a Future[A], b Future[B]) Future[Pair[A, B]] {
	return &join[A, B]{a: a, b: b}
}

type join[A, B any] struct {
	a    Future[A]
	b    Future[B]
	va   A
	vb   B
	done bool
}

func (j *join[A, B]) Poll(c *Context) Poll[Pair[A, B]] {
	if j.done {
		panic("future: poll called after completion")
	}
	if j.a != nil {
		if v, ok := j.a.Poll(c).Get(); ok {
			j.va = v
			j.a = nil
		}
	}
	if j.b != nil {
		if v, ok := j.b.Poll(c).Get(); ok {
			j.vb = v
			j.b = nil
		}
	}
	if j.a != nil || j.b != nil {
		return Pending[Pair[A, B]]()
	}
	j.done = true
	return Ready(Pair[A, B]{First: j.va, Second: j.vb})
}

func (j *join[A, B]) Cancel() {
	if j.done {
		return
	}
	j.done = true
	if j.a != nil {
		Cancel(j.a)
		j.a = nil
	}
	if j.b != nil {
		Cancel(j.b)
		j.b = nil
	}
}

// JoinAll returns a [Future] that completes with the results of every
// given Future once all of them have completed.
//
// Results are in input order, regardless of completion order.
func JoinAll[T any](futures ...Future[T]) Future[[]T] {
	fs := slices.Clone(futures)
	return &joinAll[T]{
		futures:   fs,
		results:   make([]T, len(fs)),
		remaining: len(fs),
	}
}

type joinAll[T any] struct {
	futures   []Future[T]
	results   []T
	remaining int
	done      bool
}

func (j *joinAll[T]) Poll(c *Context) Poll[[]T] {
	if j.done {
		panic("future: poll called after completion")
	}
	for i, f := range j.futures {
		if f == nil {
			continue
		}
		if v, ok := f.Poll(c).Get(); ok {
			j.results[i] = v
			j.futures[i] = nil
			j.remaining--
		}
	}
	if j.remaining > 0 {
		return Pending[[]T]()
	}
	j.done = true
	results := j.results
	j.results = nil
	return Ready(results)
}

func (j *joinAll[T]) Cancel() {
	if j.done {
		return
	}
	j.done = true
	for i, f := range j.futures {
		if f != nil {
			Cancel(f)
			j.futures[i] = nil
		}
	}
}
