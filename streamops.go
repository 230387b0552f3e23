package future

// StreamMap returns a [Stream] that applies fn to every item of s.
func StreamMap[A, B any](s Stream[A], fn func(A) B) Stream[B] {
	if fn == nil {
		panic("future: StreamMap(nil): undefined behavior")
	}
	return &streamMap[A, B]{inner: s, fn: fn}
}

type streamMap[A, B any] struct {
	inner Stream[A]
	fn    func(A) B
}

func (s *streamMap[A, B]) PollNext(c *Context) Poll[Option[B]] {
	if s.inner == nil {
		panic("future: poll called after stream exhaustion")
	}
	p := s.inner.PollNext(c)
	if p.IsPending() {
		return Pending[Option[B]]()
	}
	if v, ok := p.Value().Get(); ok {
		return Ready(Some(s.fn(v)))
	}
	s.inner = nil
	s.fn = nil
	return Ready(None[B]())
}

func (s *streamMap[A, B]) Cancel() {
	if s.inner != nil {
		Cancel(s.inner)
		s.inner = nil
		s.fn = nil
	}
}

// StreamFilter returns a [Stream] that yields only the items of s for
// which keep reports true.
//
// Items that are dropped are consumed in the same poll call; the filter
// keeps polling s until it finds a match, runs out, or s returns Pending.
func StreamFilter[T any](s Stream[T], keep func(T) bool) Stream[T] {
	if keep == nil {
		panic("future: StreamFilter(nil): undefined behavior")
	}
	return &streamFilter[T]{inner: s, keep: keep}
}

type streamFilter[T any] struct {
	inner Stream[T]
	keep  func(T) bool
}

func (s *streamFilter[T]) PollNext(c *Context) Poll[Option[T]] {
	if s.inner == nil {
		panic("future: poll called after stream exhaustion")
	}
	for {
		p := s.inner.PollNext(c)
		if p.IsPending() {
			return Pending[Option[T]]()
		}
		v, ok := p.Value().Get()
		if !ok {
			s.inner = nil
			s.keep = nil
			return Ready(None[T]())
		}
		if s.keep(v) {
			return Ready(Some(v))
		}
	}
}

func (s *streamFilter[T]) Cancel() {
	if s.inner != nil {
		Cancel(s.inner)
		s.inner = nil
		s.keep = nil
	}
}

// StreamTake returns a [Stream] that yields at most n items of s, then
// ends, canceling s if it has not ended on its own.
func StreamTake[T any](s Stream[T], n int) Stream[T] {
	return &streamTake[T]{inner: s, n: n}
}

type streamTake[T any] struct {
	inner Stream[T]
	n     int
	done  bool
}

func (s *streamTake[T]) PollNext(c *Context) Poll[Option[T]] {
	if s.done {
		panic("future: poll called after stream exhaustion")
	}
	if s.n <= 0 {
		s.done = true
		Cancel(s.inner)
		s.inner = nil
		return Ready(None[T]())
	}
	p := s.inner.PollNext(c)
	if p.IsPending() {
		return Pending[Option[T]]()
	}
	if _, ok := p.Value().Get(); !ok {
		s.done = true
		s.inner = nil
		return p
	}
	s.n--
	return p
}

func (s *streamTake[T]) Cancel() {
	if !s.done {
		s.done = true
		Cancel(s.inner)
		s.inner = nil
	}
}

// StreamChain returns a [Stream] that yields every item of a, then every
// item of b.
func StreamChain[T any](a, b Stream[T]) Stream[T] {
	return &streamChain[T]{first: a, second: b}
}

type streamChain[T any] struct {
	first  Stream[T]
	second Stream[T]
	done   bool
}

func (s *streamChain[T]) PollNext(c *Context) Poll[Option[T]] {
	if s.done {
		panic("future: poll called after stream exhaustion")
	}
	if s.first != nil {
		p := s.first.PollNext(c)
		if p.IsPending() {
			return Pending[Option[T]]()
		}
		if _, ok := p.Value().Get(); ok {
			return p
		}
		s.first = nil
	}
	p := s.second.PollNext(c)
	if p.IsPending() {
		return Pending[Option[T]]()
	}
	if _, ok := p.Value().Get(); !ok {
		s.done = true
		s.second = nil
	}
	return p
}

func (s *streamChain[T]) Cancel() {
	if s.done {
		return
	}
	s.done = true
	if s.first != nil {
		Cancel(s.first)
		s.first = nil
	}
	Cancel(s.second)
	s.second = nil
}

// Collect returns a [Future] that drains s and completes with every item
// it yielded, in order.
//
// Collecting an infinite Stream never completes.
func Collect[T any](s Stream[T]) Future[[]T] {
	return &collect[T]{inner: s}
}

type collect[T any] struct {
	inner Stream[T]
	items []T
}

func (f *collect[T]) Poll(c *Context) Poll[[]T] {
	if f.inner == nil {
		panic("future: poll called after completion")
	}
	for {
		p := f.inner.PollNext(c)
		if p.IsPending() {
			return Pending[[]T]()
		}
		v, ok := p.Value().Get()
		if !ok {
			f.inner = nil
			items := f.items
			f.items = nil
			return Ready(items)
		}
		f.items = append(f.items, v)
	}
}

func (f *collect[T]) Cancel() {
	if f.inner != nil {
		Cancel(f.inner)
		f.inner = nil
		f.items = nil
	}
}

// NextItem returns a [Future] that completes with the next item of s, or
// with None if s ends first.
//
// The Future borrows s; canceling it leaves s untouched, and once it
// completes with Some, s may be polled again (directly or through another
// NextItem).
func NextItem[T any](s Stream[T]) Future[Option[T]] {
	return &nextItem[T]{inner: s}
}

type nextItem[T any] struct {
	inner Stream[T]
}

func (f *nextItem[T]) Poll(c *Context) Poll[Option[T]] {
	if f.inner == nil {
		panic("future: poll called after completion")
	}
	p := f.inner.PollNext(c)
	if p.IsPending() {
		return Pending[Option[T]]()
	}
	f.inner = nil
	return p
}

func (f *nextItem[T]) Cancel() {
	f.inner = nil
}
