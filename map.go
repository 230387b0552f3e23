package future

// Map returns a [Future] that applies fn to the result of f.
//
// fn runs in the poll call that completes f.
func Map[A, B any](f Future[A], fn func(A) B) Future[B] {
	if fn == nil {
		panic("future: Map(nil): undefined behavior")
	}
	return &mapped[A, B]{inner: f, fn: fn}
}

type mapped[A, B any] struct {
	inner Future[A]
	fn    func(A) B
}

func (m *mapped[A, B]) Poll(c *Context) Poll[B] {
	if m.inner == nil {
		panic("future: poll called after completion")
	}
	v, ok := m.inner.Poll(c).Get()
	if !ok {
		return Pending[B]()
	}
	fn := m.fn
	m.inner = nil
	m.fn = nil
	return Ready(fn(v))
}

func (m *mapped[A, B]) Cancel() {
	if m.inner != nil {
		Cancel(m.inner)
		m.inner = nil
		m.fn = nil
	}
}

// MapErr returns a [Future] that applies fn to the error of f, if any.
// Successful results pass through untouched.
func MapErr[T any](f Future[Result[T]], fn func(error) error) Future[Result[T]] {
	if fn == nil {
		panic("future: MapErr(nil): undefined behavior")
	}
	return Map(f, func(r Result[T]) Result[T] {
		if r.Err != nil {
			r.Err = fn(r.Err)
		}
		return r
	})
}
