package future

// An Option is an item-or-nothing value yielded by a [Stream].
// None marks the end of the sequence.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns an [Option] carrying an item.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an [Option] carrying nothing.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether o carries an item.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// Get returns the item of o, if any.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// A Stream is a [Future] generalized to a sequence: it yields zero or more
// items and then reports exhaustion.
//
// PollNext follows the same contract as [Future.Poll]: Pending means the
// Waker of c has been stored and will be invoked when the next item might
// be available; Ready(Some) yields an item; Ready(None) is the one-time
// terminal signal.
//
// Polling a Stream after it has yielded Ready(None) panics, just like
// polling a completed Future.
// Finite Streams end with None; infinite Streams never return it; neither
// is restartable.
type Stream[T any] interface {
	PollNext(c *Context) Poll[Option[T]]
}

// StreamOf returns a [Stream] that yields the given items in order, always
// ready.
func StreamOf[T any](items ...T) Stream[T] {
	return &sliceStream[T]{items: items}
}

// StreamEmpty returns a [Stream] that is exhausted from the start.
func StreamEmpty[T any]() Stream[T] {
	return &sliceStream[T]{}
}

type sliceStream[T any] struct {
	items []T
	done  bool
}

func (s *sliceStream[T]) PollNext(c *Context) Poll[Option[T]] {
	if s.done {
		panic("future: poll called after stream exhaustion")
	}
	if len(s.items) == 0 {
		s.done = true
		return Ready(None[T]())
	}
	v := s.items[0]
	s.items = s.items[1:]
	return Ready(Some(v))
}
