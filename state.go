package future

import "sync"

// A State is a value cell whose updates can be awaited.
//
// Set updates the value and wakes every task parked on a Changed Future.
// A State is safe for concurrent use from any goroutine.
type State[T any] struct {
	mu      sync.Mutex
	value   T
	version uint64
	waiters []Waker
}

// NewState creates a new [State] with its initial value set to v.
func NewState[T any](v T) *State[T] {
	return &State[T]{value: v}
}

// Get retrieves the value of s.
func (s *State[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set updates the value of s and resumes any task awaiting a change.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	s.version++
	wakers := s.waiters
	s.waiters = nil
	s.mu.Unlock()
	for _, w := range wakers {
		w.Wake()
	}
}

// Update sets the value of s to f(s.Get()) atomically.
func (s *State[T]) Update(f func(v T) T) {
	s.mu.Lock()
	s.value = f(s.value)
	s.version++
	wakers := s.waiters
	s.waiters = nil
	s.mu.Unlock()
	for _, w := range wakers {
		w.Wake()
	}
}

// Changed returns a [Future] that completes with the value of s after the
// first Set or Update that happens after this call.
//
// Sets in quick succession coalesce: the Future completes with whatever
// the value is when its task gets around to polling, not with every
// intermediate value.
func (s *State[T]) Changed() Future[T] {
	s.mu.Lock()
	seen := s.version
	s.mu.Unlock()
	return &changed[T]{s: s, seen: seen}
}

type changed[T any] struct {
	s    *State[T]
	seen uint64
	done bool
}

func (f *changed[T]) Poll(c *Context) Poll[T] {
	if f.done {
		panic("future: poll called after completion")
	}
	s := f.s
	s.mu.Lock()
	if s.version != f.seen {
		f.done = true
		v := s.value
		s.mu.Unlock()
		return Ready(v)
	}
	s.waiters = append(s.waiters, c.Waker())
	s.mu.Unlock()
	return Pending[T]()
}

func (f *changed[T]) Cancel() {
	// The parked Waker, if any, stays in the list; waking a settled task
	// is a no-op.
	f.done = true
}
