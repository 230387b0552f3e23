package future

import "sync"

// Share wraps a Future so that many consumers can await one underlying
// computation.
//
// Each call to Handle returns an independent [Future]. Whichever handle
// polls first drives the inner Future; the others park and are woken
// together when it completes. The result is cached, so handles polled or
// created late complete immediately with the same value.
//
// The inner Future is polled by at most one handle at a time, so the
// single-poller rule holds for it even though handles may be polled from
// different tasks on different goroutines.
func Share[T any](f Future[T]) *Shared[T] {
	return &Shared[T]{inner: f}
}

// A Shared is the hub created by [Share].
type Shared[T any] struct {
	mu      sync.Mutex
	inner   Future[T]
	value   T
	done    bool
	polling bool
	waiters []Waker
}

// Handle returns a [Future] that completes with the shared result.
func (s *Shared[T]) Handle() Future[T] {
	return &sharedHandle[T]{shared: s}
}

type sharedHandle[T any] struct {
	shared *Shared[T]
	done   bool
}

func (h *sharedHandle[T]) Poll(c *Context) Poll[T] {
	if h.done {
		panic("future: poll called after completion")
	}
	s := h.shared

	s.mu.Lock()
	if s.done {
		h.done = true
		v := s.value
		s.mu.Unlock()
		return Ready(v)
	}
	// Park before polling, so a completion that races with this poll
	// cannot slip between "saw pending" and "registered".
	s.waiters = append(s.waiters, c.Waker())
	if s.polling {
		s.mu.Unlock()
		return Pending[T]()
	}
	s.polling = true
	inner := s.inner
	s.mu.Unlock()

	p := inner.Poll(NewContext(sharedWaker[T]{s}))

	s.mu.Lock()
	s.polling = false
	v, ok := p.Get()
	if !ok {
		s.mu.Unlock()
		return Pending[T]()
	}
	s.done = true
	s.value = v
	s.inner = nil
	waiters := s.waiters
	s.waiters = nil
	h.done = true
	s.mu.Unlock()
	for _, w := range waiters {
		w.Wake()
	}
	return Ready(v)
}

// Cancel drops this handle's interest in the shared result.
// Other handles, and the inner Future, are unaffected.
func (h *sharedHandle[T]) Cancel() {
	h.done = true
}

// sharedWaker is the Waker the inner Future stores.
// It fans a single wake-up out to every parked handle; whichever polls
// first picks up the driving role again.
type sharedWaker[T any] struct {
	s *Shared[T]
}

func (w sharedWaker[T]) Wake() {
	s := w.s
	s.mu.Lock()
	waiters := s.waiters
	s.waiters = nil
	s.mu.Unlock()
	for _, wk := range waiters {
		wk.Wake()
	}
}
