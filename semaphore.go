package future

import "sync"

// Semaphore provides a way to bound asynchronous access to a resource.
// The callers can request access with a given weight.
//
// A Semaphore is safe for concurrent use from any goroutine.
type Semaphore struct {
	mu      sync.Mutex
	size    int64
	cur     int64
	waiters []*acquire
}

// NewSemaphore creates a new weighted semaphore with the given maximum
// combined weight.
func NewSemaphore(n int64) *Semaphore {
	return &Semaphore{size: n}
}

// Acquire returns a [Future] that completes once a weight of n has been
// acquired from the semaphore.
//
// Waiters are granted in FIFO order.
// An Acquire with n greater than the semaphore's size never completes.
func (s *Semaphore) Acquire(n int64) Future[struct{}] {
	if n < 0 {
		panic("future(Semaphore): negative weight")
	}
	return &acquire{s: s, n: n}
}

// TryAcquire acquires a weight of n without suspending, and reports
// whether it succeeded.
func (s *Semaphore) TryAcquire(n int64) bool {
	if n < 0 {
		panic("future(Semaphore): negative weight")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.size-s.cur < n {
		return false
	}
	s.cur += n
	return true
}

// Release releases the semaphore with a weight of n, granting as many
// parked waiters as now fit.
func (s *Semaphore) Release(n int64) {
	if n < 0 {
		panic("future(Semaphore): negative weight")
	}
	s.mu.Lock()
	s.cur -= n
	if s.cur < 0 {
		s.mu.Unlock()
		panic("future(Semaphore): released more than held")
	}
	wakers := s.grantWaiters()
	s.mu.Unlock()
	for _, w := range wakers {
		w.Wake()
	}
}

// grantWaiters grants parked waiters in FIFO order while capacity lasts.
// Called with s.mu held; returns the wakers to invoke after unlocking.
func (s *Semaphore) grantWaiters() []Waker {
	var wakers []Waker
	for len(s.waiters) > 0 {
		w := s.waiters[0]
		if s.size-s.cur < w.n {
			break
		}
		s.cur += w.n
		w.granted = true
		w.enlisted = false
		wakers = append(wakers, w.waker)
		s.waiters[0] = nil
		s.waiters = s.waiters[1:]
	}
	return wakers
}

func (s *Semaphore) removeWaiter(w *acquire) {
	for i, v := range s.waiters {
		if v == w {
			copy(s.waiters[i:], s.waiters[i+1:])
			s.waiters[len(s.waiters)-1] = nil
			s.waiters = s.waiters[:len(s.waiters)-1]
			return
		}
	}
}

type acquire struct {
	s        *Semaphore
	n        int64
	waker    Waker
	enlisted bool
	granted  bool
	done     bool
}

func (a *acquire) Poll(c *Context) Poll[struct{}] {
	if a.done {
		panic("future: poll called after completion")
	}
	s := a.s
	s.mu.Lock()
	if a.granted {
		a.done = true
		s.mu.Unlock()
		return Ready(struct{}{})
	}
	if a.n > s.size {
		// Impossible to succeed. Stay pending without joining the
		// queue, so possible waiters are not blocked behind it.
		s.mu.Unlock()
		return Pending[struct{}]()
	}
	if !a.enlisted && len(s.waiters) == 0 && s.size-s.cur >= a.n {
		s.cur += a.n
		a.done = true
		s.mu.Unlock()
		return Ready(struct{}{})
	}
	a.waker = c.Waker()
	if !a.enlisted {
		a.enlisted = true
		s.waiters = append(s.waiters, a)
	}
	s.mu.Unlock()
	return Pending[struct{}]()
}

// Cancel de-registers the waiter. A weight granted but never observed
// through Poll is returned to the semaphore.
func (a *acquire) Cancel() {
	s := a.s
	s.mu.Lock()
	if a.done {
		s.mu.Unlock()
		return
	}
	a.done = true
	if a.enlisted {
		a.enlisted = false
		s.removeWaiter(a)
		s.mu.Unlock()
		return
	}
	var wakers []Waker
	if a.granted {
		s.cur -= a.n
		wakers = s.grantWaiters()
	}
	s.mu.Unlock()
	for _, w := range wakers {
		w.Wake()
	}
}
