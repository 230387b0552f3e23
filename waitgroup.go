package future

import "sync"

// A WaitGroup counts outstanding work.
//
// Calling Add or Done updates the counter and, when the counter becomes
// zero, resumes every task parked on a Wait Future.
//
// A WaitGroup is safe for concurrent use from any goroutine.
type WaitGroup struct {
	mu      sync.Mutex
	n       int
	waiters []Waker
}

// Add adds delta, which may be negative, to the [WaitGroup] counter.
// If the counter becomes zero, Add resumes every parked waiter.
// If the counter goes negative, Add panics.
func (wg *WaitGroup) Add(delta int) {
	wg.mu.Lock()
	wg.n += delta
	if wg.n < 0 {
		wg.mu.Unlock()
		panic("future(WaitGroup): negative counter")
	}
	var wakers []Waker
	if wg.n == 0 && delta != 0 {
		wakers = wg.waiters
		wg.waiters = nil
	}
	wg.mu.Unlock()
	for _, w := range wakers {
		w.Wake()
	}
}

// Done decrements the [WaitGroup] counter by one.
func (wg *WaitGroup) Done() {
	wg.Add(-1)
}

// Wait returns a [Future] that completes once the counter is zero.
func (wg *WaitGroup) Wait() Future[struct{}] {
	return &wgWait{wg: wg}
}

type wgWait struct {
	wg   *WaitGroup
	done bool
}

func (f *wgWait) Poll(c *Context) Poll[struct{}] {
	if f.done {
		panic("future: poll called after completion")
	}
	wg := f.wg
	wg.mu.Lock()
	if wg.n == 0 {
		f.done = true
		wg.mu.Unlock()
		return Ready(struct{}{})
	}
	wg.waiters = append(wg.waiters, c.Waker())
	wg.mu.Unlock()
	return Pending[struct{}]()
}

func (f *wgWait) Cancel() {
	// A stale Waker left in the list wakes a settled task, which is
	// a no-op.
	f.done = true
}
