package future

import "sync"

// A Notify resumes parked tasks when an external event occurs.
//
// It is the bridge between event sources (timers, I/O readiness, code
// running on other goroutines) and the wake contract: the source calls
// Notify, and every task parked on a Notified Future gets re-polled.
//
// A Notify is safe for concurrent use and carries no value; pair it with
// a [State] or a channel when the event has a payload.
type Notify struct {
	mu      sync.Mutex
	waiters []*notified
}

// Notify wakes every task currently parked on a Notified Future.
//
// Notifications are not queued: a Notified Future that has not been
// polled yet is not parked, and a Notify call with no parked waiters does
// nothing.
func (n *Notify) Notify() {
	n.mu.Lock()
	waiters := n.waiters
	n.waiters = nil
	wakers := make([]Waker, 0, len(waiters))
	for _, f := range waiters {
		f.fired = true
		f.enlisted = false
		wakers = append(wakers, f.waker)
	}
	n.mu.Unlock()
	for _, w := range wakers {
		w.Wake()
	}
}

// Notified returns a [Future] that completes on the first Notify call
// after the Future has been polled.
func (n *Notify) Notified() Future[struct{}] {
	return &notified{n: n}
}

type notified struct {
	n        *Notify
	waker    Waker
	fired    bool
	enlisted bool
	done     bool
}

func (f *notified) Poll(c *Context) Poll[struct{}] {
	if f.done {
		panic("future: poll called after completion")
	}
	n := f.n
	n.mu.Lock()
	if f.fired {
		f.done = true
		n.mu.Unlock()
		return Ready(struct{}{})
	}
	f.waker = c.Waker()
	if !f.enlisted {
		f.enlisted = true
		n.waiters = append(n.waiters, f)
	}
	n.mu.Unlock()
	return Pending[struct{}]()
}

func (f *notified) Cancel() {
	n := f.n
	n.mu.Lock()
	if f.enlisted {
		f.enlisted = false
		for i, v := range n.waiters {
			if v == f {
				copy(n.waiters[i:], n.waiters[i+1:])
				n.waiters[len(n.waiters)-1] = nil
				n.waiters = n.waiters[:len(n.waiters)-1]
				break
			}
		}
	}
	f.done = true
	n.mu.Unlock()
}
