package future

import "sync"

// A Handle joins a spawned task.
//
// It implements [Future], completing with the task's result, so spawned
// work can feed back into further composition; Wait offers the blocking
// bridge for synchronous callers.
//
// Dropping the Handle without waiting is fine: the task keeps running.
// Cancel is the way to stop it.
type Handle[T any] struct {
	task *task

	mu       sync.Mutex
	done     chan struct{}
	settled  bool
	consumed bool
	value    T
	err      error
	pv       *caughtPanic
	waker    Waker
}

func newHandle[T any]() *Handle[T] {
	return &Handle[T]{done: make(chan struct{})}
}

func (h *Handle[T]) complete(v T) {
	h.settle(func() { h.value = v })
}

func (h *Handle[T]) completeErr(err error) {
	h.settle(func() { h.err = err })
}

func (h *Handle[T]) panicked(pv *caughtPanic) {
	h.settle(func() { h.pv = pv })
}

func (h *Handle[T]) settle(store func()) {
	h.mu.Lock()
	if h.settled {
		h.mu.Unlock()
		return
	}
	store()
	h.settled = true
	w := h.waker
	h.waker = nil
	close(h.done)
	h.mu.Unlock()
	if w != nil {
		w.Wake()
	}
}

// Poll implements [Future].
//
// If the task panicked, Poll rethrows the panic.
func (h *Handle[T]) Poll(c *Context) Poll[Result[T]] {
	h.mu.Lock()
	if h.consumed {
		h.mu.Unlock()
		panic("future: poll called after completion")
	}
	if !h.settled {
		h.waker = c.Waker()
		h.mu.Unlock()
		return Pending[Result[T]]()
	}
	h.consumed = true
	h.mu.Unlock()
	if h.pv != nil {
		panic(h.pv)
	}
	return Ready(Result[T]{Value: h.value, Err: h.err})
}

// Wait blocks until the task settles and returns its result.
//
// It reports [ErrCanceled] if the task was canceled or its executor shut
// down, and rethrows the panic if the task panicked.
// Unlike Poll, Wait may be called any number of times, from any
// goroutine.
func (h *Handle[T]) Wait() (T, error) {
	<-h.done
	if h.pv != nil {
		panic(h.pv)
	}
	return h.value, h.err
}

// Cancel drops the task's Future.
//
// The task is guaranteed not to be mid-poll when the drop happens; if a
// worker is polling it right now, the drop runs as soon as that poll
// returns. Wait then reports [ErrCanceled].
//
// Canceling a settled task is a no-op.
func (h *Handle[T]) Cancel() {
	h.task.executor.cancelTask(h.task)
}
