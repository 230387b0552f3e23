package future

const (
	flagQueued = 1 << iota
	flagRunning
	flagWoken
	flagCanceled
	flagEnded
)

// A task is an [Executor] slot owning one top-level [Future].
//
// The flag bits are protected by the executor mutex and encode the whole
// scheduling protocol:
//
//   - flagQueued: the task sits in the ready queue. Waking it again is
//     a no-op; one queue entry means one upcoming poll.
//   - flagRunning: a worker is polling it. Waking it sets flagWoken
//     instead of queuing, so no second worker ever polls it
//     concurrently; the running worker re-queues it afterwards.
//   - flagWoken: a wake arrived mid-poll.
//   - flagCanceled: cancellation was requested mid-poll; the running
//     worker finishes the poll and then drops the Future.
//   - flagEnded: the Future completed or was dropped. Every later wake
//     is a no-op, and a stale queue entry is skipped when popped.
type task struct {
	executor *Executor
	flag     uint8

	// poll advances the owned Future once and reports completion.
	// drop cancels the owned Future and settles its handle.
	// Both are called without the executor mutex held.
	poll func(c *Context) bool
	drop func()
}

// Wake implements [Waker]. A task is the Waker of its own Future.
//
// Wake is safe to call from any goroutine, any number of times, including
// re-entrantly from within the task's own poll: the executor mutex is
// never held while polling, so there is nothing to deadlock with.
func (t *task) Wake() {
	e := t.executor

	e.mu.Lock()
	flag := t.flag
	switch {
	case flag&(flagEnded|flagCanceled) != 0 || e.closed:
		e.mu.Unlock()
	case flag&flagQueued != 0:
		// Coalesced: the queued entry covers this wake too.
		e.mu.Unlock()
	case flag&flagRunning != 0:
		t.flag = flag | flagWoken
		e.mu.Unlock()
	default:
		t.flag = flag | flagQueued
		e.rq.Push(t)
		e.cond.Signal()
		e.mu.Unlock()
	}
}
