package future

import "sync"

// An Executor drives top-level Futures to completion.
//
// It owns a FIFO ready queue of tasks and a fixed pool of worker
// goroutines. Each worker pops a ready task, polls its Future once, and
// moves on; a task that returned Pending stays off the queue until its
// [Waker] fires.
//
// A wake-up arriving while the task is already queued coalesces into the
// existing entry, and a wake-up arriving while the task is being polled
// re-queues it only after that poll returns, so a task is polled by at
// most one worker at any instant.
//
// The executor mutex is never held while polling user code, so a Future
// may invoke wakers inline, including its own, without deadlocking.
type Executor struct {
	mu     sync.Mutex
	cond   sync.Cond
	rq     taskqueue
	tasks  map[*task]struct{}
	closed bool
	wg     sync.WaitGroup
}

// NewExecutor creates an [Executor] with the given number of worker
// goroutines, which must be at least one.
//
// With one worker, tasks run fully serialized in wake order; with more,
// distinct tasks are polled in parallel.
func NewExecutor(workers int) *Executor {
	if workers < 1 {
		panic("future: NewExecutor: need at least one worker")
	}
	e := &Executor{tasks: make(map[*task]struct{})}
	e.cond.L = &e.mu
	for range workers {
		e.wg.Go(e.work)
	}
	return e
}

// Spawn submits f to e and returns a [Handle] for joining or canceling
// it.
//
// The Future becomes owned by the executor slot; the caller must not poll
// it anymore.
//
// Spawn panics if e has been shut down.
func Spawn[T any](e *Executor, f Future[T]) *Handle[T] {
	h := newHandle[T]()
	t := &task{executor: e}
	t.poll = func(c *Context) bool {
		var p Poll[T]
		if pv := catchPanic(func() { p = f.Poll(c) }); pv != nil {
			h.panicked(pv)
			return true
		}
		v, ok := p.Get()
		if ok {
			h.complete(v)
		}
		return ok
	}
	t.drop = func() {
		Cancel(f)
		h.completeErr(ErrCanceled)
	}
	h.task = t

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		panic("future: Spawn called on a shut down Executor")
	}
	e.tasks[t] = struct{}{}
	t.flag = flagQueued
	e.rq.Push(t)
	e.cond.Signal()
	e.mu.Unlock()
	return h
}

func (e *Executor) work() {
	e.mu.Lock()
	for {
		for e.rq.Empty() && !e.closed {
			e.cond.Wait()
		}
		if e.closed {
			break
		}
		e.runTask(e.rq.Pop())
	}
	e.mu.Unlock()
}

// runTask polls one task. Called and returns with e.mu held; the mutex is
// released around the poll itself.
func (e *Executor) runTask(t *task) {
	flag := t.flag &^ flagQueued
	if flag&flagEnded != 0 {
		// Stale entry of a task canceled while queued.
		t.flag = flag
		return
	}
	t.flag = flag | flagRunning

	e.mu.Unlock()
	done := t.poll(NewContext(t))
	e.mu.Lock()

	flag = t.flag &^ flagRunning
	switch {
	case done:
		t.flag = flag | flagEnded
		delete(e.tasks, t)
	case flag&flagCanceled != 0:
		t.flag = flag | flagEnded
		delete(e.tasks, t)
		e.mu.Unlock()
		t.drop()
		e.mu.Lock()
	case flag&flagWoken != 0:
		t.flag = flag&^flagWoken | flagQueued
		e.rq.Push(t)
		e.cond.Signal()
	default:
		t.flag = flag
	}
}

// cancelTask drops a task's Future.
// If a worker is polling the task right now, the drop is deferred to that
// worker; the Future is never canceled concurrently with its own poll.
func (e *Executor) cancelTask(t *task) {
	e.mu.Lock()
	flag := t.flag
	if flag&(flagEnded|flagCanceled) != 0 || e.closed {
		e.mu.Unlock()
		return
	}
	if flag&flagRunning != 0 {
		t.flag = flag | flagCanceled
		e.mu.Unlock()
		return
	}
	t.flag = flag | flagEnded
	delete(e.tasks, t)
	e.mu.Unlock()
	t.drop()
}

// Shutdown stops the workers and drops every task that has not completed.
//
// Polls already in flight finish first. Dropped tasks have their Futures
// canceled, and their Handles report [ErrCanceled].
// Wakers that fire after Shutdown are no-ops.
func (e *Executor) Shutdown() {
	e.mu.Lock()
	alreadyClosed := e.closed
	e.closed = true
	e.cond.Broadcast()
	e.mu.Unlock()

	e.wg.Wait()

	if alreadyClosed {
		return
	}

	e.mu.Lock()
	drops := make([]func(), 0, len(e.tasks))
	for t := range e.tasks {
		t.flag |= flagEnded
		drops = append(drops, t.drop)
	}
	clear(e.tasks)
	e.rq = taskqueue{}
	e.mu.Unlock()

	for _, drop := range drops {
		drop()
	}
}
