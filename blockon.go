package future

// BlockOn drives f on the calling goroutine until it completes, and
// returns its result.
//
// Between polls the goroutine parks on a notification slot; any number of
// wake-ups while parked or while polling collapse into a single re-poll.
//
// BlockOn needs no [Executor]. It is the synchronous bridge: give it a
// Future wired to channels, timers, or spawned work, and the calling code
// stays ordinary blocking Go.
func BlockOn[T any](f Future[T]) T {
	p := parker{notify: make(chan struct{}, 1)}
	c := NewContext(p)
	for {
		if v, ok := f.Poll(c).Get(); ok {
			return v
		}
		<-p.notify
	}
}

// parker is the [Waker] of a goroutine blocked in [BlockOn].
// The one-slot channel coalesces wakes.
type parker struct {
	notify chan struct{}
}

func (p parker) Wake() {
	select {
	case p.notify <- struct{}{}:
	default:
	}
}
