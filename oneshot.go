package future

import "sync"

// Oneshot creates a channel for handing a single value from one task to
// another, across goroutines.
//
// The receiver is a [Future]: it completes with the sent value, or with
// [ErrCanceled] if the sender is closed without sending.
func Oneshot[T any]() (*OneshotSender[T], *OneshotReceiver[T]) {
	cell := new(oneshot[T])
	return &OneshotSender[T]{cell: cell}, &OneshotReceiver[T]{cell: cell}
}

const (
	oneshotEmpty = iota
	oneshotSent
	oneshotCanceled // sender closed without sending
	oneshotConsumed
)

// oneshot is the cell shared by both ends.
// It lives as long as the longer-lived of the two.
type oneshot[T any] struct {
	mu        sync.Mutex
	value     T
	state     int
	recvGone  bool
	recvWaker Waker
}

// An OneshotSender is the sending end of a [Oneshot] channel.
// It is safe for concurrent use, though only the first Send can succeed.
type OneshotSender[T any] struct {
	cell *oneshot[T]
}

// Send completes the channel with v, waking the receiver if it is parked.
//
// Send reports [ErrClosed] if the channel has already settled: a value was
// already sent, the sender was closed, or the receiver is gone.
func (s *OneshotSender[T]) Send(v T) error {
	cell := s.cell
	cell.mu.Lock()
	if cell.state != oneshotEmpty || cell.recvGone {
		cell.mu.Unlock()
		return ErrClosed
	}
	cell.value = v
	cell.state = oneshotSent
	w := cell.recvWaker
	cell.recvWaker = nil
	cell.mu.Unlock()
	if w != nil {
		w.Wake()
	}
	return nil
}

// Close drops the sending end.
// If nothing was sent, the receiver completes with [ErrCanceled].
// Closing more than once is harmless.
func (s *OneshotSender[T]) Close() {
	cell := s.cell
	cell.mu.Lock()
	if cell.state != oneshotEmpty {
		cell.mu.Unlock()
		return
	}
	cell.state = oneshotCanceled
	w := cell.recvWaker
	cell.recvWaker = nil
	cell.mu.Unlock()
	if w != nil {
		w.Wake()
	}
}

// An OneshotReceiver is the receiving end of a [Oneshot] channel.
// It implements [Future].
type OneshotReceiver[T any] struct {
	cell *oneshot[T]
}

// Poll implements [Future].
func (r *OneshotReceiver[T]) Poll(c *Context) Poll[Result[T]] {
	cell := r.cell
	cell.mu.Lock()
	defer cell.mu.Unlock()
	switch cell.state {
	case oneshotSent:
		cell.state = oneshotConsumed
		v := cell.value
		var zero T
		cell.value = zero
		return Ready(Ok(v))
	case oneshotCanceled:
		cell.state = oneshotConsumed
		return Ready(Err[T](ErrCanceled))
	case oneshotConsumed:
		panic("future: poll called after completion")
	default:
		cell.recvWaker = c.Waker()
		return Pending[Result[T]]()
	}
}

// Cancel drops the receiving end.
// A later Send reports [ErrClosed]; a value already sent is discarded.
func (r *OneshotReceiver[T]) Cancel() {
	cell := r.cell
	cell.mu.Lock()
	cell.recvGone = true
	cell.recvWaker = nil
	if cell.state == oneshotSent {
		var zero T
		cell.value = zero
		cell.state = oneshotConsumed
	}
	cell.mu.Unlock()
}
