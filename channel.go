package future

import "sync"

// NewChannel creates a bounded multi-producer single-consumer channel.
//
// The buffer holds up to capacity values; capacity must be at least one.
// Values arrive in send order per producer; the interleaving between
// producers is unspecified.
//
// The receiving end is a [Stream] that ends once every sender is closed
// and the buffer has drained.
func NewChannel[T any](capacity int) (*Sender[T], *Receiver[T]) {
	if capacity < 1 {
		panic("future: NewChannel: capacity must be at least one")
	}
	ch := &channel[T]{cap: capacity, senders: 1}
	return &Sender[T]{ch: ch}, &Receiver[T]{ch: ch}
}

// channel is the cell shared by every handle.
//
// It stores one Waker for the receiver and one list node per blocked
// producer; wakers are always invoked after the lock is released, so
// re-entrant wake-ups cannot deadlock.
type channel[T any] struct {
	mu   sync.Mutex
	buf  []T
	head int
	cap  int

	senders  int // live sender handles
	closed   bool
	recvGone bool
	recvDone bool // receiver saw the terminal signal

	recvWaker Waker
	sendq     []*sendWaiter // blocked producers, FIFO
}

type sendWaiter struct {
	waker    Waker
	enlisted bool
}

func (ch *channel[T]) bufLen() int {
	return len(ch.buf) - ch.head
}

func (ch *channel[T]) bufPush(v T) {
	ch.buf = append(ch.buf, v)
}

func (ch *channel[T]) bufPop() (T, bool) {
	var zero T
	if ch.bufLen() == 0 {
		return zero, false
	}
	v := ch.buf[ch.head]
	ch.buf[ch.head] = zero
	ch.head++
	if ch.head == len(ch.buf) {
		ch.buf = ch.buf[:0]
		ch.head = 0
	}
	return v, true
}

// popSendWaiter removes and returns the oldest blocked producer.
func (ch *channel[T]) popSendWaiter() Waker {
	if len(ch.sendq) == 0 {
		return nil
	}
	w := ch.sendq[0]
	ch.sendq[0] = nil
	ch.sendq = ch.sendq[1:]
	w.enlisted = false
	return w.waker
}

func (ch *channel[T]) removeSendWaiter(w *sendWaiter) {
	if !w.enlisted {
		return
	}
	w.enlisted = false
	for i, v := range ch.sendq {
		if v == w {
			copy(ch.sendq[i:], ch.sendq[i+1:])
			ch.sendq[len(ch.sendq)-1] = nil
			ch.sendq = ch.sendq[:len(ch.sendq)-1]
			return
		}
	}
}

// A Sender is a producer handle of a channel created by [NewChannel].
// Additional producers are created with Clone.
// Each Sender is safe for concurrent use.
type Sender[T any] struct {
	ch     *channel[T]
	mu     sync.Mutex
	closed bool
}

// TrySend places v in the channel buffer without suspending.
//
// It reports [ErrFull] if no slot is free, and [ErrClosed] if the
// receiver is gone or s is closed.
func (s *Sender[T]) TrySend(v T) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}

	ch := s.ch
	ch.mu.Lock()
	if ch.recvGone {
		ch.mu.Unlock()
		return ErrClosed
	}
	if ch.bufLen() >= ch.cap {
		ch.mu.Unlock()
		return ErrFull
	}
	ch.bufPush(v)
	w := ch.recvWaker
	ch.recvWaker = nil
	ch.mu.Unlock()
	if w != nil {
		w.Wake()
	}
	return nil
}

// Send returns a [Future] that places v in the channel buffer, suspending
// while the buffer is full.
//
// The Future completes with nil once v is buffered, or with [ErrClosed]
// if the receiver is gone.
// Values sent through Futures awaited one after another arrive in order.
func (s *Sender[T]) Send(v T) Future[error] {
	return &sendFuture[T]{sender: s, value: v}
}

// Clone returns a new producer handle for the same channel.
//
// Cloning a closed Sender panics.
func (s *Sender[T]) Clone() *Sender[T] {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		panic("future: Clone called on a closed Sender")
	}

	ch := s.ch
	ch.mu.Lock()
	ch.senders++
	ch.mu.Unlock()
	return &Sender[T]{ch: ch}
}

// Close drops this producer handle.
// Once every producer is closed, the channel closes: the receiver drains
// the buffer and then sees the end of the stream.
// Closing more than once is harmless.
func (s *Sender[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	ch := s.ch
	ch.mu.Lock()
	ch.senders--
	var w Waker
	if ch.senders == 0 {
		ch.closed = true
		w = ch.recvWaker
		ch.recvWaker = nil
	}
	ch.mu.Unlock()
	if w != nil {
		w.Wake()
	}
}

// sendFuture is the backpressure point: it parks its producer in the
// channel's FIFO waiter list while the buffer is full.
type sendFuture[T any] struct {
	sender *Sender[T]
	value  T
	waiter sendWaiter
	done   bool
}

func (f *sendFuture[T]) Poll(c *Context) Poll[error] {
	if f.done {
		panic("future: poll called after completion")
	}

	s := f.sender
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()

	ch := s.ch
	ch.mu.Lock()
	if closed || ch.recvGone {
		ch.removeSendWaiter(&f.waiter)
		ch.mu.Unlock()
		f.finish()
		return Ready(ErrClosed)
	}
	if ch.bufLen() >= ch.cap {
		f.waiter.waker = c.Waker()
		if !f.waiter.enlisted {
			f.waiter.enlisted = true
			ch.sendq = append(ch.sendq, &f.waiter)
		}
		ch.mu.Unlock()
		return Pending[error]()
	}
	ch.bufPush(f.value)
	ch.removeSendWaiter(&f.waiter)
	w := ch.recvWaker
	ch.recvWaker = nil
	ch.mu.Unlock()
	f.finish()
	if w != nil {
		w.Wake()
	}
	return Ready[error](nil)
}

func (f *sendFuture[T]) finish() {
	f.done = true
	var zero T
	f.value = zero
}

// Cancel de-registers the producer from the waiter list; the value is
// discarded if it was not buffered yet.
//
// A producer canceled between being woken and being re-polled hands its
// wake-up over to the next blocked producer, so the freed slot is never
// lost.
func (f *sendFuture[T]) Cancel() {
	if f.done {
		return
	}
	ch := f.sender.ch
	ch.mu.Lock()
	ch.removeSendWaiter(&f.waiter)
	var w Waker
	if ch.bufLen() < ch.cap {
		w = ch.popSendWaiter()
	}
	ch.mu.Unlock()
	f.finish()
	if w != nil {
		w.Wake()
	}
}

// A Receiver is the single consumer handle of a channel created by
// [NewChannel]. It implements [Stream].
//
// A Receiver must not be polled concurrently with itself, like any
// Stream; it is safe to poll concurrently with any Sender use.
type Receiver[T any] struct {
	ch *channel[T]
}

// PollNext implements [Stream].
//
// Every value taken out of a full buffer frees exactly one slot and wakes
// the oldest blocked producer.
func (r *Receiver[T]) PollNext(c *Context) Poll[Option[T]] {
	ch := r.ch
	ch.mu.Lock()
	if ch.recvDone {
		ch.mu.Unlock()
		panic("future: poll called after stream exhaustion")
	}
	if v, ok := ch.bufPop(); ok {
		w := ch.popSendWaiter()
		ch.mu.Unlock()
		if w != nil {
			w.Wake()
		}
		return Ready(Some(v))
	}
	if ch.closed {
		ch.recvDone = true
		ch.mu.Unlock()
		return Ready(None[T]())
	}
	ch.recvWaker = c.Waker()
	ch.mu.Unlock()
	return Pending[Option[T]]()
}

// Close drops the consumer handle.
//
// Buffered values are discarded, blocked producers are woken and complete
// with [ErrClosed], and later sends fail with [ErrClosed].
func (r *Receiver[T]) Close() {
	ch := r.ch
	ch.mu.Lock()
	ch.recvGone = true
	ch.recvWaker = nil
	ch.buf = nil
	ch.head = 0
	wakers := make([]Waker, 0, len(ch.sendq))
	for _, w := range ch.sendq {
		w.enlisted = false
		wakers = append(wakers, w.waker)
	}
	ch.sendq = nil
	ch.mu.Unlock()
	for _, w := range wakers {
		w.Wake()
	}
}

// Cancel drops the consumer handle. It is Close, under the name that
// [Cancel] looks for.
func (r *Receiver[T]) Cancel() {
	r.Close()
}
