package future

import "errors"

var (
	// ErrCanceled is reported by a [OneshotReceiver] whose sender was
	// closed without sending, and by a [Handle] whose task was canceled
	// or whose executor shut down first.
	ErrCanceled = errors.New("future: canceled")

	// ErrClosed is reported by channel operations whose other side is
	// gone: sending into a channel with no receiver, or completing a
	// oneshot that has already settled.
	ErrClosed = errors.New("future: closed")

	// ErrFull is reported by a non-suspending send on a bounded channel
	// that has no free slot. The caller decides whether to retry or to
	// suspend with [Sender.Send].
	ErrFull = errors.New("future: channel full")
)
