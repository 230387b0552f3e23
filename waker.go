package future

// A Waker is a notification capability bound to one pending task.
// Invoking Wake schedules that task for another poll.
//
// A Waker must be safe to invoke from any goroutine, any number of times,
// including after the task completed (a no-op then) and concurrently with
// other invocations. Redundant invocations merge into "poll at least once
// more"; they never cause concurrent polls of the same task.
//
// A Waker is the only part of a [Context] that may outlive a poll call.
type Waker interface {
	Wake()
}

// WakerFunc adapts a plain function to the [Waker] interface.
type WakerFunc func()

// Wake calls f.
func (f WakerFunc) Wake() { f() }

// A Context carries the capabilities of a single poll call.
// It yields the [Waker] that resumes the task being polled.
//
// A Context is only valid for the duration of the poll call it was passed
// into. Do not store it; extract the Waker and store that instead.
type Context struct {
	waker Waker
}

// NewContext returns a [Context] whose Waker method returns w.
func NewContext(w Waker) *Context {
	return &Context{waker: w}
}

// Waker returns the [Waker] for the current poll call.
func (c *Context) Waker() Waker {
	return c.waker
}
