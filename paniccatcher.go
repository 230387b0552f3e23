package future

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// caughtPanic carries a panic out of a task's poll, together with the
// stack of the panicking goroutine, so that [Handle.Wait] can rethrow it
// where someone is listening.
type caughtPanic struct {
	value any
	stack []byte
}

func (p *caughtPanic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "panic: %v\n\n", p.value)
	b.Write(p.stack)
	return b.String()
}

func (p *caughtPanic) Unwrap() error {
	if err, ok := p.value.(error); ok {
		return err
	}
	return nil
}

func catchPanic(f func()) (p *caughtPanic) {
	defer func() {
		if v := recover(); v != nil {
			p = &caughtPanic{value: v, stack: debug.Stack()}
		}
	}()
	f()
	return nil
}
