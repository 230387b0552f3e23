// Package future is a library for poll-driven asynchronous programming.
//
// A [Future] is a value that produces a result later.
// Instead of blocking a goroutine, a Future exposes a single Poll method
// that either returns the result or reports that the result is not
// available yet.
// Many Futures can be driven to completion by a small number of worker
// goroutines, because a Future that cannot make progress does not occupy
// one.
//
// # The Poll/Wake Contract
//
// Poll takes a [Context] and returns a [Poll] value, which is either Ready
// with a result, or Pending.
// A Future that returns Pending must first arrange for the [Waker]
// obtained from the Context to be invoked at some future point when
// re-polling might make progress.
// A Future that returns Pending without arranging a wake-up stalls
// forever; nothing detects this mechanically. It is a contract violation.
//
// Wake-ups may be spurious.
// A Future must tolerate being polled again before any progress is
// possible, by simply returning Pending again.
//
// Polling a Future again after it has returned Ready is a programming
// error and panics.
// A completed Future cannot be restarted; discard it and create a new one.
//
// # Composition
//
// Combinators build larger Futures out of smaller ones: [Then] and
// [AndThen] sequence dependent operations, [Map] transforms results,
// [Race] settles on whichever of two Futures completes first, and [Join]
// and [JoinAll] wait for all of several.
// Each combinator owns its sub-Futures exclusively and is itself a Future,
// so composition nests arbitrarily without allocation beyond the
// combinator values themselves.
//
// A [Stream] generalizes a Future to a sequence of results.
// It yields zero or more items and then reports exhaustion, once.
// Adapters like [StreamMap] and [StreamTake] compose the same way Future
// combinators do.
//
// # Channels
//
// [Oneshot] hands a single value from one task to another.
// [NewChannel] creates a bounded multi-producer single-consumer channel
// whose receiver is a Stream.
// A full channel suspends its producers; this is how backpressure works.
//
// # Executors
//
// An [Executor] owns a queue of ready tasks and a pool of worker
// goroutines.
// Each worker pops a task, polls it once, and leaves it parked until its
// Waker fires.
// Waking a task that is already queued coalesces into a single queue
// entry, and no two workers ever poll the same task at the same time.
//
// [BlockOn] drives a single Future on the calling goroutine, for bridging
// into synchronous code.
//
// # Cancellation
//
// Dropping a Future before it completes is the sole cancellation
// mechanism.
// Since Go has no destructors, dropping is spelled [Cancel]: it invokes
// the Cancel method of any value that has one, and combinators forward it
// recursively to the sub-Futures they own, releasing resources and
// de-registering stored Wakers so that no later wake-up touches them.
package future
