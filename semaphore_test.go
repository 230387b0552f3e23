package future_test

import (
	"testing"

	"github.com/b97tsk/future"
)

func TestSemaphoreTryAcquire(t *testing.T) {
	s := future.NewSemaphore(2)

	if !s.TryAcquire(1) || !s.TryAcquire(1) {
		t.Fatal("TryAcquire failed with capacity available")
	}
	if s.TryAcquire(1) {
		t.Fatal("TryAcquire succeeded on an exhausted semaphore")
	}

	s.Release(1)
	if !s.TryAcquire(1) {
		t.Fatal("TryAcquire failed after Release")
	}
}

func TestSemaphoreAcquire(t *testing.T) {
	c := future.NewContext(nopWaker)

	s := future.NewSemaphore(1)
	if !s.Acquire(1).Poll(c).IsReady() {
		t.Fatal("Acquire did not complete with capacity available")
	}
	if s.Acquire(1).Poll(c).IsReady() {
		t.Fatal("Acquire completed on an exhausted semaphore")
	}
}

func TestSemaphoreFIFO(t *testing.T) {
	s := future.NewSemaphore(1)
	s.TryAcquire(1)

	wokenA := 0
	wokenB := 0
	ca := future.NewContext(future.WakerFunc(func() { wokenA++ }))
	cb := future.NewContext(future.WakerFunc(func() { wokenB++ }))

	a := s.Acquire(1)
	b := s.Acquire(1)
	a.Poll(ca)
	b.Poll(cb)

	// The first Release grants the first waiter, not both.
	s.Release(1)
	if wokenA != 1 || wokenB != 0 {
		t.Fatalf("woken a=%v b=%v, want a=1 b=0", wokenA, wokenB)
	}
	if !a.Poll(ca).IsReady() {
		t.Fatal("granted waiter did not complete")
	}
	if b.Poll(cb).IsReady() {
		t.Fatal("second waiter completed without capacity")
	}

	s.Release(1)
	if !b.Poll(cb).IsReady() {
		t.Fatal("second waiter did not complete after Release")
	}
}

func TestSemaphoreQueuedWaiterBlocksNewcomers(t *testing.T) {
	c := future.NewContext(nopWaker)

	s := future.NewSemaphore(2)
	s.TryAcquire(2)

	big := s.Acquire(2)
	big.Poll(c)

	// A small Acquire arriving behind a parked big one must wait its
	// turn even when its own weight would fit.
	s.Release(1)
	small := s.Acquire(1)
	if small.Poll(c).IsReady() {
		t.Fatal("newcomer jumped the queue")
	}

	s.Release(1)
	if !big.Poll(c).IsReady() {
		t.Fatal("head waiter not granted")
	}
}

func TestSemaphoreOversizedAcquire(t *testing.T) {
	c := future.NewContext(nopWaker)

	s := future.NewSemaphore(2)
	s.TryAcquire(2)

	// Heavier than the whole semaphore: never completes, and must not
	// stall waiters behind it.
	big := s.Acquire(3)
	big.Poll(c)

	small := s.Acquire(1)
	small.Poll(c)

	s.Release(1)
	if !small.Poll(c).IsReady() {
		t.Fatal("waiter stalled behind an impossible Acquire")
	}
	if big.Poll(c).IsReady() {
		t.Fatal("oversized Acquire completed")
	}
}

func TestSemaphoreCancelReturnsWeight(t *testing.T) {
	c := future.NewContext(nopWaker)

	s := future.NewSemaphore(1)
	s.TryAcquire(1)

	a := s.Acquire(1)
	b := s.Acquire(1)
	a.Poll(c)
	b.Poll(c)

	// a is granted by the Release but canceled before observing it; the
	// weight goes to b.
	s.Release(1)
	future.Cancel(a)
	if !b.Poll(c).IsReady() {
		t.Fatal("weight freed by cancellation not granted to next waiter")
	}
}

func TestSemaphoreCancelDequeues(t *testing.T) {
	c := future.NewContext(nopWaker)

	s := future.NewSemaphore(1)
	s.TryAcquire(1)

	a := s.Acquire(1)
	b := s.Acquire(1)
	a.Poll(c)
	b.Poll(c)

	future.Cancel(a)
	s.Release(1)
	if !b.Poll(c).IsReady() {
		t.Fatal("waiter behind a canceled Acquire not granted")
	}
}

func TestSemaphoreReleaseTooMuch(t *testing.T) {
	s := future.NewSemaphore(1)

	defer func() {
		if recover() == nil {
			t.Error("over-release did not panic")
		}
	}()
	s.Release(1)
}

func TestSemaphoreNegativeWeight(t *testing.T) {
	s := future.NewSemaphore(1)

	defer func() {
		if recover() == nil {
			t.Error("negative weight did not panic")
		}
	}()
	s.Acquire(-1)
}
