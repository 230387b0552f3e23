package future_test

import (
	"errors"
	"testing"

	"github.com/b97tsk/future"
)

func TestThen(t *testing.T) {
	c := future.NewContext(nopWaker)

	var first probe[int]
	var second probe[string]
	constructed := 0

	f := future.Then[int, string](&first, func(v int) future.Future[string] {
		constructed++
		if v != 1 {
			t.Errorf("got %v, want 1", v)
		}
		return &second
	})

	if f.Poll(c).IsReady() {
		t.Fatal("completed early")
	}
	if constructed != 0 {
		t.Fatal("second phase constructed before first completed")
	}

	first.complete(1)
	second.ready = true
	second.value = "done"

	// The transition and the poll of the second phase happen within
	// this one call.
	if got := f.Poll(c).Value(); got != "done" {
		t.Fatalf("got %q, want %q", got, "done")
	}
	if constructed != 1 || second.polls != 1 {
		t.Errorf("constructed=%v, second.polls=%v; want 1, 1", constructed, second.polls)
	}

	defer func() {
		if recover() == nil {
			t.Error("poll after completion did not panic")
		}
	}()
	f.Poll(c)
}

func TestThenSuspendsInSecondPhase(t *testing.T) {
	c := future.NewContext(nopWaker)

	var first probe[int]
	var second probe[int]

	f := future.Then[int, int](&first, func(int) future.Future[int] { return &second })

	first.ready = true
	if f.Poll(c).IsReady() {
		t.Fatal("completed early")
	}
	if first.polls != 1 || second.polls != 1 {
		t.Fatalf("polls = %v, %v; want 1, 1", first.polls, second.polls)
	}

	second.complete(9)
	if got := f.Poll(c).Value(); got != 9 {
		t.Fatalf("got %v, want 9", got)
	}
	// The first phase completed long ago; it must not be polled again.
	if first.polls != 1 {
		t.Errorf("first polled %v times, want 1", first.polls)
	}
}

func TestMap(t *testing.T) {
	c := future.NewContext(nopWaker)

	var p probe[int]
	f := future.Map[int, int](&p, func(v int) int { return v * 2 })

	if f.Poll(c).IsReady() {
		t.Fatal("completed early")
	}
	p.complete(21)
	if got := f.Poll(c).Value(); got != 42 {
		t.Fatalf("got %v, want 42", got)
	}
}

func TestAndThen(t *testing.T) {
	c := future.NewContext(nopWaker)

	f := future.AndThen[int, int](
		future.Resolved(future.Ok(2)),
		func(v int) future.Future[future.Result[int]] {
			return future.Resolved(future.Ok(v + 3))
		},
	)
	if v, err := f.Poll(c).Value().Get(); err != nil || v != 5 {
		t.Fatalf("got %v, %v; want 5, nil", v, err)
	}
}

func TestAndThenShortCircuits(t *testing.T) {
	c := future.NewContext(nopWaker)

	boom := errors.New("boom")
	called := false
	f := future.AndThen[int, int](
		future.Resolved(future.Err[int](boom)),
		func(int) future.Future[future.Result[int]] {
			called = true
			return future.Resolved(future.Ok(0))
		},
	)
	if _, err := f.Poll(c).Value().Get(); !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}
	if called {
		t.Error("continuation called despite error")
	}
}

func TestMapErr(t *testing.T) {
	c := future.NewContext(nopWaker)

	boom := errors.New("boom")
	wrapped := errors.New("wrapped")
	f := future.MapErr(
		future.Resolved(future.Err[int](boom)),
		func(err error) error { return wrapped },
	)
	if _, err := f.Poll(c).Value().Get(); !errors.Is(err, wrapped) {
		t.Fatalf("got %v, want %v", err, wrapped)
	}

	g := future.MapErr(
		future.Resolved(future.Ok(1)),
		func(err error) error { return wrapped },
	)
	if v, err := g.Poll(c).Value().Get(); err != nil || v != 1 {
		t.Fatalf("got %v, %v; want 1, nil", v, err)
	}
}
