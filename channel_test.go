package future_test

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/b97tsk/future"
)

func TestChannelCapacity(t *testing.T) {
	s, r := future.NewChannel[int](2)

	for v := range 2 {
		if err := s.TrySend(v); err != nil {
			t.Fatalf("TrySend(%v): %v", v, err)
		}
	}
	if err := s.TrySend(2); !errors.Is(err, future.ErrFull) {
		t.Fatalf("TrySend on full channel: got %v, want %v", err, future.ErrFull)
	}

	// One receive frees exactly one slot.
	if v, ok := future.BlockOn(future.NextItem[int](r)).Get(); !ok || v != 0 {
		t.Fatalf("got %v, %v; want 0, true", v, ok)
	}
	if err := s.TrySend(2); err != nil {
		t.Fatalf("TrySend after receive: %v", err)
	}
	if err := s.TrySend(3); !errors.Is(err, future.ErrFull) {
		t.Fatalf("TrySend on refilled channel: got %v, want %v", err, future.ErrFull)
	}
}

func TestChannelFIFO(t *testing.T) {
	s, r := future.NewChannel[int](4)

	for v := range 4 {
		if err := s.TrySend(v); err != nil {
			t.Fatalf("TrySend(%v): %v", v, err)
		}
	}
	s.Close()

	got := future.BlockOn(future.Collect[int](r))
	if !slices.Equal(got, []int{0, 1, 2, 3}) {
		t.Fatalf("got %v, want [0 1 2 3]", got)
	}
}

func TestChannelBackpressure(t *testing.T) {
	s, r := future.NewChannel[int](1)

	const n = 100

	var wg sync.WaitGroup
	wg.Go(func() {
		defer s.Close()
		// Each Send suspends until the receiver frees a slot.
		for v := range n {
			if err := future.BlockOn(s.Send(v)); err != nil {
				t.Errorf("Send(%v): %v", v, err)
				return
			}
		}
	})

	got := future.BlockOn(future.Collect[int](r))
	wg.Wait()

	if len(got) != n {
		t.Fatalf("received %v values, want %v", len(got), n)
	}
	for v := range n {
		if got[v] != v {
			t.Fatalf("got[%v] = %v; single-producer order not preserved", v, got[v])
		}
	}
}

func TestChannelMultiProducer(t *testing.T) {
	s, r := future.NewChannel[int](2)

	const producers = 4
	const perProducer = 50

	var wg sync.WaitGroup
	for p := range producers {
		sender := s
		if p > 0 {
			sender = s.Clone()
		}
		wg.Go(func() {
			defer sender.Close()
			for v := range perProducer {
				if err := future.BlockOn(sender.Send(p*perProducer + v)); err != nil {
					t.Errorf("Send: %v", err)
					return
				}
			}
		})
	}

	got := future.BlockOn(future.Collect[int](r))
	wg.Wait()

	if len(got) != producers*perProducer {
		t.Fatalf("received %v values, want %v", len(got), producers*perProducer)
	}

	// Interleaving is unspecified, but each producer's own order holds.
	last := make(map[int]int)
	for _, v := range got {
		p := v / perProducer
		if prev, ok := last[p]; ok && v <= prev {
			t.Fatalf("producer %v: %v arrived after %v", p, v, prev)
		}
		last[p] = v
	}
}

func TestChannelClosedDrains(t *testing.T) {
	s, r := future.NewChannel[int](4)

	s.TrySend(1)
	s.TrySend(2)
	s.Close()

	// Buffered values survive the close; then the stream ends.
	got := future.BlockOn(future.Collect[int](r))
	if !slices.Equal(got, []int{1, 2}) {
		t.Fatalf("got %v, want [1 2]", got)
	}
}

func TestChannelReceiverGone(t *testing.T) {
	s, r := future.NewChannel[int](1)
	r.Close()

	if err := s.TrySend(1); !errors.Is(err, future.ErrClosed) {
		t.Fatalf("TrySend: got %v, want %v", err, future.ErrClosed)
	}
	if err := future.BlockOn(s.Send(2)); !errors.Is(err, future.ErrClosed) {
		t.Fatalf("Send: got %v, want %v", err, future.ErrClosed)
	}
}

func TestChannelReceiverClosesWithParkedSender(t *testing.T) {
	s, r := future.NewChannel[int](1)
	s.TrySend(1)

	var wg sync.WaitGroup
	wg.Go(func() {
		// Suspends on the full buffer, then fails when the receiver
		// goes away.
		if err := future.BlockOn(s.Send(2)); !errors.Is(err, future.ErrClosed) {
			t.Errorf("Send: got %v, want %v", err, future.ErrClosed)
		}
	})

	r.Close()
	wg.Wait()
}

func TestChannelSendAfterClose(t *testing.T) {
	s, _ := future.NewChannel[int](1)
	s.Close()

	if err := s.TrySend(1); !errors.Is(err, future.ErrClosed) {
		t.Fatalf("TrySend: got %v, want %v", err, future.ErrClosed)
	}
}

func TestChannelCapacityValidation(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewChannel(0) did not panic")
		}
	}()
	future.NewChannel[int](0)
}

func TestChannelPollAfterExhaustion(t *testing.T) {
	c := future.NewContext(nopWaker)

	s, r := future.NewChannel[int](1)
	s.Close()

	if r.PollNext(c).Value().IsSome() {
		t.Fatal("got an item from an empty closed channel")
	}

	defer func() {
		if recover() == nil {
			t.Error("poll after exhaustion did not panic")
		}
	}()
	r.PollNext(c)
}
