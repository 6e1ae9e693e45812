package frame

import "testing"

func TestQueue_FireRunsInOrder(t *testing.T) {
	q := NewQueue()
	var got []int
	q.RequestFrame(func() { got = append(got, 1) })
	q.RequestFrame(func() { got = append(got, 2) })

	if n := q.Fire(); n != 2 {
		t.Errorf("expected 2 callbacks, got %d", n)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("unexpected order: %v", got)
	}
	if q.Pending() != 0 {
		t.Errorf("expected empty queue, got %d pending", q.Pending())
	}
}

func TestQueue_Cancel(t *testing.T) {
	q := NewQueue()
	ran := false
	h := q.RequestFrame(func() { ran = true })
	q.CancelFrame(h)

	if n := q.Fire(); n != 0 {
		t.Errorf("expected 0 callbacks, got %d", n)
	}
	if ran {
		t.Error("cancelled callback ran")
	}

	// Cancelling twice or an unknown handle is harmless.
	q.CancelFrame(h)
	q.CancelFrame(Handle(999))
}

func TestQueue_RequestDuringFireWaits(t *testing.T) {
	q := NewQueue()
	count := 0
	var tick func()
	tick = func() {
		count++
		q.RequestFrame(tick)
	}
	q.RequestFrame(tick)

	for i := 0; i < 3; i++ {
		if n := q.Fire(); n != 1 {
			t.Fatalf("fire %d: expected 1 callback, got %d", i, n)
		}
	}
	if count != 3 {
		t.Errorf("expected 3 ticks, got %d", count)
	}
	if q.Pending() != 1 {
		t.Errorf("expected the rescheduled tick pending, got %d", q.Pending())
	}
}

func TestQueue_CancelDuringFire(t *testing.T) {
	q := NewQueue()
	var second Handle
	ran := false
	q.RequestFrame(func() { q.CancelFrame(second) })
	second = q.RequestFrame(func() { ran = true })

	if n := q.Fire(); n != 1 {
		t.Errorf("expected 1 callback, got %d", n)
	}
	if ran {
		t.Error("callback cancelled mid-fire still ran")
	}
}

func TestQueue_HandlesAreUnique(t *testing.T) {
	q := NewQueue()
	seen := make(map[Handle]bool)
	for i := 0; i < 100; i++ {
		h := q.RequestFrame(nil)
		if h == 0 || seen[h] {
			t.Fatalf("duplicate or zero handle %d", h)
		}
		seen[h] = true
	}
}
