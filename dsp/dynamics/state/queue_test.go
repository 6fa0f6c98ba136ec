package state

import (
	"sync"
	"testing"
)

func TestQueue_CapacityRoundsUp(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultQueueCapacity},
		{1, 2},
		{3, 4},
		{64, 64},
		{100, 128},
	}

	for _, tt := range tests {
		if got := NewQueue[float64](tt.in).Cap(); got != tt.want {
			t.Fatalf("NewQueue(%d).Cap() = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestQueue_PushFull(t *testing.T) {
	q := NewQueue[float64](4)
	for i := range 4 {
		if !q.Push(ValueEvent[float64](FieldRatio, float64(i))) {
			t.Fatalf("push %d rejected", i)
		}
	}

	if q.Push(ValueEvent[float64](FieldRatio, 99)) {
		t.Fatal("push into full queue accepted")
	}

	if q.Len() != 4 {
		t.Fatalf("Len = %d", q.Len())
	}

	e, ok := q.Pop()
	if !ok || e.Value != 0 {
		t.Fatalf("Pop = %+v, %v", e, ok)
	}

	if !q.Push(ValueEvent[float64](FieldRatio, 4)) {
		t.Fatal("push after pop rejected")
	}
}

func TestQueue_DrainAppliesInOrder(t *testing.T) {
	st := New[float64]()
	q := NewQueue[float64](8)

	var seen []float64

	st.Subscribe(FieldThreshold, func(e Event[float64]) { seen = append(seen, e.Value) })

	seen = seen[:0]

	q.Push(ValueEvent[float64](FieldThreshold, -1))
	q.Push(ValueEvent[float64](FieldThreshold, -2))
	q.Push(ValueEvent[float64](FieldThreshold, -3))

	if n := q.Drain(st); n != 3 {
		t.Fatalf("Drain = %d", n)
	}

	if st.Threshold() != -3 || len(seen) != 3 || seen[0] != -1 || seen[2] != -3 {
		t.Fatalf("threshold %v, seen %v", st.Threshold(), seen)
	}

	if q.Drain(st) != 0 || q.Len() != 0 {
		t.Fatal("queue not empty after drain")
	}
}

func TestQueue_ConcurrentProducer(t *testing.T) {
	const total = 10000

	st := New[float64]()
	q := NewQueue[float64](16)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		for i := 1; i <= total; {
			if q.Push(ValueEvent[float64](FieldRatio, float64(i))) {
				i++
			}
		}
	}()

	last := 0.0
	for last < total {
		for {
			e, ok := q.Pop()
			if !ok {
				break
			}

			if e.Value != last+1 {
				t.Errorf("out of order: got %v after %v", e.Value, last)
				wg.Wait()

				return
			}

			st.Apply(e)
			last = e.Value
		}
	}

	wg.Wait()

	if st.Ratio() != total {
		t.Fatalf("ratio = %v, want %d", st.Ratio(), total)
	}
}
