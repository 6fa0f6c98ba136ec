package buffer

import "testing"

func TestNew(t *testing.T) {
	b := New[float64](2, 8)
	if b.Channels() != 2 {
		t.Fatalf("Channels() = %d, want 2", b.Channels())
	}

	if b.Frames() != 8 {
		t.Fatalf("Frames() = %d, want 8", b.Frames())
	}

	for c := range b.Channels() {
		for i, v := range b.Channel(c) {
			if v != 0 {
				t.Fatalf("channel %d sample %d = %v, want 0", c, i, v)
			}
		}
	}
}

func TestNewNegativeSizes(t *testing.T) {
	b := New[float32](-1, -1)
	if b.Channels() != 0 || b.Frames() != 0 {
		t.Fatalf("got %d channels %d frames, want 0/0", b.Channels(), b.Frames())
	}
}

func TestResizeKeepsCapacityAndZeroes(t *testing.T) {
	b := New[float64](1, 8)
	ch := b.Channel(0)

	for i := range ch {
		ch[i] = 1
	}

	b.Resize(4)
	b.Resize(8)

	got := b.Channel(0)
	if &got[0] != &ch[0] {
		t.Fatal("resize within capacity reallocated")
	}

	for i := 4; i < 8; i++ {
		if got[i] != 0 {
			t.Fatalf("sample %d = %v, want 0 after regrow", i, got[i])
		}
	}

	b.Resize(16)

	if b.Frames() != 16 {
		t.Fatalf("Frames() = %d, want 16", b.Frames())
	}
}

func TestInterleaveRoundTrip(t *testing.T) {
	b := FromSlices([]float64{1, 2, 3}, []float64{-1, -2, -3})
	inter := make([]float64, 6)

	if n := b.Interleave(inter); n != 3 {
		t.Fatalf("Interleave() = %d, want 3", n)
	}

	want := []float64{1, -1, 2, -2, 3, -3}
	for i := range want {
		if inter[i] != want[i] {
			t.Fatalf("interleaved[%d] = %v, want %v", i, inter[i], want[i])
		}
	}

	out := New[float64](2, 3)
	out.Deinterleave(inter)

	for c := range 2 {
		for i := range 3 {
			if out.Channel(c)[i] != b.Channel(c)[i] {
				t.Fatalf("channel %d frame %d mismatch", c, i)
			}
		}
	}
}

func TestFramesShortestChannel(t *testing.T) {
	b := FromSlices([]float64{1, 2, 3}, []float64{1})
	if b.Frames() != 1 {
		t.Fatalf("Frames() = %d, want 1", b.Frames())
	}
}

func TestCopyIsDeep(t *testing.T) {
	b := FromSlices([]float64{1, 2})
	c := b.Copy()
	c.Channel(0)[0] = 9

	if b.Channel(0)[0] != 1 {
		t.Fatal("Copy shares backing storage")
	}
}
