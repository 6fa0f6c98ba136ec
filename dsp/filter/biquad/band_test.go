package biquad

import (
	"errors"
	"testing"
)

func TestNewBand_InvalidOrder(t *testing.T) {
	for _, order := range []int{0, 3, 5, 16, -2} {
		_, err := NewBand[float64](Bell, 1000, 1, 6, testRate, order)
		if !errors.Is(err, ErrInvalidOrder) {
			t.Fatalf("order %d: err = %v, want ErrInvalidOrder", order, err)
		}
	}
}

func TestBand_OrderOneMatchesFilter(t *testing.T) {
	band, err := NewBand[float64](Bell, 1200, 1.5, 4, testRate, 1)
	if err != nil {
		t.Fatal(err)
	}

	f := NewBell[float64](1200, 1.5, 4, testRate)
	for _, x := range testSignal(200) {
		if got, want := band.Process(x), f.Process(x); got != want {
			t.Fatalf("band %v, filter %v", got, want)
		}
	}
}

func TestBand_GainSplitAcrossStages(t *testing.T) {
	for _, order := range []int{1, 2, 4, 8} {
		band, err := NewBand[float64](Bell, 1000, 1, 6, testRate, order)
		if err != nil {
			t.Fatal(err)
		}

		for i := range band.Order() {
			if g := band.Stage(i).Gain(); !almostEqual(g, 6/float64(order), eps) {
				t.Fatalf("order %d stage %d gain %v", order, i, g)
			}
		}

		if got := band.MagnitudeDB(1000); !almostEqual(got, 6, 0.05) {
			t.Fatalf("order %d: centre gain %.4f dB, want 6", order, got)
		}
	}
}

func TestBand_StagesStaggered(t *testing.T) {
	band, err := NewBand[float64](Lowpass, 1000, ButterworthQ, 0, testRate, 4)
	if err != nil {
		t.Fatal(err)
	}

	prev := 0.0
	for i := range band.Order() {
		freq := band.Stage(i).Frequency()
		if freq <= prev {
			t.Fatalf("stage %d frequency %v not above %v", i, freq, prev)
		}

		prev = freq
	}

	// Symmetric around the band frequency.
	lo, hi := band.Stage(0).Frequency(), band.Stage(3).Frequency()
	if !almostEqual(lo*hi, 1000*1000, 1e-6) {
		t.Fatalf("stagger not symmetric: %v, %v", lo, hi)
	}

	if band.Stage(0).Gain() != 0 {
		t.Fatal("gainless kind got per-stage gain")
	}
}

func TestBand_SteeperWithOrder(t *testing.T) {
	low, _ := NewBand[float64](Lowpass, 1000, ButterworthQ, 0, testRate, 1)
	high, _ := NewBand[float64](Lowpass, 1000, ButterworthQ, 0, testRate, 8)

	if a, b := high.MagnitudeDB(8000), low.MagnitudeDB(8000); a >= b-20 {
		t.Fatalf("order 8 stopband %.2f dB not far below order 1 %.2f dB", a, b)
	}
}

func TestBand_SetOrder(t *testing.T) {
	band, _ := NewBand[float64](Bell, 1000, 1, 6, testRate, 2)

	if err := band.SetOrder(3); !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("SetOrder(3) err = %v", err)
	}

	if band.Order() != 2 {
		t.Fatalf("order changed on error: %d", band.Order())
	}

	if err := band.SetOrder(8); err != nil {
		t.Fatal(err)
	}

	if band.Order() != 8 {
		t.Fatalf("order = %d, want 8", band.Order())
	}
}

func TestBand_BlockMatchesSample(t *testing.T) {
	in := testSignal(777)

	ref, _ := NewBand[float64](HighShelf, 3000, ButterworthQ, -5, testRate, 4)
	want := make([]float64, len(in))
	for i, x := range in {
		want[i] = ref.Process(x)
	}

	blk, _ := NewBand[float64](HighShelf, 3000, ButterworthQ, -5, testRate, 4)
	got := append([]float64(nil), in...)
	blk.ProcessBlock(got)

	for i := range got {
		if !almostEqual(got[i], want[i], 1e-12) {
			t.Fatalf("sample %d: block %v, sample %v", i, got[i], want[i])
		}
	}

	blk.Reset()
	for i := range blk.Order() {
		if blk.Stage(i).History() != [4]float64{} {
			t.Fatalf("stage %d history not cleared", i)
		}
	}
}
