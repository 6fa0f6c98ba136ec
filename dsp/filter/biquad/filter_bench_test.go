package biquad

import (
	"fmt"
	"testing"
)

func BenchmarkProcess(b *testing.B) {
	f := MakeLowpass[float64](1000, testRate)
	x := 1.0
	for b.Loop() {
		x = f.Process(x)
	}
	_ = x
}

func BenchmarkProcessBlock(b *testing.B) {
	for _, size := range []int{256, 1024, 4096} {
		b.Run(fmt.Sprintf("N=%d", size), func(b *testing.B) {
			f := MakeLowpass[float64](1000, testRate)
			buf := testSignal(size)
			b.SetBytes(int64(size * 8))
			b.ResetTimer()
			for range b.N {
				f.ProcessBlock(buf)
			}
		})
	}
}

func BenchmarkBandProcessBlock(b *testing.B) {
	for _, order := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("order=%d", order), func(b *testing.B) {
			band, _ := NewBand[float32](Bell, 1000, 1, 6, testRate, order)
			buf := make([]float32, 1024)
			for i := range buf {
				buf[i] = float32(i%64) / 64
			}
			b.SetBytes(int64(len(buf) * 4))
			b.ResetTimer()
			for range b.N {
				band.ProcessBlock(buf)
			}
		})
	}
}
