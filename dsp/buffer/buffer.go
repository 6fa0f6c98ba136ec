package buffer

import "github.com/cwbudde/algo-dynamics/dsp/core"

// Buffer holds planar (non-interleaved) samples for one or more channels.
type Buffer[F core.Float] struct {
	channels [][]F
}

// New returns a zero-filled Buffer with the given channel and frame counts.
func New[F core.Float](channels, frames int) *Buffer[F] {
	channels = max(channels, 0)
	frames = max(frames, 0)

	b := &Buffer[F]{channels: make([][]F, channels)}
	for i := range b.channels {
		b.channels[i] = make([]F, frames)
	}

	return b
}

// FromSlices wraps existing channel slices without copying.
// Mutations to the slices are visible through the Buffer and vice versa.
func FromSlices[F core.Float](channels ...[]F) *Buffer[F] {
	return &Buffer[F]{channels: channels}
}

// Channels returns the number of channels.
func (b *Buffer[F]) Channels() int {
	return len(b.channels)
}

// Frames returns the number of samples per channel. Channels of unequal
// length report the shortest.
func (b *Buffer[F]) Frames() int {
	if len(b.channels) == 0 {
		return 0
	}

	n := len(b.channels[0])
	for _, ch := range b.channels[1:] {
		n = min(n, len(ch))
	}

	return n
}

// Channel returns the samples of channel i.
func (b *Buffer[F]) Channel(i int) []F {
	return b.channels[i]
}

// Resize sets every channel to n frames, reusing capacity when possible.
// New elements beyond the previous length are zeroed.
func (b *Buffer[F]) Resize(n int) {
	n = max(n, 0)
	for i, ch := range b.channels {
		oldLen := len(ch)
		if n <= cap(ch) {
			ch = ch[:n]
		} else {
			grown := make([]F, n)
			copy(grown, ch)
			ch = grown
		}

		for j := oldLen; j < n; j++ {
			ch[j] = 0
		}

		b.channels[i] = ch
	}
}

// Zero sets all samples to 0.
func (b *Buffer[F]) Zero() {
	for _, ch := range b.channels {
		core.Fill(ch, 0)
	}
}

// Interleave writes the buffer's frames into dst as interleaved samples and
// returns the number of frames written.
func (b *Buffer[F]) Interleave(dst []F) int {
	nch := len(b.channels)
	if nch == 0 {
		return 0
	}

	frames := min(b.Frames(), len(dst)/nch)
	for f := range frames {
		for c, ch := range b.channels {
			dst[f*nch+c] = ch[f]
		}
	}

	return frames
}

// Deinterleave fills the buffer from interleaved src and returns the number
// of frames read.
func (b *Buffer[F]) Deinterleave(src []F) int {
	nch := len(b.channels)
	if nch == 0 {
		return 0
	}

	frames := min(b.Frames(), len(src)/nch)
	for f := range frames {
		for c, ch := range b.channels {
			ch[f] = src[f*nch+c]
		}
	}

	return frames
}

// Copy returns a deep copy of the buffer.
func (b *Buffer[F]) Copy() *Buffer[F] {
	out := &Buffer[F]{channels: make([][]F, len(b.channels))}
	for i, ch := range b.channels {
		out.channels[i] = append([]F(nil), ch...)
	}

	return out
}
