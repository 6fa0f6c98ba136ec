// Package liveaudio adapts a block processor to a full-duplex audio
// callback. It owns no device; see the device subpackage for the portaudio
// stream.
package liveaudio

import (
	"sync/atomic"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
)

// Processor transforms a planar float32 buffer in place.
type Processor interface {
	Process(buf *buffer.Buffer[float32])
}

// Duplex copies captured input to the output buffers, runs the processor on
// them and counts callbacks. Its Callback method has the non-interleaved
// signature portaudio expects.
type Duplex struct {
	proc     Processor
	buf      *buffer.Buffer[float32]
	channels int

	bypass    atomic.Bool
	callbacks atomic.Uint64
	overruns  atomic.Uint64
}

// NewDuplex prepares a duplex adapter for channels channels and callbacks
// of up to frames frames.
func NewDuplex(proc Processor, channels, frames int) *Duplex {
	return &Duplex{
		proc:     proc,
		buf:      buffer.New[float32](channels, frames),
		channels: channels,
	}
}

// SetBypass passes input through unprocessed while enabled.
func (d *Duplex) SetBypass(bypass bool) { d.bypass.Store(bypass) }

// Bypass reports whether processing is bypassed.
func (d *Duplex) Bypass() bool { return d.bypass.Load() }

// Callbacks returns the number of callbacks served.
func (d *Duplex) Callbacks() uint64 { return d.callbacks.Load() }

// Overruns returns the number of callbacks longer than the prepared block.
// Those are processed in several passes.
func (d *Duplex) Overruns() uint64 { return d.overruns.Load() }

// Callback processes one device period. Missing input channels read as
// silence; output channels beyond the adapter's channel count are zeroed.
func (d *Duplex) Callback(in, out [][]float32) {
	d.callbacks.Add(1)

	if len(out) == 0 {
		return
	}

	frames := len(out[0])
	block := d.buf.Frames()

	if frames > block {
		d.overruns.Add(1)
	}

	for off := 0; off < frames; off += block {
		n := min(block, frames-off)
		d.buf.Resize(n)

		for ch := range d.channels {
			dst := d.buf.Channel(ch)
			if ch < len(in) && off+n <= len(in[ch]) {
				copy(dst, in[ch][off:off+n])
			} else {
				clear(dst)
			}
		}

		if !d.bypass.Load() {
			d.proc.Process(d.buf)
		}

		for ch := range out {
			seg := out[ch][off : off+n]
			if ch < d.channels {
				copy(seg, d.buf.Channel(ch))
			} else {
				clear(seg)
			}
		}
	}

	d.buf.Resize(block)
}
