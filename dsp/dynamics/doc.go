// Package dynamics runs the compressor/expander sidechain over multi-channel
// buffers.
//
// A Processor owns one shared parameter state and one sidechain per channel.
// Control setters may be called from a different goroutine than Process:
// they validate the value and queue it, and Process applies queued changes at
// the start of the next block. Gain reduction and peak meters are published
// through atomics so a UI can poll them without locking the audio path.
//
// Subpackages hold the building blocks: state (parameters and change
// events), detector (envelope followers), computer (static curves),
// reduction (post-detector smoothing) and sidechain (topology wiring and
// hardware models).
package dynamics
