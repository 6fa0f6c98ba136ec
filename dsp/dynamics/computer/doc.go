// Package computer implements the static transfer curves of a dynamics
// processor. A gain computer maps a detected level in dB to a target level in
// dB and keeps no history.
//
// The soft knee is centred on the threshold and spans KneeWidth dB. A zero
// knee degenerates to the two-segment hard-knee curve.
package computer
