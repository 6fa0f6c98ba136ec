// Package reduction implements the hardware-specific post filters applied to
// the raw gain reduction computed by a sidechain.
//
// A [Filter] receives the raw reduction in dB (zero or negative) once per
// sample and returns the reduction the hardware would actually apply.
package reduction
