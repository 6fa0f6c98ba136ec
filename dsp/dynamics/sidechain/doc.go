// Package sidechain wires an envelope detector, a gain computer and a gain
// reduction filter around a shared parameter state and turns an input sample
// into the linear gain to apply to the program material.
//
// The signal flow is chosen by a [ComputerTopology] (feedforward or feedback)
// and a [DetectorTopology] (return to zero, return to threshold or the
// alternate return to threshold that runs the detector on the gain reduction
// itself).
//
// [Hardware] freezes the topology, detector and reduction filter of a
// modelled unit and replaces the continuous controls with its quantized
// preset, attack and release steps.
package sidechain
