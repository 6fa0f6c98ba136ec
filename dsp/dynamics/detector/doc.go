// Package detector implements the envelope followers that turn a rectified
// level into a smoothed control signal for a dynamics sidechain.
//
// [Follower] provides the five base recurrences selected by [Topology].
// [AutoRelease] and [FET] model hardware detector networks and [RMS] wraps
// any detector to report the RMS of its envelope.
//
// Detectors read their coefficients from a shared [state.State] and keep them
// current through subscriptions. Call Detach when a detector is discarded
// while its state lives on.
package detector
