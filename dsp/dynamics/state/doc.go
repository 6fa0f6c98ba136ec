// Package state holds the parameter hub shared by the components of a
// dynamics sidechain.
//
// A [State] stores attack, release, ratio, threshold, knee width, sample rate
// and the auto-release flags together with the derived envelope coefficients.
// Components subscribe to the fields they depend on and recompute their
// coefficients synchronously when a field changes. A subscriber is invoked
// once immediately on registration so it never has to run a separate init
// step, and every registration returns a [Subscription] handle that removes it
// again.
//
// State is not synchronized. Parameter changes coming from a control thread
// are pushed as tagged [Event] values into a [Queue] and applied by the audio
// thread at block boundaries with [Queue.Drain].
package state
