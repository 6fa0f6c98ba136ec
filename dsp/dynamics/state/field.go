package state

import (
	"fmt"

	"github.com/cwbudde/algo-dynamics/dsp/core"
)

// Field identifies one parameter of a State.
type Field int

const (
	FieldAttack Field = iota
	FieldRelease
	FieldRatio
	FieldThreshold
	FieldKneeWidth
	FieldSampleRate
	FieldHasAutoRelease
	FieldAutoReleaseEnabled

	numFields
)

var fieldNames = [...]string{
	FieldAttack:             "attack",
	FieldRelease:            "release",
	FieldRatio:              "ratio",
	FieldThreshold:          "threshold",
	FieldKneeWidth:          "knee",
	FieldSampleRate:         "samplerate",
	FieldHasAutoRelease:     "hasautorelease",
	FieldAutoReleaseEnabled: "autorelease",
}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return fmt.Sprintf("Field(%d)", int(f))
	}

	return fieldNames[f]
}

// Continuous marks a Timing that is not bound to a hardware step.
const Continuous = -1

// Timing is an attack or release setting: a time constant in seconds,
// optionally tagged with the index of a quantized hardware step.
type Timing struct {
	Seconds float64
	Step    int
}

// Seconds returns a continuous timing.
func Seconds(s float64) Timing {
	return Timing{Seconds: s, Step: Continuous}
}

// Milliseconds returns a continuous timing given in ms.
func Milliseconds(ms float64) Timing {
	return Seconds(ms / 1000)
}

// Stepped returns a timing bound to hardware step index step.
func Stepped(step int, seconds float64) Timing {
	return Timing{Seconds: seconds, Step: step}
}

// IsStepped reports whether the timing came from a quantized control.
func (t Timing) IsStepped() bool {
	return t.Step >= 0
}

// Event is a tagged parameter change. Value carries numeric fields, Timing
// carries attack/release and Flag carries the boolean fields.
type Event[F core.Float] struct {
	Field  Field
	Value  F
	Timing Timing
	Flag   bool
}

// AttackEvent returns an event that sets the attack timing.
func AttackEvent[F core.Float](t Timing) Event[F] {
	return Event[F]{Field: FieldAttack, Timing: t}
}

// ReleaseEvent returns an event that sets the release timing.
func ReleaseEvent[F core.Float](t Timing) Event[F] {
	return Event[F]{Field: FieldRelease, Timing: t}
}

// ValueEvent returns an event for one of the numeric fields.
func ValueEvent[F core.Float](field Field, v F) Event[F] {
	return Event[F]{Field: field, Value: v}
}

// FlagEvent returns an event for one of the boolean fields.
func FlagEvent[F core.Float](field Field, v bool) Event[F] {
	return Event[F]{Field: field, Flag: v}
}
