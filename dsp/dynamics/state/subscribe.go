package state

import "github.com/cwbudde/algo-dynamics/dsp/core"

type subscriber[F core.Float] struct {
	id uint64
	fn func(Event[F])
}

// Subscription is the handle returned by Subscribe. Cancel removes the
// callback; calling it more than once is a no-op.
type Subscription struct {
	cancel func()
}

// Cancel removes the subscription.
func (s *Subscription) Cancel() {
	if s == nil || s.cancel == nil {
		return
	}

	s.cancel()
	s.cancel = nil
}

// Subscribe registers fn for changes of field and invokes it once with the
// current value.
func (s *State[F]) Subscribe(field Field, fn func(Event[F])) *Subscription {
	return s.SubscribeAll(fn, field)
}

// SubscribeAll registers fn for every listed field under one handle. fn is
// invoked once per field with the current value, in the order given.
func (s *State[F]) SubscribeAll(fn func(Event[F]), fields ...Field) *Subscription {
	s.nextID++
	id := s.nextID

	registered := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f < 0 || f >= numFields {
			continue
		}

		s.subs[f] = append(s.subs[f], subscriber[F]{id: id, fn: fn})
		registered = append(registered, f)
	}

	for _, f := range registered {
		fn(s.Event(f))
	}

	return &Subscription{cancel: func() {
		for _, f := range registered {
			s.remove(f, id)
		}
	}}
}

// Subscribers returns the number of callbacks registered for field.
func (s *State[F]) Subscribers(field Field) int {
	if field < 0 || field >= numFields {
		return 0
	}

	return len(s.subs[field])
}

func (s *State[F]) notify(field Field) {
	list := s.subs[field]
	if len(list) == 0 {
		return
	}

	e := s.Event(field)
	for _, sub := range list {
		sub.fn(e)
	}
}

// remove builds a fresh slice so a notification loop that is iterating the
// old one is unaffected.
func (s *State[F]) remove(field Field, id uint64) {
	old := s.subs[field]

	kept := make([]subscriber[F], 0, len(old))
	for _, sub := range old {
		if sub.id != id {
			kept = append(kept, sub)
		}
	}

	s.subs[field] = kept
}
