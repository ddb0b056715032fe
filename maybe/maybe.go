/*
Package maybe provides an option type for values which may be absent.

Style properties like `top` or `left` are either set to a concrete value
or not set at all, which is different from being set to zero.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package maybe

import "fmt"

// Maybe is either Just a value or Nothing.
// The zero value is Nothing. Maybe values of comparable types may be
// compared with ==.
type Maybe[T comparable] struct {
	value T
	tag   bool
}

// Just wraps x.
func Just[T comparable](x T) Maybe[T] {
	return Maybe[T]{value: x, tag: true}
}

// Nothing returns an unset value.
func Nothing[T comparable]() Maybe[T] {
	return Maybe[T]{}
}

// IsNothing is true for unset values.
func (m Maybe[T]) IsNothing() bool {
	return !m.tag
}

// Get returns the value and an indicator wether it is set.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.tag
}

// WithDefault returns the value if set, def otherwise.
func (m Maybe[T]) WithDefault(def T) T {
	if m.tag {
		return m.value
	}
	return def
}

// Map applies f to a set value.
func (m Maybe[T]) Map(f func(T) T) Maybe[T] {
	if m.tag {
		return Just(f(m.value))
	}
	return m
}

// Equal compares two Maybe values. Unset values are equal to each other.
func (m Maybe[T]) Equal(other Maybe[T]) bool {
	return m == other
}

func (m Maybe[T]) String() string {
	if m.tag {
		return fmt.Sprintf("Just(%v)", m.value)
	}
	return "Nothing"
}

// AndThen chains a computation which may fail to produce a value.
func AndThen[T, S comparable](x Maybe[T], f func(T) Maybe[S]) Maybe[S] {
	var v T
	switch m := x.Match(); m {
	case m.Just(&v):
		return f(v)
	}
	return Nothing[S]()
}

// --- Matching --------------------------------------------------------------

// Match returns a matcher to be used in a switch statement:
//
//     var v int
//     switch m := x.Match(); m {
//     case m.Just(&v):   …
//     case m.Nothing():  …
//     }
//
func (m Maybe[T]) Match() *Matcher[T] {
	return &Matcher[T]{m: m}
}

// Matcher is a helper for pattern matching of Maybe values.
type Matcher[T comparable] struct {
	m Maybe[T]
}

// Just matches a set value and extracts it into v (which may be nil).
func (mm *Matcher[T]) Just(v *T) *Matcher[T] {
	if mm.m.tag {
		if v != nil {
			*v = mm.m.value
		}
		return mm
	}
	return nil
}

// Nothing matches an unset value.
func (mm *Matcher[T]) Nothing() *Matcher[T] {
	if !mm.m.tag {
		return mm
	}
	return nil
}
