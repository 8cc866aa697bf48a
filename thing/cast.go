package thing

import "math"

// Integer range boundaries in float form. 1<<63 and 1<<64 are exactly
// representable as doubles; anything at or above them is out of range for
// the corresponding integer kind.
const (
	maxIntF  = float64(1 << 63)
	maxUintF = float64(1 << 64)
)

// AsInt reads any numeric value as a signed integer when that loses
// nothing: Integer always, Unsigned within the signed range, Float only
// when integral and in range. The bool reports success.
func (t *T) AsInt() (n int64, ok bool) {
	switch t.Kind() {
	case Integer:
		return t.i, true
	case Unsigned:
		if int64(t.u) < 0 {
			return
		}
		return int64(t.u), true
	case Float:
		f := t.f
		if f != math.Trunc(f) || f < -maxIntF || f >= maxIntF {
			return
		}
		return int64(f), true
	}
	return
}

// AsUint is AsInt for the unsigned range.
func (t *T) AsUint() (n uint64, ok bool) {
	switch t.Kind() {
	case Integer:
		if t.i < 0 {
			return
		}
		return uint64(t.i), true
	case Unsigned:
		return t.u, true
	case Float:
		f := t.f
		if f != math.Trunc(f) || f < 0 || f >= maxUintF {
			return
		}
		return uint64(f), true
	}
	return
}

// AsFloat reads any numeric value as a double. The 64 bit integer kinds
// round; magnitude survives, the low bits may not.
func (t *T) AsFloat() (f float64, ok bool) {
	switch t.Kind() {
	case Integer:
		return float64(t.i), true
	case Unsigned:
		return float64(t.u), true
	case Float:
		return t.f, true
	}
	return
}

// AsBool reads a boolean value, reporting failure on any other kind. Like
// the rest of the As family it is safe on a nil receiver, so it chains off
// Get and Dig without a check in between.
func (t *T) AsBool() (b bool, ok bool) {
	if t.Kind() == Boolean {
		return t.b, true
	}
	return
}

// AsText reads a string value's payload, reporting failure on any other
// kind.
func (t *T) AsText() (s string, ok bool) {
	if t.Kind() == String {
		return string(t.s), true
	}
	return
}

// AsBytes is AsText without the copy. Treat the slice as read only.
func (t *T) AsBytes() (b []byte, ok bool) {
	if t.Kind() == String {
		return t.s, true
	}
	return
}
