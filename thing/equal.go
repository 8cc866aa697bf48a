package thing

import (
	"bytes"
	"math"
)

// Equal reports whether t and u represent the same value, with tolerance
// bounding the relative error accepted between floats. Numeric kinds
// compare across representations when the values line up, so Integer 7,
// Unsigned 7 and Float 7.0 are all equal. Object comparison is order
// independent and builds the field index of the right hand side; see
// ensureIndex for what that does to repeated keys. A Raw operand is
// decoded on demand, and raw text that does not parse compares unequal to
// everything.
func (t *T) Equal(u *T, tolerance float64) bool {
	if u.Kind() == Raw {
		dec, err := Decode(u.s)
		if err != nil {
			return false
		}
		return t.Equal(dec, tolerance)
	}
	switch t.Kind() {
	case Array:
		return u.Kind() == Array && equalArrays(t, u, tolerance)
	case Object:
		return u.Kind() == Object && equalObjects(t, u, tolerance)
	case String:
		return u.Kind() == String && bytes.Equal(t.s, u.s)
	case Integer:
		return equalToInteger(t.i, u, tolerance)
	case Unsigned:
		return equalToUnsigned(t.u, u, tolerance)
	case Float:
		return equalToFloat(t.f, u, tolerance)
	case Boolean:
		return u.Kind() == Boolean && t.b == u.b
	case Raw:
		return u.Equal(t, tolerance)
	default:
		return u.Kind() == Null
	}
}

func equalArrays(a, b *T, tolerance float64) bool {
	if len(a.el) != len(b.el) {
		return false
	}
	for i := range a.el {
		if !a.el[i].Equal(b.el[i], tolerance) {
			return false
		}
	}
	return true
}

// equalObjects counts repeated keys on both sides, then resolves each left
// field against the right side's index, so a repeat beyond what the index
// retained never matches.
func equalObjects(a, b *T, tolerance float64) bool {
	if len(a.fl) != len(b.fl) {
		return false
	}
	b.ensureIndex()
	for i := range a.fl {
		bval := b.Get(string(a.fl[i].Key))
		if bval == nil || !a.fl[i].Value.Equal(bval, tolerance) {
			return false
		}
	}
	return true
}

func equalDoubles(a, b, tolerance float64) bool {
	return a == b ||
		math.Abs(b-a)/math.Max(math.Abs(a), math.Abs(b)) < tolerance
}

func equalToInteger(n int64, b *T, tolerance float64) bool {
	switch b.Kind() {
	case Integer:
		return n == b.i
	case Unsigned:
		return n >= 0 && uint64(n) == b.u
	case Float:
		return equalDoubles(float64(n), b.f, tolerance)
	}
	return false
}

func equalToUnsigned(n uint64, b *T, tolerance float64) bool {
	switch b.Kind() {
	case Integer:
		return b.i >= 0 && n == uint64(b.i)
	case Unsigned:
		return n == b.u
	case Float:
		return equalDoubles(float64(n), b.f, tolerance)
	}
	return false
}

func equalToFloat(n float64, b *T, tolerance float64) bool {
	switch b.Kind() {
	case Integer:
		return equalDoubles(n, float64(b.i), tolerance)
	case Unsigned:
		return equalDoubles(n, float64(b.u), tolerance)
	case Float:
		return equalDoubles(n, b.f, tolerance)
	}
	return false
}
