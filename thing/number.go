package thing

import (
	"math"

	"jot.mleku.dev/errorf"
	"jot.mleku.dev/ints"
)

// Number literal classification. The scanner hands over spans it has
// already validated against the grammar; this side picks the narrowest
// representation that holds the value.

// classifyDigits turns a plain digit run into Integer when the value fits
// the non negative signed range, Unsigned above that. nil means the run
// overflows and the caller should take the float path. The overflow check
// is the running value never shrinking across a multiply and add, which a
// narrow band of wrapped products near the top of the unsigned range can
// slip past; such a run classifies as whatever it wrapped to.
func classifyDigits(lit []byte) (t *T) {
	n := ints.New(0)
	if _, err := n.Unmarshal(lit); err != nil {
		return
	}
	u := n.Uint64()
	if int64(u) >= 0 {
		return NewInteger(int64(u))
	}
	return NewUnsigned(u)
}

// foldExponent keeps an exponent form without a decimal point on the
// integer path: mantissa times ten to the exponent, all in uint64. A
// negative exponent or any overflow returns nil and the literal takes the
// float path instead. A folded result is always Unsigned.
func foldExponent(mant, exp []byte) (t *T) {
	if len(exp) > 0 && exp[0] == '+' {
		exp = exp[1:]
	} else if len(exp) > 0 && exp[0] == '-' {
		return
	}
	m := ints.New(0)
	if _, err := m.Unmarshal(mant); err != nil {
		return
	}
	e := ints.New(0)
	if _, err := e.Unmarshal(exp); err != nil {
		return
	}
	u := m.Uint64()
	for k := e.Uint64(); k > 0 && u != 0; k-- {
		if u > math.MaxUint64/10 {
			return
		}
		u *= 10
	}
	return NewUnsigned(u)
}

// classifyFloat runs the pluggable parser and applies the representation
// policy: subnormal and zero results collapse to plus zero, NaN and
// infinite ones fail the decode.
func classifyFloat(lit []byte) (t *T, err error) {
	f, perr := ParseFloat(lit)
	if perr != nil {
		err = errorf.E("bad number '%s': %v", lit, perr)
		return
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		err = errorf.E("number '%s' out of range", lit)
		return
	}
	if f == 0 || math.Abs(f) < 0x1p-1022 {
		f = 0
	}
	t = NewFloat(f)
	return
}

// classify picks the representation for a scanned literal. dot reports a
// decimal point anywhere in lit; expAt is the offset of the exponent
// marker, -1 when there is none.
func classify(lit []byte, dot bool, expAt int) (t *T, err error) {
	switch {
	case !dot && expAt < 0:
		if t = classifyDigits(lit); t != nil {
			return
		}
	case !dot && expAt >= 0:
		if t = foldExponent(lit[:expAt], lit[expAt+1:]); t != nil {
			return
		}
	}
	return classifyFloat(lit)
}

// negate applies a leading minus sign to a classified number, reflecting
// across representation boundaries where the negation does not fit.
func negate(t *T) *T {
	switch t.kind {
	case Unsigned:
		// 1<<63 itself reinterprets to exactly the minimum signed value
		if t.u <= 1<<63 {
			return NewInteger(-int64(t.u))
		}
		return NewFloat(-float64(t.u))
	case Integer:
		if t.i == math.MinInt64 {
			return NewUnsigned(uint64(t.i))
		}
		return NewInteger(-t.i)
	default:
		return NewFloat(-t.f)
	}
}
