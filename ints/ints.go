// Package ints is an optimised codec for unsigned decimal numbers in ASCII
// form. Encoding works in base 10000 against a lookup table, four digits
// per step, which beats strconv for the number shapes JSON documents are
// full of. Decoding accumulates digit by digit and reports overflow instead
// of guessing, so a caller can fall back to a wider representation of the
// same span.
package ints

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"jot.mleku.dev/errorf"
)

const base = 10000

// base10k holds the four digit renderings of 0000 through 9999 back to
// back, built once at startup.
var base10k = func() (tab []byte) {
	tab = make([]byte, 0, base*4)
	for i := 0; i < base; i++ {
		tab = append(tab,
			byte('0'+i/1000),
			byte('0'+i/100%10),
			byte('0'+i/10%10),
			byte('0'+i%10),
		)
	}
	return
}()

var powers = []uint64{
	1,
	1_0000,
	1_0000_0000,
	1_0000_0000_0000,
	1_0000_0000_0000_0000,
}

const zero = '0'
const nine = '9'

// ErrOverflow reports a digit run too large for a uint64.
var ErrOverflow = errors.New("decimal overflows uint64")

// T carries one uint64 through the codec.
type T struct {
	N uint64
}

// New wraps any integer value, reinterpreted as its uint64 magnitude.
func New[V constraints.Integer](n V) *T { return &T{uint64(n)} }

func (n *T) Uint64() uint64 { return n.N }
func (n *T) Int64() int64   { return int64(n.N) }

// Marshal appends the decimal rendering of n.N to dst.
func (n *T) Marshal(dst []byte) (b []byte) {
	b = dst
	if n.N == 0 {
		b = append(b, zero)
		return
	}
	v := n.N
	var trimmed bool
	k := len(powers)
	for k > 0 {
		k--
		q := v / powers[k]
		if !trimmed && q == 0 {
			continue
		}
		bb := base10k[q*4 : q*4+4]
		if !trimmed {
			for i := range bb {
				if bb[i] != zero {
					bb = bb[i:]
					trimmed = true
					break
				}
			}
		}
		b = append(b, bb...)
		v -= q * powers[k]
	}
	return
}

// Unmarshal reads the digit run at the start of b into n.N and returns the
// remainder from the first non-digit on. Overflow is detected by the
// accumulated value shrinking across a multiply-add step; the digits are
// still consumed, n.N is left alone and ErrOverflow comes back.
func (n *T) Unmarshal(b []byte) (r []byte, err error) {
	if len(b) == 0 {
		err = io.EOF
		return
	}
	if b[0] < zero || b[0] > nine {
		err = errorf.E("no digits at %q", b[0])
		return
	}
	var i int
	var value uint64
	for ; i < len(b) && b[i] >= zero && b[i] <= nine; i++ {
		next := value*10 + uint64(b[i]-zero)
		if next < value {
			err = ErrOverflow
		}
		value = next
	}
	r = b[i:]
	if err == nil {
		n.N = value
	}
	return
}
