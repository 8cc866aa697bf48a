// Package thing models JSON documents as trees of dynamically typed
// values.
//
// A value is one of null, boolean, integer, unsigned, float, string,
// array, object or raw. Raw carries pre-encoded text that the encoder
// emits verbatim and the comparator decodes on demand, which lets a caller
// splice an already encoded document into a larger one without a decode
// round trip.
//
// Trees are not synchronized, and object lookups are not free of side
// effects: Get may build an internal field index. Sharing a tree across
// goroutines needs external locking even when every caller only reads.
package thing

import (
	"golang.org/x/exp/constraints"
)

// Kind discriminates the value payload. The zero Kind is Null, so the zero
// T is a well formed null value.
type Kind byte

const (
	Null Kind = iota
	Boolean
	Integer
	Unsigned
	Float
	String
	Array
	Object
	Raw
)

var kindNames = []string{
	"null", "boolean", "integer", "unsigned", "float", "string", "array",
	"object", "raw",
}

// String names the kind for diagnostics.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

// Field is one key/value member of an object. Repeated keys are kept in
// insertion order rather than overwritten.
type Field struct {
	Key   []byte
	Value *T
}

// T is a single JSON value. Which payload field is live depends on the
// kind; the rest stay zero.
type T struct {
	kind Kind
	b    bool
	i    int64
	u    uint64
	f    float64
	s    []byte
	el   []*T
	fl   []Field
	idx  map[string]*T
	cost int
}

func NewNull() *T { return &T{} }

func NewBool(b bool) *T { return &T{kind: Boolean, b: b} }

// NewInteger wraps a signed number.
func NewInteger[V constraints.Signed](n V) *T {
	return &T{kind: Integer, i: int64(n)}
}

// NewUnsigned wraps an unsigned number.
func NewUnsigned[V constraints.Unsigned](n V) *T {
	return &T{kind: Unsigned, u: uint64(n)}
}

func NewFloat(f float64) *T { return &T{kind: Float, f: f} }

// NewString copies s into a fresh string value.
func NewString(s string) *T { return &T{kind: String, s: []byte(s)} }

// AdoptString wraps b as a string value without copying. The caller gives
// up the slice.
func AdoptString(b []byte) *T { return &T{kind: String, s: b} }

// NewRaw wraps already encoded text. The encoder emits it verbatim and the
// comparator decodes it on demand, so nothing checks here whether b is
// actually valid.
func NewRaw(b []byte) *T { return &T{kind: Raw, s: b} }

func NewArray(els ...*T) *T { return &T{kind: Array, el: els} }

func NewObject() *T { return &T{kind: Object} }

// Kind reports the shape of the value. A nil T is Null.
func (t *T) Kind() Kind {
	if t == nil {
		return Null
	}
	return t.kind
}

// Len reports the element count of an array or the field count of an
// object, with repeated keys counted separately. Everything else is zero.
func (t *T) Len() int {
	switch t.Kind() {
	case Array:
		return len(t.el)
	case Object:
		return len(t.fl)
	}
	return 0
}

// The payload accessors are strict: each answers only for its own kind and
// returns the zero value otherwise. Cross type numeric reads go through
// the As casts instead.

func (t *T) Bool() bool {
	if t.Kind() == Boolean {
		return t.b
	}
	return false
}

func (t *T) Int() int64 {
	if t.Kind() == Integer {
		return t.i
	}
	return 0
}

func (t *T) Uint() uint64 {
	if t.Kind() == Unsigned {
		return t.u
	}
	return 0
}

func (t *T) Float() float64 {
	if t.Kind() == Float {
		return t.f
	}
	return 0
}

// Text returns a string value's payload as a Go string.
func (t *T) Text() string {
	if t.Kind() == String {
		return string(t.s)
	}
	return ""
}

// Bytes exposes a string value's backing bytes without copying.
func (t *T) Bytes() []byte {
	if t.Kind() == String {
		return t.s
	}
	return nil
}

// RawBytes exposes a raw value's encoded text without copying.
func (t *T) RawBytes() []byte {
	if t.Kind() == Raw {
		return t.s
	}
	return nil
}

// At returns an array's i'th element, nil when out of range or not an
// array.
func (t *T) At(i int) *T {
	if t.Kind() != Array || i < 0 || i >= len(t.el) {
		return nil
	}
	return t.el[i]
}

// Elements exposes an array's backing slice for iteration. Treat it as
// read only.
func (t *T) Elements() []*T {
	if t.Kind() != Array {
		return nil
	}
	return t.el
}

// Fields exposes an object's backing slice for iteration. Treat it as read
// only; mutating through it bypasses the index bookkeeping.
func (t *T) Fields() []Field {
	if t.Kind() != Object {
		return nil
	}
	return t.fl
}

// Append adds elements to the end of an array and returns t for chaining.
// Anything but an array ignores the call.
func (t *T) Append(els ...*T) *T {
	if t.Kind() != Array {
		return t
	}
	t.el = append(t.el, els...)
	return t
}

// Add appends a field to an object and returns t for chaining. An earlier
// field with the same key keeps winning lookups, so adding a duplicate has
// no visible effect until the earlier one is popped or an index is built.
// Anything but an object ignores the call.
func (t *T) Add(key string, v *T) *T {
	if t.Kind() != Object {
		return t
	}
	t.clobber()
	t.fl = append(t.fl, Field{Key: []byte(key), Value: v})
	return t
}

// addField appends without copying the key. Decoder use only: the object
// under construction has no index to clobber.
func (t *T) addField(key []byte, v *T) {
	t.fl = append(t.fl, Field{Key: key, Value: v})
}

// Pop removes the first field named key and returns its value, nil when no
// such field exists. The call alone counts as a mutation: a built index is
// dropped before the scan, hit or miss.
func (t *T) Pop(key string) *T {
	if t.Kind() != Object {
		return nil
	}
	t.clobber()
	for i := range t.fl {
		if string(t.fl[i].Key) == key {
			v := t.fl[i].Value
			t.fl = append(t.fl[:i], t.fl[i+1:]...)
			return v
		}
	}
	return nil
}

// Clone returns a deep copy sharing no memory with t. Indexes do not carry
// over; the copy earns its own if its access pattern warrants one. The
// traversal runs on an explicit work stack so a tree nested far beyond
// anything the decoder would accept still clones without growing the call
// stack.
func (t *T) Clone() (c *T) {
	if t == nil {
		return
	}
	type frame struct {
		src, dst *T
	}
	c = &T{}
	stack := []frame{{t, c}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		src, dst := fr.src, fr.dst
		dst.kind = src.kind
		switch src.kind {
		case Boolean:
			dst.b = src.b
		case Integer:
			dst.i = src.i
		case Unsigned:
			dst.u = src.u
		case Float:
			dst.f = src.f
		case String, Raw:
			dst.s = append([]byte(nil), src.s...)
		case Array:
			dst.el = make([]*T, len(src.el))
			for i, el := range src.el {
				if el == nil {
					continue
				}
				dst.el[i] = &T{}
				stack = append(stack, frame{el, dst.el[i]})
			}
		case Object:
			dst.fl = make([]Field, len(src.fl))
			for i := range src.fl {
				dst.fl[i].Key = append([]byte(nil), src.fl[i].Key...)
				if src.fl[i].Value == nil {
					continue
				}
				dst.fl[i].Value = &T{}
				stack = append(stack, frame{src.fl[i].Value, dst.fl[i].Value})
			}
		}
	}
	return
}
