package thing

import (
	"io"

	"jot.mleku.dev/chk"
	"jot.mleku.dev/ints"
)

// The encoder runs every rendering through one truncating sink: writes
// past the end of the buffer are dropped but still counted, so a single
// traversal serves both measuring and emitting. Callers measure with a
// nil buffer, allocate, then emit.

type sink struct {
	buf []byte
	w   int
}

func (s *sink) put(c byte) {
	if s.w < len(s.buf) {
		s.buf[s.w] = c
	}
	s.w++
}

func (s *sink) puts(b []byte) {
	if s.w < len(s.buf) {
		copy(s.buf[s.w:], b)
	}
	s.w += len(b)
}

func (s *sink) putString(str string) {
	if s.w < len(s.buf) {
		copy(s.buf[s.w:], str)
	}
	s.w += len(str)
}

func (s *sink) indent(n int) {
	for ; n > 0; n-- {
		s.put(' ')
	}
}

const hexDigits = "0123456789abcdef"

func (s *sink) putEscaped(v int) {
	s.put('\\')
	s.put('u')
	s.put(hexDigits[v>>12&0xf])
	s.put(hexDigits[v>>8&0xf])
	s.put(hexDigits[v>>4&0xf])
	s.put(hexDigits[v&0xf])
}

func (s *sink) putInt(v int64) {
	var scratch [20]byte
	u := uint64(v)
	if v < 0 {
		s.put('-')
		// the minimum value wraps to exactly 1<<63, the right magnitude
		u = uint64(-v)
	}
	s.puts(ints.New(u).Marshal(scratch[:0]))
}

func (s *sink) putUint(u uint64) {
	var scratch [20]byte
	s.puts(ints.New(u).Marshal(scratch[:0]))
}

func (s *sink) putFloat(f float64) {
	var scratch [32]byte
	s.puts(FormatFloat(scratch[:0], f))
}

// encodeStringValue emits b quoted. ASCII control bytes and DEL take the
// named escapes or \u form, two byte sequences for the Latin-1 control
// range collapse to \u00xx, backslash and quote are escaped, everything
// else passes through raw.
func encodeStringValue(s *sink, b []byte) {
	s.put('"')
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case c&0xe0 == 0 || c == 0x7f:
			switch c {
			case '\b':
				s.putString(`\b`)
			case '\f':
				s.putString(`\f`)
			case '\n':
				s.putString(`\n`)
			case '\r':
				s.putString(`\r`)
			case '\t':
				s.putString(`\t`)
			default:
				s.putEscaped(int(c))
			}
		case c == 0xc2 && i+1 < len(b) && b[i+1]&0xe0 == 0x80:
			s.putEscaped(int(c&0x1f)<<6 | int(b[i+1]&0x3f))
			i++
		case c == '\\' || c == '"':
			s.put('\\')
			s.put(c)
		default:
			s.put(c)
		}
	}
	s.put('"')
}

func (t *T) encode(s *sink) {
	switch t.Kind() {
	case Array:
		s.put('[')
		for i, el := range t.el {
			if i > 0 {
				s.put(',')
			}
			el.encode(s)
		}
		s.put(']')
	case Object:
		s.put('{')
		for i := range t.fl {
			if i > 0 {
				s.put(',')
			}
			encodeStringValue(s, t.fl[i].Key)
			s.put(':')
			t.fl[i].Value.encode(s)
		}
		s.put('}')
	case String:
		encodeStringValue(s, t.s)
	case Integer:
		s.putInt(t.i)
	case Unsigned:
		s.putUint(t.u)
	case Float:
		s.putFloat(t.f)
	case Boolean:
		if t.b {
			s.putString("true")
		} else {
			s.putString("false")
		}
	case Null:
		s.putString("null")
	case Raw:
		s.puts(t.s)
	}
}

func (t *T) pretty(s *sink, margin, indent int) {
	switch t.Kind() {
	case Array:
		s.put('[')
		if len(t.el) > 0 {
			deeper := margin + indent
			for i, el := range t.el {
				if i > 0 {
					s.put(',')
				}
				s.put('\n')
				s.indent(deeper)
				el.pretty(s, deeper, indent)
			}
			s.put('\n')
			s.indent(margin)
		}
		s.put(']')
	case Object:
		s.put('{')
		if len(t.fl) > 0 {
			deeper := margin + indent
			for i := range t.fl {
				if i > 0 {
					s.put(',')
				}
				s.put('\n')
				s.indent(deeper)
				encodeStringValue(s, t.fl[i].Key)
				s.putString(": ")
				t.fl[i].Value.pretty(s, deeper, indent)
			}
			s.put('\n')
			s.indent(margin)
		}
		s.put('}')
	default:
		t.encode(s)
	}
}

// EncodeTo writes the compact encoding of t into buf and returns the size
// of the complete encoding whether or not it fit. A nil buf measures;
// a return larger than len(buf) means the output was truncated.
func (t *T) EncodeTo(buf []byte) int {
	s := sink{buf: buf}
	t.encode(&s)
	return s.w
}

// PrettyTo is EncodeTo for the indented form. Every line after the first
// starts at leftMargin spaces plus indent per nesting level; the first
// line is not indented and no newline follows the last.
func (t *T) PrettyTo(buf []byte, leftMargin, indent int) int {
	s := sink{buf: buf}
	t.pretty(&s, leftMargin, indent)
	return s.w
}

// Marshal appends the compact encoding of t to dst.
func (t *T) Marshal(dst []byte) (b []byte) {
	n := t.EncodeTo(nil)
	b = dst
	if cap(b)-len(b) < n {
		grown := make([]byte, len(b), len(b)+n)
		copy(grown, b)
		b = grown
	}
	t.EncodeTo(b[len(b) : len(b)+n])
	b = b[:len(b)+n]
	return
}

// MarshalIndented appends the indented form of t to dst.
func (t *T) MarshalIndented(dst []byte, leftMargin, indent int) (b []byte) {
	n := t.PrettyTo(nil, leftMargin, indent)
	b = dst
	if cap(b)-len(b) < n {
		grown := make([]byte, len(b), len(b)+n)
		copy(grown, b)
		b = grown
	}
	t.PrettyTo(b[len(b):len(b)+n], leftMargin, indent)
	b = b[:len(b)+n]
	return
}

// Dump writes t to w indented by two spaces per level, with a trailing
// newline. Handy for logs and command line output.
func (t *T) Dump(w io.Writer) (n int, err error) {
	b := t.MarshalIndented(nil, 0, 2)
	b = append(b, '\n')
	if n, err = w.Write(b); chk.E(err) {
		return
	}
	return
}
