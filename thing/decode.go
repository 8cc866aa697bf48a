package thing

import (
	"io"

	"jot.mleku.dev/chk"
	"jot.mleku.dev/errorf"
)

// MaxNesting caps container depth while decoding, so adversarial input
// cannot run the host stack out from under the recursive descent.
const MaxNesting = 200

// Decode parses one complete JSON document out of b. The document must
// fill b apart from trailing whitespace; anything after it is an error.
// Truncated input comes back as io.EOF, malformed input as an error naming
// the offending byte. Nothing of a failed parse survives.
func Decode(b []byte) (t *T, err error) {
	var rem []byte
	if t, rem, err = decode(b, MaxNesting); chk.E(err) {
		t = nil
		return
	}
	rem = skipWs(rem)
	if len(rem) > 0 {
		err = errorf.E("trailing data after document: '%c'", rem[0])
		t = nil
		return
	}
	return
}

func skipWs(b []byte) []byte {
	var i int
	for ; i < len(b); i++ {
		switch b[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return b[i:]
		}
	}
	return b[i:]
}

func decode(b []byte, levels int) (t *T, rem []byte, err error) {
	if levels == 0 {
		err = errorf.E("nesting deeper than %d levels", MaxNesting)
		return
	}
	b = skipWs(b)
	if len(b) == 0 {
		err = io.EOF
		return
	}
	c := b[0]
	switch {
	case c == '[':
		return decodeArray(b, levels)
	case c == '{':
		return decodeObject(b, levels)
	case c == '"':
		return decodeString(b)
	case c == '-':
		return decodeNegativeNumber(b)
	case c == 't':
		return decodeLiteral(b, "true", NewBool(true))
	case c == 'f':
		return decodeLiteral(b, "false", NewBool(false))
	case c == 'n':
		return decodeLiteral(b, "null", NewNull())
	case c >= '0' && c <= '9':
		return decodeNumber(b)
	default:
		err = errorf.E("unexpected character '%c'", c)
		return
	}
}

func decodeLiteral(b []byte, lit string, v *T) (t *T, rem []byte, err error) {
	if len(b) < len(lit) {
		err = io.EOF
		return
	}
	for i := 0; i < len(lit); i++ {
		if b[i] != lit[i] {
			err = errorf.E("unexpected character '%c' in '%s'", b[i], lit)
			return
		}
	}
	t, rem = v, b[len(lit):]
	return
}

func decodeArray(b []byte, levels int) (t *T, rem []byte, err error) {
	a := NewArray()
	b = skipWs(b[1:])
	if len(b) == 0 {
		err = io.EOF
		return
	}
	if b[0] == ']' {
		t, rem = a, b[1:]
		return
	}
	for {
		var el *T
		if el, b, err = decode(b, levels-1); chk.E(err) {
			return
		}
		a.Append(el)
		b = skipWs(b)
		if len(b) == 0 {
			err = io.EOF
			return
		}
		if b[0] == ']' {
			t, rem = a, b[1:]
			return
		}
		if b[0] != ',' {
			err = errorf.E("expected ',' or ']', got '%c'", b[0])
			return
		}
		b = skipWs(b[1:])
	}
}

func decodeObject(b []byte, levels int) (t *T, rem []byte, err error) {
	o := NewObject()
	b = skipWs(b[1:])
	if len(b) == 0 {
		err = io.EOF
		return
	}
	if b[0] == '}' {
		t, rem = o, b[1:]
		return
	}
	for {
		var key []byte
		if key, b, err = decodeStringValue(b); chk.E(err) {
			return
		}
		b = skipWs(b)
		if len(b) == 0 {
			err = io.EOF
			return
		}
		if b[0] != ':' {
			err = errorf.E("expected ':' after object key, got '%c'", b[0])
			return
		}
		var v *T
		if v, b, err = decode(b[1:], levels-1); chk.E(err) {
			return
		}
		o.addField(key, v)
		b = skipWs(b)
		if len(b) == 0 {
			err = io.EOF
			return
		}
		if b[0] == '}' {
			t, rem = o, b[1:]
			return
		}
		if b[0] != ',' {
			err = errorf.E("expected ',' or '}', got '%c'", b[0])
			return
		}
		b = skipWs(b[1:])
	}
}

func decodeString(b []byte) (t *T, rem []byte, err error) {
	var s []byte
	if s, rem, err = decodeStringValue(b); chk.E(err) {
		return
	}
	t = AdoptString(s)
	return
}

// decodeStringValue decodes the quoted string at the start of b into a
// fresh exactly sized buffer. The first pass validates the entire
// representation and measures the decoded length, so a corrupt string
// allocates nothing and leaves nothing half built.
func decodeStringValue(b []byte) (s, rem []byte, err error) {
	var n int
	if n, err = scanStringRepr(b); chk.E(err) {
		return
	}
	s = make([]byte, 0, n)
	// the scan above validated everything, the fill pass runs unchecked
	p := b[1:]
	for p[0] != '"' {
		if p[0] != '\\' {
			s = append(s, p[0])
			p = p[1:]
			continue
		}
		switch p[1] {
		case 'b':
			s = append(s, '\b')
			p = p[2:]
		case 'f':
			s = append(s, '\f')
			p = p[2:]
		case 'n':
			s = append(s, '\n')
			p = p[2:]
		case 'r':
			s = append(s, '\r')
			p = p[2:]
		case 't':
			s = append(s, '\t')
			p = p[2:]
		case 'u':
			var unic int
			unic, p, _ = scanUTF16(p[2:])
			s = appendUTF8(s, unic)
		default:
			s = append(s, p[1])
			p = p[2:]
		}
	}
	rem = p[1:]
	return
}

// scanStringRepr validates the quoted string at the start of b and
// returns its decoded byte length. Escaped bytes outside ASCII are
// rejected; a backslash before any other character that is not one of the
// named escapes or 'u' passes that character through.
func scanStringRepr(b []byte) (n int, err error) {
	if len(b) == 0 {
		err = io.EOF
		return
	}
	if b[0] != '"' {
		err = errorf.E("expected string, got '%c'", b[0])
		return
	}
	p := b[1:]
	for len(p) > 0 {
		switch p[0] {
		case '"':
			return
		case '\\':
			if len(p) < 2 {
				err = io.EOF
				return
			}
			c := p[1]
			if c&0x80 != 0 {
				err = errorf.E("escaped byte 0x%02x", c)
				return
			}
			if c != 'u' {
				n++
				p = p[2:]
				continue
			}
			var unic int
			if unic, p, err = scanUTF16(p[2:]); chk.E(err) {
				return
			}
			n += utf8Length(unic)
		default:
			var adv int
			if adv, err = skipUTF8(p); chk.E(err) {
				return
			}
			n += adv
			p = p[adv:]
		}
	}
	err = io.EOF
	return
}

// scanUTF16 reads one \u escape starting at its first hex digit, pairing
// surrogates, and returns the code point.
func scanUTF16(p []byte) (unic int, rem []byte, err error) {
	var hi int
	if hi, p, err = scanUCS2(p); chk.E(err) {
		return
	}
	if lowSurrogate(hi) {
		err = errorf.E("stray low surrogate %04x", hi)
		return
	}
	if !highSurrogate(hi) {
		unic, rem = hi, p
		return
	}
	if len(p) < 2 {
		err = io.EOF
		return
	}
	if p[0] != '\\' || p[1] != 'u' {
		err = errorf.E("high surrogate %04x not followed by an escape", hi)
		return
	}
	var lo int
	if lo, p, err = scanUCS2(p[2:]); chk.E(err) {
		return
	}
	if !lowSurrogate(lo) {
		err = errorf.E("high surrogate %04x followed by %04x", hi, lo)
		return
	}
	unic = 0x10000 + ((hi-0xd800)<<10 | (lo - 0xdc00))
	if !validUnicode(unic) {
		err = errorf.E("invalid code point %x", unic)
		return
	}
	rem = p
	return
}

func scanUCS2(p []byte) (v int, rem []byte, err error) {
	if len(p) < 4 {
		err = io.EOF
		return
	}
	for i := 0; i < 4; i++ {
		d := hexDigit(p[i])
		if d < 0 {
			err = errorf.E("bad hex digit '%c'", p[i])
			return
		}
		v = v<<4 | d
	}
	rem = p[4:]
	return
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

func highSurrogate(u int) bool { return u >= 0xd800 && u <= 0xdbff }

func lowSurrogate(u int) bool { return u >= 0xdc00 && u <= 0xdfff }

func validUnicode(u int) bool {
	return u >= 0 && u <= 0xd7ff || u >= 0xe000 && u <= 0x10ffff
}

// skipUTF8 checks the structural shape of one UTF-8 sequence at the start
// of p: lead byte pattern and continuation count only, no overlong or
// range policing. It returns the sequence length.
func skipUTF8(p []byte) (n int, err error) {
	c0 := p[0]
	if c0&0x80 == 0 {
		n = 1
		return
	}
	if c0&0x40 == 0 {
		err = errorf.E("stray continuation byte 0x%02x", c0)
		return
	}
	n = 2
	if c0&0x20 != 0 {
		n = 3
		if c0&0x10 != 0 {
			if c0&0x08 != 0 {
				err = errorf.E("invalid lead byte 0x%02x", c0)
				return
			}
			n = 4
		}
	}
	if len(p) < n {
		err = io.EOF
		return
	}
	for i := 1; i < n; i++ {
		if p[i]&0xc0 != 0x80 {
			err = errorf.E("bad continuation byte 0x%02x", p[i])
			return
		}
	}
	return
}

func utf8Length(unic int) int {
	switch {
	case unic < 0x80:
		return 1
	case unic < 0x800:
		return 2
	case unic < 0x10000:
		return 3
	}
	return 4
}

func appendUTF8(s []byte, unic int) []byte {
	switch {
	case unic < 0x80:
		return append(s, byte(unic))
	case unic < 0x800:
		return append(s, byte(0xc0|unic>>6), byte(0x80|unic&0x3f))
	case unic < 0x10000:
		return append(s,
			byte(0xe0|unic>>12), byte(0x80|unic>>6&0x3f), byte(0x80|unic&0x3f))
	default:
		return append(s,
			byte(0xf0|unic>>18), byte(0x80|unic>>12&0x3f),
			byte(0x80|unic>>6&0x3f), byte(0x80|unic&0x3f))
	}
}

func decodeNumber(b []byte) (t *T, rem []byte, err error) {
	var lit []byte
	var dot bool
	var expAt int
	if lit, rem, dot, expAt, err = scanNumber(b); chk.E(err) {
		return
	}
	if t, err = classify(lit, dot, expAt); chk.E(err) {
		return
	}
	return
}

func decodeNegativeNumber(b []byte) (t *T, rem []byte, err error) {
	if t, rem, err = decodeNumber(b[1:]); chk.E(err) {
		return
	}
	t = negate(t)
	return
}

// scanNumber consumes the integral run, an optional fraction and an
// optional exponent. dot and expAt key the classifier's path choice;
// expAt is the offset of the exponent marker within lit, -1 without one.
func scanNumber(b []byte) (lit, rem []byte, dot bool, expAt int, err error) {
	expAt = -1
	var i int
	if i, err = scanIntegral(b, 0); chk.E(err) {
		return
	}
	if i < len(b) && b[i] == '.' {
		dot = true
		if i, err = scanIntegral(b, i+1); chk.E(err) {
			return
		}
	}
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		expAt = i
		i++
		if i < len(b) && (b[i] == '+' || b[i] == '-') {
			i++
		}
		if i, err = scanIntegral(b, i); chk.E(err) {
			return
		}
	}
	lit, rem = b[:i], b[i:]
	return
}

// scanIntegral requires at least one digit at i and returns the index
// just past the run.
func scanIntegral(b []byte, i int) (j int, err error) {
	if i >= len(b) {
		err = io.EOF
		return
	}
	if b[i] < '0' || b[i] > '9' {
		err = errorf.E("expected digit, got '%c'", b[i])
		return
	}
	for j = i; j < len(b) && b[j] >= '0' && b[j] <= '9'; j++ {
	}
	return
}
