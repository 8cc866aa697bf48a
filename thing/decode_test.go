package thing

import (
	"io"
	"math"
	"strings"
	"testing"

	"lukechampine.com/frand"
)

func mustDecode(t *testing.T, in string) *T {
	t.Helper()
	v, err := Decode([]byte(in))
	if err != nil {
		t.Fatalf("%q: %v", in, err)
	}
	return v
}

func wantError(t *testing.T, in string) {
	t.Helper()
	if v, err := Decode([]byte(in)); err == nil {
		t.Fatalf("%q: decoded to %s, expected an error", in, v.Marshal(nil))
	}
}

const scenario = `
{
  "string" : "\t\"¿xyzzy? 𤭢",
  "truth" : true,
  "lie" : false,
  "nothing" : null,
  "year" : 2017,
  "months" : [ 1, 3, 5, 7, 8, 10, 12 ],
  "π" : 31415.9265e-4
}
`

func TestScenario(t *testing.T) {
	v := mustDecode(t, scenario)
	compact := `{"string":"\t\"¿xyzzy? 𤭢","truth":true,"lie":false,` +
		`"nothing":null,"year":2017,"months":[1,3,5,7,8,10,12],` +
		`"π":3.14159265000000020862}`
	if got := string(v.Marshal(nil)); got != compact {
		t.Fatalf("compact:\ngot      %s\nexpected %s", got, compact)
	}
	pretty := `{
    "string": "\t\"¿xyzzy? 𤭢",
    "truth": true,
    "lie": false,
    "nothing": null,
    "year": 2017,
    "months": [
        1,
        3,
        5,
        7,
        8,
        10,
        12
    ],
    "π": 3.14159265000000020862
}`
	if got := string(v.MarshalIndented(nil, 0, 4)); got != pretty {
		t.Fatalf("pretty:\ngot\n%s\nexpected\n%s", got, pretty)
	}
	if v.Get("year").Int() != 2017 {
		t.Fatal("year lookup failed")
	}
	if v.Get("months").Len() != 7 {
		t.Fatal("months length wrong")
	}
	if v.Get("months").At(3).Int() != 7 {
		t.Fatal("months[3] wrong")
	}
	if v.Get("string").Text() != "\t\"¿xyzzy? 𤭢" {
		t.Fatalf("string payload wrong: %q", v.Get("string").Text())
	}
}

func TestNumberClassification(t *testing.T) {
	for _, tc := range []struct {
		in   string
		kind Kind
		i    int64
		u    uint64
		f    float64
	}{
		{in: "0", kind: Integer, i: 0},
		{in: "007", kind: Integer, i: 7},
		{in: "9223372036854775807", kind: Integer, i: math.MaxInt64},
		{in: "9223372036854775808", kind: Unsigned, u: 9223372036854775808},
		{in: "18446744073709551615", kind: Unsigned, u: math.MaxUint64},
		{in: "18446744073709551616", kind: Float, f: 18446744073709551616},
		// the wrap detection only notices products that land below the
		// previous value, so this one slides through as 1<<63
		{in: "46116860184273879040", kind: Unsigned, u: 9223372036854775808},
		{in: "-9223372036854775808", kind: Integer, i: math.MinInt64},
		{in: "-9223372036854775807", kind: Integer, i: -math.MaxInt64},
		{in: "-9223372036854775809", kind: Float, f: -9223372036854775809},
		{in: "-18446744073709551615", kind: Float, f: -18446744073709551615},
		{in: "4E9", kind: Unsigned, u: 4000000000},
		{in: "4e+9", kind: Unsigned, u: 4000000000},
		{in: "-4E9", kind: Integer, i: -4000000000},
		{in: "0e99999", kind: Unsigned, u: 0},
		{in: "4e-2", kind: Float, f: 0.04},
		{in: "20e19", kind: Float, f: 20e19},
		{in: "0.1", kind: Float, f: 0.1},
		{in: "-0.1", kind: Float, f: -0.1},
		{in: "31415.9265e-4", kind: Float, f: 3.14159265},
		{in: "1e-999", kind: Float, f: 0},
		{in: "1e-310", kind: Float, f: 0},
		{in: "2", kind: Integer, i: 2},
		{in: "-7", kind: Integer, i: -7},
	} {
		v := mustDecode(t, tc.in)
		if v.Kind() != tc.kind {
			t.Fatalf("%s: kind %v, expected %v", tc.in, v.Kind(), tc.kind)
		}
		switch tc.kind {
		case Integer:
			if v.Int() != tc.i {
				t.Fatalf("%s: got %d expected %d", tc.in, v.Int(), tc.i)
			}
		case Unsigned:
			if v.Uint() != tc.u {
				t.Fatalf("%s: got %d expected %d", tc.in, v.Uint(), tc.u)
			}
		case Float:
			if v.Float() != tc.f {
				t.Fatalf("%s: got %v expected %v", tc.in, v.Float(), tc.f)
			}
		}
	}
}

func TestSubnormalNegation(t *testing.T) {
	v := mustDecode(t, "-1e-310")
	if v.Kind() != Float || v.Float() != 0 {
		t.Fatalf("got %v %v", v.Kind(), v.Float())
	}
	if !math.Signbit(v.Float()) {
		t.Fatal("negated underflow lost its sign")
	}
}

func TestNumberErrors(t *testing.T) {
	for _, in := range []string{
		"1e999", "-1e999", "1e", "1e+", "1.", ".5", "-", "+1", "1..2",
		"--1", "1e--2", "0x10",
	} {
		wantError(t, in)
	}
}

func TestStringEscapes(t *testing.T) {
	for _, tc := range []struct{ in, out string }{
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"A"`, "A"},
		{`"é"`, "é"},
		{`"€"`, "€"},
		{`"𤭢"`, "𤭢"},
		{`"퟿"`, "퟿"},
		{`""`, ""},
		{`"￿"`, "￿"},
		{`"\b\f\n\r\t"`, "\b\f\n\r\t"},
		{`"\""`, `"`},
		{`"\\"`, `\`},
		{`"\/"`, "/"},
		{`"\q"`, "q"},
		{"\"\x00\"", "\x00"},
		{`"π¿"`, "π¿"},
	} {
		v := mustDecode(t, tc.in)
		if v.Kind() != String || v.Text() != tc.out {
			t.Fatalf("%s: got %q expected %q", tc.in, v.Text(), tc.out)
		}
	}
}

func TestRawControlCharactersPass(t *testing.T) {
	// raw control bytes inside a string are not rejected, they round
	// trip back out as escapes
	v := mustDecode(t, "\"a\x01b\"")
	if v.Text() != "a\x01b" {
		t.Fatalf("got %q", v.Text())
	}
	if got := string(v.Marshal(nil)); got != `"a\u0001b"` {
		t.Fatalf("re-encoded to %s", got)
	}
}

func TestStringErrors(t *testing.T) {
	for _, in := range []string{
		`"\uDC00"`,          // lone low surrogate
		`"\uD852"`,          // unterminated high surrogate
		`"\uD852x"`,         // high surrogate without escape
		`"\uD852\b"`,        // high surrogate without low
		`"\uD852\uD852"`,    // high surrogate twice
		`"\uD85"`,           // short hex run
		`"\uXYZW"`,          // bad hex digits
		"\"\\\xc3\xa9\"",    // escaped byte outside ASCII
		"\"\x80\"",          // stray continuation byte
		"\"\xf8\x80\x80\"",  // lead byte beyond four byte forms
		"\"\xc3\"",          // truncated two byte sequence
		"\"\xe2\x82\"",      // truncated three byte sequence
		"\"\xe2\x41\x82\"",  // broken continuation
		`"abc`,              // unterminated
		`"\`,                // unterminated escape
	} {
		wantError(t, in)
	}
}

func TestStructureErrors(t *testing.T) {
	for _, in := range []string{
		"", "   \n\t ", "[", "{", "[1,", "[1,]", "[1 2]", "[1;2]",
		`{"a"`, `{"a":}`, `{"a" 1}`, `{"a":1,}`, `{"a":1 "b":2}`, "{1:2}",
		"tru", "trux", "True", "falsey", "nul", "xyzzy",
		"1 x", "{} {}", "7,",
	} {
		wantError(t, in)
	}
}

func TestWhitespaceFraming(t *testing.T) {
	v := mustDecode(t, " \t\r\n 7 \t\r\n ")
	if v.Kind() != Integer || v.Int() != 7 {
		t.Fatalf("got %v", v.Kind())
	}
	if mustDecode(t, "[]").Len() != 0 {
		t.Fatal("empty array")
	}
	if mustDecode(t, " { } ").Len() != 0 {
		t.Fatal("empty object")
	}
}

func TestNestingDepth(t *testing.T) {
	deep := func(n int) string {
		return strings.Repeat("[", n) + strings.Repeat("]", n)
	}
	if _, err := Decode([]byte(deep(MaxNesting))); err != nil {
		t.Fatalf("%d empty levels rejected: %v", MaxNesting, err)
	}
	wantError(t, deep(MaxNesting+1))
	// a scalar inside the deepest level needs a level of its own
	in := strings.Repeat("[", MaxNesting) + "0" +
		strings.Repeat("]", MaxNesting)
	wantError(t, in)
	ok := strings.Repeat("[", MaxNesting-1) + "0" +
		strings.Repeat("]", MaxNesting-1)
	if _, err := Decode([]byte(ok)); err != nil {
		t.Fatalf("scalar at depth %d rejected: %v", MaxNesting-1, err)
	}
}

func TestEmptyInputIsEOF(t *testing.T) {
	if _, err := Decode(nil); err != io.EOF {
		t.Fatalf("got %v", err)
	}
	if _, err := Decode([]byte("  \n ")); err != io.EOF {
		t.Fatalf("got %v", err)
	}
}

func TestDuplicateKeysDecode(t *testing.T) {
	v := mustDecode(t, `{"k":1,"k":2}`)
	if v.Len() != 2 {
		t.Fatalf("duplicate fields collapsed: %d", v.Len())
	}
	if v.Get("k").Int() != 1 {
		t.Fatal("linear lookup did not return the first occurrence")
	}
}

var runeAlphabet = []rune("abcXYZ 0πé€𤭢\t\"\\\n/")

func randomString() string {
	var sb strings.Builder
	for i, n := 0, frand.Intn(12); i < n; i++ {
		sb.WriteRune(runeAlphabet[frand.Intn(len(runeAlphabet))])
	}
	return sb.String()
}

func randomValue(depth int) *T {
	top := 6
	if depth > 0 {
		top = 8
	}
	switch frand.Intn(top) {
	case 0:
		return NewNull()
	case 1:
		return NewBool(frand.Intn(2) == 1)
	case 2:
		return NewInteger(int64(frand.Intn(math.MaxInt64)) - math.MaxInt64/2)
	case 3:
		return NewUnsigned(uint64(math.MaxInt64) + uint64(frand.Intn(math.MaxInt64)))
	case 4:
		return NewFloat(frand.Float64()*2e6 - 1e6)
	case 5:
		return NewString(randomString())
	case 6:
		a := NewArray()
		for i, n := 0, frand.Intn(6); i < n; i++ {
			a.Append(randomValue(depth - 1))
		}
		return a
	default:
		o := NewObject()
		for i, n := 0, frand.Intn(6); i < n; i++ {
			o.Add("k"+string(rune('a'+i)), randomValue(depth-1))
		}
		return o
	}
}

func TestRoundTrip(t *testing.T) {
	for i := 0; i < 300; i++ {
		v := randomValue(4)
		b := v.Marshal(nil)
		w, err := Decode(b)
		if err != nil {
			t.Fatalf("%s: %v", b, err)
		}
		if !v.Equal(w, 0) || !w.Equal(v, 0) {
			t.Fatalf("round trip changed the value: %s vs %s",
				b, w.Marshal(nil))
		}
	}
}
