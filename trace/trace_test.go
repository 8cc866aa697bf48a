package trace

import (
	"strings"
	"testing"

	"jot.mleku.dev/thing"
)

func bigArray(n int) *thing.T {
	a := thing.NewArray()
	for i := 0; i < n; i++ {
		a.Append(thing.NewInteger(1000000 + int64(i)))
	}
	return a
}

func TestStringMaxTruncates(t *testing.T) {
	v := bigArray(1000)
	full := string(v.Marshal(nil))
	if got := StringMax(v, 10); got != full[:10] {
		t.Fatalf("got %q", got)
	}
	if got := StringMax(v, len(full)+100); got != full {
		t.Fatal("roomy cap altered the rendering")
	}
}

func TestStringDefaultCap(t *testing.T) {
	v := bigArray(1000)
	got := String(v)
	if len(got) != DefaultMax {
		t.Fatalf("length %d, expected %d", len(got), DefaultMax)
	}
	small := thing.NewString("ok")
	if String(small) != `"ok"` {
		t.Fatal("small rendering altered")
	}
}

func TestPretty(t *testing.T) {
	v, err := thing.Decode([]byte(`{"a":1}`))
	if err != nil {
		t.Fatal(err)
	}
	if Pretty(v) != "{\n  \"a\": 1\n}" {
		t.Fatalf("got %q", Pretty(v))
	}
}

func TestPoolRotation(t *testing.T) {
	p := NewPool(64)
	a := p.Bytes(thing.NewString(strings.Repeat("a", 10)))
	if string(a) != `"`+strings.Repeat("a", 10)+`"` {
		t.Fatalf("first rendering wrong: %s", a)
	}
	// the slot stays untouched while the other slots rotate
	for i := 0; i < Slots-1; i++ {
		p.Bytes(thing.NewString(strings.Repeat("b", 10)))
	}
	if string(a) != `"`+strings.Repeat("a", 10)+`"` {
		t.Fatal("live slot overwritten early")
	}
	// the next call rotates back onto the first slot and reuses it
	b := p.Bytes(thing.NewString(strings.Repeat("c", 10)))
	if &a[0] != &b[0] {
		t.Fatal("slot buffer not reused")
	}
	if string(a) != string(b) {
		t.Fatal("stale rendering survived rotation")
	}
}

func TestPoolCap(t *testing.T) {
	p := NewPool(8)
	b := p.Bytes(bigArray(100))
	if len(b) != 8 {
		t.Fatalf("length %d, expected 8", len(b))
	}
	if NewPool(0).max != DefaultMax {
		t.Fatal("default cap not applied")
	}
}
