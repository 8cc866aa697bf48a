// Package slurp ingests whole JSON documents from readers and files, with
// a hard size cap so a runaway source fails fast instead of exhausting
// memory.
package slurp

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"jot.mleku.dev/chk"
	"jot.mleku.dev/thing"
)

// ErrTooBig reports input running past the caller's cap.
var ErrTooBig = errors.New("input exceeds size cap")

// Bytes reads r to the end, failing as soon as more than max bytes show
// up. At most max plus one bytes are ever buffered.
func Bytes(r io.Reader, max int) (b []byte, err error) {
	if b, err = io.ReadAll(io.LimitReader(r, int64(max)+1)); chk.E(err) {
		b = nil
		err = errors.Wrap(err, "reading input")
		return
	}
	if len(b) > max {
		b = nil
		err = errors.Wrapf(ErrTooBig, "cap %d bytes", max)
		return
	}
	return
}

// Decode reads one JSON document from r, capped at max bytes.
func Decode(r io.Reader, max int) (t *thing.T, err error) {
	var b []byte
	if b, err = Bytes(r, max); chk.E(err) {
		return
	}
	if t, err = thing.Decode(b); chk.E(err) {
		return
	}
	return
}

// File decodes the document in the named file, capped at max bytes.
func File(path string, max int) (t *thing.T, err error) {
	var f *os.File
	if f, err = os.Open(path); chk.E(err) {
		return
	}
	defer f.Close()
	if t, err = Decode(f, max); chk.E(err) {
		return
	}
	return
}
