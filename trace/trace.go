// Package trace renders values for log lines. Renderings are capped so a
// pathological document cannot flood the log, and a slot pool variant
// hands out reusable buffers for hot paths that log the same way over and
// over.
package trace

import (
	"sync"

	"jot.mleku.dev/thing"
)

const (
	// Slots is how many pool renderings stay alive at once.
	Slots = 4
	// DefaultMax caps the size of one rendering.
	DefaultMax = 2048
)

// StringMax renders t compactly, truncated to max bytes.
func StringMax(t *thing.T, max int) string {
	n := t.EncodeTo(nil)
	if n > max {
		n = max
	}
	b := make([]byte, n)
	t.EncodeTo(b)
	return string(b)
}

// String renders t compactly, truncated to DefaultMax bytes.
func String(t *thing.T) string { return StringMax(t, DefaultMax) }

// Pretty renders t indented by two spaces per level, for multi line log
// output. It is not capped; cap with StringMax where flooding matters.
func Pretty(t *thing.T) string {
	return string(t.MarshalIndented(nil, 0, 2))
}

// A Pool recycles render buffers. Bytes hands out a slot that stays valid
// until Slots further calls rotate back onto it, so a caller that formats
// a line and lets go can log without an allocation per call.
type Pool struct {
	mu   sync.Mutex
	next int
	slot [Slots][]byte
	max  int
}

// NewPool returns a pool whose renderings are truncated to max bytes,
// DefaultMax when max is not positive.
func NewPool(max int) *Pool {
	if max <= 0 {
		max = DefaultMax
	}
	return &Pool{max: max}
}

// Bytes renders t compactly into the next slot and returns it. The slice
// is overwritten after Slots more calls; hold it across a log call, not
// longer.
func (p *Pool) Bytes(t *thing.T) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := t.EncodeTo(nil)
	if n > p.max {
		n = p.max
	}
	i := p.next % Slots
	p.next++
	if cap(p.slot[i]) < n {
		p.slot[i] = make([]byte, n)
	}
	b := p.slot[i][:n]
	t.EncodeTo(b)
	return b
}
