package thing

// Thresholds for switching an object from linear field scans to a built
// map. Small objects never pay for a map; big ones earn one only after
// enough scan work has accumulated to pay it off.
const (
	jitSize   = 30
	jitBudget = 1000
)

// clobber throws away a built index. The scan cost counter resets only
// when an index actually existed; otherwise it keeps accumulating toward
// the build trigger across mutations.
func (t *T) clobber() {
	if t.idx == nil {
		return
	}
	t.idx = nil
	t.cost = 0
}

// ensureIndex builds the field map immediately, regardless of accumulated
// cost. Later fields with a repeated key overwrite earlier ones, so an
// indexed lookup answers with the last occurrence where a linear scan
// answers with the first. Callers that care which one they get must not
// let an index appear.
func (t *T) ensureIndex() {
	if t.idx != nil {
		return
	}
	t.idx = make(map[string]*T, len(t.fl))
	for _, f := range t.fl {
		t.idx[string(f.Key)] = f.Value
	}
}

// Get returns the value of the first field named key, nil when absent or
// when t is not an object.
//
// Scans through objects of jitSize fields or more charge one unit per
// field walked; when the charge reaches jitBudget, mid scan if need be,
// the object builds its index and this and later lookups answer from it
// until the next mutation drops it.
func (t *T) Get(key string) *T {
	if t.Kind() != Object {
		return nil
	}
	if t.idx != nil {
		return t.idx[key]
	}
	if len(t.fl) >= jitSize {
		for i := range t.fl {
			t.cost++
			if t.cost >= jitBudget {
				t.ensureIndex()
				return t.idx[key]
			}
			if string(t.fl[i].Key) == key {
				return t.fl[i].Value
			}
		}
		return nil
	}
	for i := range t.fl {
		if string(t.fl[i].Key) == key {
			return t.fl[i].Value
		}
	}
	return nil
}

// Dig walks nested objects along keys and returns the value at the end of
// the path, nil as soon as a step is missing or the value at hand is not
// an object. With no keys it returns t itself.
func (t *T) Dig(keys ...string) *T {
	v := t
	for _, key := range keys {
		if v.Kind() != Object {
			return nil
		}
		v = v.Get(key)
	}
	return v
}
