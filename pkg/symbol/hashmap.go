package symbol

import (
	"hash/fnv"
	"math/bits"
)

// slotState is the three-state contract a hashMap slot occupies.
type slotState uint8

const (
	// Open has never held an entry.
	Open slotState = iota
	// Closed holds a live key/value pair.
	Closed
	// Removed is a tombstone: vacated, but kept so later probes that
	// started before the removal still find what comes after it.
	Removed
)

type slot struct {
	state slotState
	hash  uint64
	key   string
	value *Symbol
}

// hashMap is an open-addressed map from string keys to *Symbol, using
// linear probing and FNV-1a (64-bit) hashing. Range reduction uses the
// multiply-shift trick (hash * capacity >> 64) rather than modulo, which
// avoids a division per probe and -- unlike modulo -- does not bias toward
// small buckets when capacity is not a power of two.
type hashMap struct {
	slots  []slot
	length int // Closed + Removed
}

// newHashMap constructs a map pre-sized so that up to capacity insertions
// (the caller's contract, per SymTable.Spawn) never force a resize.
func newHashMap(capacity uint) *hashMap {
	size := capacity*2 + 1 // keep initial load factor well under 0.5
	if size < 1 {
		size = 1
	}

	return &hashMap{slots: make([]slot, size)}
}

func fnv1a64(key string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))

	return h.Sum64()
}

// reduce maps a 64-bit hash into [0, capacity) via the high word of the
// 128-bit product hash*capacity, equivalent to floor(hash/2^64 * capacity).
func reduce(hash uint64, capacity int) int {
	hi, _ := bits.Mul64(hash, uint64(capacity))

	return int(hi)
}

// errAlreadyExists is returned by insert when key is already Closed in
// this map.
type errAlreadyExists struct{ Key string }

func (e errAlreadyExists) Error() string {
	return e.Key + " already exists"
}

// loadFactor reports length / capacity.
func (m *hashMap) loadFactor() float64 {
	return float64(m.length) / float64(len(m.slots))
}

// insert adds key/value, resizing first if the load factor would exceed
// 0.5. Returns errAlreadyExists if key is already Closed.
func (m *hashMap) insert(key string, value *Symbol) (*Symbol, error) {
	if (float64(m.length+1))/float64(len(m.slots)) > 0.5 {
		m.resize(len(m.slots) * 2)
	}

	hash := fnv1a64(key)
	idx := reduce(hash, len(m.slots))
	firstTombstone := -1

	for i := 0; i < len(m.slots); i++ {
		probe := (idx + i) % len(m.slots)
		s := &m.slots[probe]

		switch s.state {
		case Open:
			target := probe
			if firstTombstone >= 0 {
				target = firstTombstone
			} else {
				m.length++
			}

			m.slots[target] = slot{state: Closed, hash: hash, key: key, value: value}

			return m.slots[target].value, nil
		case Removed:
			if firstTombstone < 0 {
				firstTombstone = probe
			}
		case Closed:
			if s.hash == hash && s.key == key {
				return nil, errAlreadyExists{Key: key}
			}
		}
	}

	// Every slot visited without finding Open or a match: the map is
	// saturated with tombstones under a load factor that should have
	// triggered a resize above. Force one and retry.
	m.resize(len(m.slots) * 2)

	return m.insert(key, value)
}

// lookup searches only this map's own slots (SymTable.Lookup walks
// ancestors separately).
func (m *hashMap) lookup(key string) (*Symbol, bool) {
	if len(m.slots) == 0 {
		return nil, false
	}

	hash := fnv1a64(key)
	idx := reduce(hash, len(m.slots))

	for i := 0; i < len(m.slots); i++ {
		probe := (idx + i) % len(m.slots)
		s := &m.slots[probe]

		switch s.state {
		case Open:
			return nil, false
		case Closed:
			if s.hash == hash && s.key == key {
				return s.value, true
			}
		}
	}

	return nil, false
}

// remove marks key's slot as a tombstone, preserving probe continuity for
// keys inserted after it. Reports whether key was present.
func (m *hashMap) remove(key string) bool {
	hash := fnv1a64(key)
	idx := reduce(hash, len(m.slots))

	for i := 0; i < len(m.slots); i++ {
		probe := (idx + i) % len(m.slots)
		s := &m.slots[probe]

		switch s.state {
		case Open:
			return false
		case Closed:
			if s.hash == hash && s.key == key {
				m.slots[probe] = slot{state: Removed}
				return true
			}
		}
	}

	return false
}

// resize grows the map to newCapacity and rehashes every live (Closed)
// entry into it; tombstones are dropped.
func (m *hashMap) resize(newCapacity int) {
	old := m.slots
	m.slots = make([]slot, newCapacity)
	m.length = 0

	for _, s := range old {
		if s.state == Closed {
			_, _ = m.insert(s.key, s.value)
		}
	}
}
