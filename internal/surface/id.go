package surface

import (
	"fmt"
	"sync"
)

// IDGenerator assigns identities to surfaces that lack one.
type IDGenerator interface {
	NewID(prefix string) string
}

// Sequence generates "<prefix>-<n>" ids with one counter per prefix, so ids
// are predictable in tests.
type Sequence struct {
	mu       sync.Mutex
	counters map[string]int
}

// NewSequence returns an empty Sequence.
func NewSequence() *Sequence {
	return &Sequence{counters: make(map[string]int)}
}

// NewID implements IDGenerator.
func (q *Sequence) NewID(prefix string) string {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.counters == nil {
		q.counters = make(map[string]int)
	}
	q.counters[prefix]++
	return fmt.Sprintf("%s-%d", prefix, q.counters[prefix])
}

// EnsureID gives s a generated id if it has none and returns its id.
func EnsureID(s Surface, gen IDGenerator, prefix string) string {
	if id := s.ID(); id != "" {
		return id
	}
	id := gen.NewID(prefix)
	s.SetID(id)
	return id
}

type namespaced struct {
	ns  string
	gen IDGenerator
}

func (n namespaced) NewID(prefix string) string {
	return n.gen.NewID(n.ns + "-" + prefix)
}

// Namespaced prepends ns to the prefix of every id gen generates, so two
// menus on one screen get distinct ids.
func Namespaced(ns string, gen IDGenerator) IDGenerator {
	return namespaced{ns: ns, gen: gen}
}
