// Package bloom provides node id deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for node id deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds an id to the filter.
func (f *Filter) Add(id string) {
	f.f.AddString(id)
}

// Test returns true if the id might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(id string) bool {
	return f.f.TestString(id)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// Set is an exact string set fronted by a Bloom filter. Lookups of ids that
// were never added are answered by the filter alone; possible hits are
// confirmed against the exact set, so Has never reports a false positive.
type Set struct {
	filter *Filter
	items  map[string]struct{}
}

// NewSet creates a Set sized for n expected ids.
func NewSet(n uint) *Set {
	return &Set{
		filter: NewFilter(n, 0.01),
		items:  make(map[string]struct{}, n),
	}
}

// Add adds an id to the set. Returns false if it was already present.
func (s *Set) Add(id string) bool {
	if s.Has(id) {
		return false
	}
	s.filter.Add(id)
	s.items[id] = struct{}{}
	return true
}

// Has reports whether the id was added.
func (s *Set) Has(id string) bool {
	if !s.filter.Test(id) {
		return false
	}
	_, ok := s.items[id]
	return ok
}

// Len returns the number of ids in the set.
func (s *Set) Len() int {
	return len(s.items)
}
