// Package normalization maps loosely written configuration strings onto
// typed enum values.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer resolves trimmed, case-folded strings to values of T.
type Normalizer[T comparable] struct {
	values map[string]T
	keys   []string
}

// NewNormalizer builds a normalizer from the accepted spellings. Keys are
// normalized on insertion.
func NewNormalizer[T comparable](values map[string]T) *Normalizer[T] {
	n := &Normalizer[T]{
		values: make(map[string]T, len(values)),
		keys:   make([]string, 0, len(values)),
	}
	for k, v := range values {
		key := normalize(k)
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	sort.Strings(n.keys)
	return n
}

// Lookup returns the value for raw and whether it was recognised.
func (n *Normalizer[T]) Lookup(raw string) (T, bool) {
	v, ok := n.values[normalize(raw)]
	return v, ok
}

// Normalize is Lookup with an error naming the accepted values.
func (n *Normalizer[T]) Normalize(raw string) (T, error) {
	if v, ok := n.Lookup(raw); ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid value %q, valid options: %v", raw, n.keys)
}

// ValidKeys returns the accepted spellings, sorted.
func (n *Normalizer[T]) ValidKeys() []string {
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
