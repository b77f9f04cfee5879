package keys

import (
	"sort"
	"strings"
)

// Set is a set of keys. The zero value is an empty read-only set; use NewSet
// before calling Add.
type Set map[Key]struct{}

// NewSet returns a set holding the given keys.
func NewSet(ks ...Key) Set {
	s := make(Set, len(ks))
	for _, k := range ks {
		s[k] = struct{}{}
	}
	return s
}

// Add inserts k.
func (s Set) Add(k Key) { s[k] = struct{}{} }

// Remove deletes k.
func (s Set) Remove(k Key) { delete(s, k) }

// Contains reports whether k is in the set.
func (s Set) Contains(k Key) bool {
	_, ok := s[k]
	return ok
}

// ContainsAny reports whether the two sets share at least one key.
func (s Set) ContainsAny(other Set) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for k := range small {
		if large.Contains(k) {
			return true
		}
	}
	return false
}

// Equal reports whether both sets hold exactly the same keys.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if !other.Contains(k) {
			return false
		}
	}
	return true
}

// Len returns the number of keys.
func (s Set) Len() int { return len(s) }

// Clone returns an independent copy.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

// Sorted returns the keys ordered by code.
func (s Set) Sorted() []Key {
	out := make([]Key, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders the set as "A+LShift".
func (s Set) String() string {
	sorted := s.Sorted()
	parts := make([]string, len(sorted))
	for i, k := range sorted {
		parts[i] = k.String()
	}
	return strings.Join(parts, "+")
}
