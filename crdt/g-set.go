package crdt

// Structs

// GSet is a grow-only set: an element, once added, can never be removed,
// and the merger of two replicas is their union. Membership is backed by a
// hash map, so Query runs in constant expected time.
type GSet[T comparable] struct {
	elements map[T]struct{}
}

// Functions

// InitGSet returns an empty initialized new grow-only set.
func InitGSet[T comparable]() *GSet[T] {

	return &GSet[T]{
		elements: make(map[T]struct{}),
	}
}

// Add inserts elem into the set. Adding an element that is already present
// is a no-op, which makes Add idempotent.
func (s *GSet[T]) Add(elem T) {
	s.elements[elem] = struct{}{}
}

// Query returns true if elem is currently a member of the set and false
// otherwise.
func (s *GSet[T]) Query(elem T) bool {

	_, found := s.elements[elem]

	return found
}

// Merge folds the state of other into s by set union. Merge is commutative,
// associative and idempotent; other is only read.
func (s *GSet[T]) Merge(other *GSet[T]) {

	for elem := range other.elements {
		s.elements[elem] = struct{}{}
	}
}

// Includes reports whether s is a superset of other, i.e. every element of
// other is also a member of s.
func (s *GSet[T]) Includes(other *GSet[T]) bool {

	for elem := range other.elements {

		if _, found := s.elements[elem]; !found {
			return false
		}
	}

	return true
}

// LessOrEqual reports whether s precedes or equals other in the partial
// order over set states, that is, whether s is a subset of other.
func (s *GSet[T]) LessOrEqual(other *GSet[T]) bool {
	return other.Includes(s)
}

// Value returns the current members of the set as a freshly allocated
// slice in no particular order. The slice is a snapshot taken at call time
// and stays valid across later mutations of the set.
func (s *GSet[T]) Value() []T {

	out := make([]T, 0, len(s.elements))
	for elem := range s.elements {
		out = append(out, elem)
	}

	return out
}

// Len returns the number of members in the set.
func (s *GSet[T]) Len() int {
	return len(s.elements)
}
