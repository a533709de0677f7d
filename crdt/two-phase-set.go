package crdt

// Structs

// TwoPhaseSet composes two grow-only sets to support removal of elements.
// An element is logically present if it is in the add-set and not in the
// remove-set. Once removed, an element can never be re-added: both
// underlying sets only grow, so a removal outlives any later add of an
// equal element. Callers that need re-add want ORSet instead.
type TwoPhaseSet[T comparable] struct {
	added   *GSet[T]
	removed *GSet[T]
}

// Functions

// InitTwoPhaseSet returns an empty initialized new two-phase set.
func InitTwoPhaseSet[T comparable]() *TwoPhaseSet[T] {

	return &TwoPhaseSet[T]{
		added:   InitGSet[T](),
		removed: InitGSet[T](),
	}
}

// Add inserts elem into the add-set. Re-adding an element that was removed
// earlier has no visible effect.
func (s *TwoPhaseSet[T]) Add(elem T) {
	s.added.Add(elem)
}

// Remove marks elem as removed, provided it has been added before on this
// replica. Removing an element that was never added is a defined no-op, not
// an error, which keeps merges of concurrent removes order-independent.
func (s *TwoPhaseSet[T]) Remove(elem T) {

	if s.added.Query(elem) {
		s.removed.Add(elem)
	}
}

// Query returns true if elem is logically present: added and not removed.
func (s *TwoPhaseSet[T]) Query(elem T) bool {
	return s.added.Query(elem) && !s.removed.Query(elem)
}

// Merge folds the state of other into s by merging the add-set and the
// remove-set independently; a union of unions is still a union, so Merge
// stays commutative, associative and idempotent. Other is only read.
func (s *TwoPhaseSet[T]) Merge(other *TwoPhaseSet[T]) {
	s.added.Merge(other.added)
	s.removed.Merge(other.removed)
}

// LessOrEqual reports whether s precedes or equals other in the partial
// order over two-phase set states: both underlying sets must be ordered.
func (s *TwoPhaseSet[T]) LessOrEqual(other *TwoPhaseSet[T]) bool {
	return s.added.LessOrEqual(other.added) && s.removed.LessOrEqual(other.removed)
}

// Value materializes the set difference between the add-set and the
// remove-set: every element that was added and never removed, as a freshly
// allocated slice in no particular order. Cost is proportional to the
// number of elements ever added.
func (s *TwoPhaseSet[T]) Value() []T {

	out := make([]T, 0, s.added.Len())
	for _, elem := range s.added.Value() {

		if !s.removed.Query(elem) {
			out = append(out, elem)
		}
	}

	return out
}

// Len returns the number of logically present elements, walking the
// add-set like Value does.
func (s *TwoPhaseSet[T]) Len() int {

	count := 0
	for _, elem := range s.added.Value() {

		if !s.removed.Query(elem) {
			count++
		}
	}

	return count
}
