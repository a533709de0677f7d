package crdt

// Structs

// ORSet is an observed-removed set supporting unlimited add, remove and
// re-add cycles. Every add stores a globally-unique tag next to the element
// and a remove only tombstones the tags this replica has observed so far.
// A concurrent add on another replica carries a tag the remove never saw,
// so that add survives the merge — the re-add property TwoPhaseSet lacks.
// An element is logically present while it owns at least one live,
// non-tombstoned tag.
type ORSet[T comparable] struct {
	tags TagSource
	live map[T]map[Tag]struct{}
	tomb map[T]map[Tag]struct{}
}

// Functions

// InitORSet returns an empty initialized new observed-removed set drawing
// fresh add tags from tags.
func InitORSet[T comparable](tags TagSource) *ORSet[T] {

	return &ORSet[T]{
		tags: tags,
		live: make(map[T]map[Tag]struct{}),
		tomb: make(map[T]map[Tag]struct{}),
	}
}

// Add inserts elem under a fresh tag and returns that tag. Adds never
// deduplicate by element value: two adds of an equal element produce two
// distinct tags that survive removes and merges independently.
func (s *ORSet[T]) Add(elem T) Tag {

	tag := s.tags.NewTag()

	if s.live[elem] == nil {
		s.live[elem] = make(map[Tag]struct{})
	}
	s.live[elem][tag] = struct{}{}

	return tag
}

// Remove tombstones exactly the tags of elem this replica has observed at
// call time. Tags added concurrently elsewhere are untouched, which is what
// permits a later merge to resurface the element. Removing an element that
// is not currently visible is a defined no-op.
func (s *ORSet[T]) Remove(elem T) {

	observed := s.live[elem]
	if len(observed) == 0 {
		return
	}

	// Union into the tombstones rather than overwrite: earlier removes may
	// have left partial tombstones behind from prior merges.
	dead := s.tomb[elem]
	if dead == nil {
		dead = make(map[Tag]struct{})
		s.tomb[elem] = dead
	}

	for tag := range observed {
		dead[tag] = struct{}{}
	}

	delete(s.live, elem)
}

// Query returns true if elem owns at least one live tag that has not been
// tombstoned and false otherwise.
func (s *ORSet[T]) Query(elem T) bool {

	for tag := range s.live[elem] {

		if _, dead := s.tomb[elem][tag]; !dead {
			return true
		}
	}

	return false
}

// Merge folds the state of other into s: tombstones and live tag-sets are
// unioned per element, then every tag that is tombstoned anywhere is
// dropped from the live side again. A tag tombstoned on any replica thus
// stays tombstoned everywhere, while a tag never tombstoned survives
// indefinitely. Merge is commutative, associative and idempotent because
// set union is; other is only read.
func (s *ORSet[T]) Merge(other *ORSet[T]) {

	// Union the tombstones first.
	for elem, tags := range other.tomb {

		dead := s.tomb[elem]
		if dead == nil {
			dead = make(map[Tag]struct{}, len(tags))
			s.tomb[elem] = dead
		}

		for tag := range tags {
			dead[tag] = struct{}{}
		}
	}

	// Union the live tag-sets.
	for elem, tags := range other.live {

		alive := s.live[elem]
		if alive == nil {
			alive = make(map[Tag]struct{}, len(tags))
			s.live[elem] = alive
		}

		for tag := range tags {
			alive[tag] = struct{}{}
		}
	}

	// Derive the visible state: a stale peer may have re-delivered tags
	// that are tombstoned by now, so subtract the tombstones again.
	for elem, alive := range s.live {

		for tag := range s.tomb[elem] {
			delete(alive, tag)
		}

		if len(alive) == 0 {
			delete(s.live, elem)
		}
	}
}

// LessOrEqual reports whether s precedes or equals other in the partial
// order over observed-removed set states: every tag s has observed, other
// must have observed too, and every tag s has tombstoned, other must have
// tombstoned too.
func (s *ORSet[T]) LessOrEqual(other *ORSet[T]) bool {

	for elem, tags := range s.live {

		for tag := range tags {

			if !other.observed(elem, tag) {
				return false
			}
		}
	}

	for elem, tags := range s.tomb {

		for tag := range tags {

			if _, dead := other.tomb[elem][tag]; !dead {
				return false
			}
		}
	}

	return true
}

// observed reports whether this replica has seen tag for elem at all, be
// it live or tombstoned.
func (s *ORSet[T]) observed(elem T, tag Tag) bool {

	if _, found := s.live[elem][tag]; found {
		return true
	}

	_, found := s.tomb[elem][tag]

	return found
}

// Value returns the logically present elements, those with at least one
// non-tombstoned tag, as a freshly allocated slice in no particular order.
func (s *ORSet[T]) Value() []T {

	out := make([]T, 0, len(s.live))
	for elem := range s.live {

		if s.Query(elem) {
			out = append(out, elem)
		}
	}

	return out
}

// Len returns the number of logically present elements.
func (s *ORSet[T]) Len() int {

	count := 0
	for elem := range s.live {

		if s.Query(elem) {
			count++
		}
	}

	return count
}
