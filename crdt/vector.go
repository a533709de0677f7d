package crdt

// boundedVector is the dense per-replica payload underlying the counter
// types: one slot per replica index, fixed at construction time. Slots only
// ever grow, either through increment or through a pointwise-max merge.
type boundedVector []uint64

// increment adds one to the slot owned by replica index i. An index outside
// the configured replica range leaves the vector untouched.
func (v boundedVector) increment(i int) {

	if (i >= 0) && (i < len(v)) {
		v[i]++
	}
}

// sum returns the total over all replica slots.
func (v boundedVector) sum() uint64 {

	var total uint64
	for _, slot := range v {
		total += slot
	}

	return total
}

// mergeMax folds other into v by taking the pointwise maximum of each slot.
// Peers are expected to cover the same replica range; if a peer of a
// different size is supplied in violation of that contract, only the common
// prefix is folded.
func (v boundedVector) mergeMax(other boundedVector) {

	for i := 0; (i < len(v)) && (i < len(other)); i++ {

		if other[i] > v[i] {
			v[i] = other[i]
		}
	}
}

// lessOrEqual reports whether every slot of v is bounded by the matching
// slot of other, the conjunction over all replica indices. Vectors of
// different sizes are never ordered.
func (v boundedVector) lessOrEqual(other boundedVector) bool {

	if len(v) != len(other) {
		return false
	}

	for i := range v {

		if v[i] > other[i] {
			return false
		}
	}

	return true
}

// clone returns an independent copy of v.
func (v boundedVector) clone() boundedVector {

	out := make(boundedVector, len(v))
	copy(out, v)

	return out
}
