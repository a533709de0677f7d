package crdt

import (
	"github.com/pkg/errors"
)

// Structs

// GCounter is a grow-only counter for a fixed cluster of replicas. Every
// replica owns one slot that it alone increments; the externally visible
// value is the sum over all slots. Merging two replicas takes the pointwise
// maximum of their slots, which makes the counter converge no matter in
// which order or how often peer states arrive.
type GCounter struct {
	payload boundedVector
}

// Functions

// InitGCounter returns an all-zero grow-only counter covering numReplicas
// replica slots. A non-positive replica count is rejected.
func InitGCounter(numReplicas int) (*GCounter, error) {

	if numReplicas < 1 {
		return nil, errors.Errorf("replica count must be positive, got %d", numReplicas)
	}

	return &GCounter{
		payload: make(boundedVector, numReplicas),
	}, nil
}

// Increment adds one to the slot owned by replica index i. The caller must
// own index i. An out-of-range index is a defined no-op, not an error.
func (c *GCounter) Increment(i int) {
	c.payload.increment(i)
}

// Value returns the sum over all replica slots.
func (c *GCounter) Value() uint64 {
	return c.payload.sum()
}

// Merge folds the state of other into c by taking the pointwise maximum of
// every replica slot. Merge is commutative, associative and idempotent;
// other is only read.
func (c *GCounter) Merge(other *GCounter) {
	c.payload.mergeMax(other.payload)
}

// LessOrEqual reports whether c precedes or equals other in the partial
// order over counter states: every slot of c bounded by the matching slot
// of other.
func (c *GCounter) LessOrEqual(other *GCounter) bool {
	return c.payload.lessOrEqual(other.payload)
}

// Size returns the number of replica slots this counter covers.
func (c *GCounter) Size() int {
	return len(c.payload)
}
