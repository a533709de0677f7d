package crdt

// Structs

// PNCounter is a counter supporting both increments and decrements. It
// composes two grow-only counters, one accumulating increments and one
// accumulating decrements, and reports their signed difference. The value
// may legitimately be negative.
type PNCounter struct {
	inc *GCounter
	dec *GCounter
}

// Functions

// InitPNCounter returns a zero-valued positive-negative counter covering
// numReplicas replica slots. A non-positive replica count is rejected.
func InitPNCounter(numReplicas int) (*PNCounter, error) {

	inc, err := InitGCounter(numReplicas)
	if err != nil {
		return nil, err
	}

	dec, err := InitGCounter(numReplicas)
	if err != nil {
		return nil, err
	}

	return &PNCounter{
		inc: inc,
		dec: dec,
	}, nil
}

// Increment adds one to the increment slot owned by replica index i. An
// out-of-range index is a defined no-op.
func (c *PNCounter) Increment(i int) {
	c.inc.Increment(i)
}

// Decrement adds one to the decrement slot owned by replica index i. An
// out-of-range index is a defined no-op.
func (c *PNCounter) Decrement(i int) {
	c.dec.Increment(i)
}

// Value returns the signed difference between all observed increments and
// all observed decrements. Both sides are summed before subtracting so that
// a surplus of decrements yields a negative result instead of wrapping.
func (c *PNCounter) Value() int64 {
	return int64(c.inc.Value()) - int64(c.dec.Value())
}

// Merge folds the state of other into c by merging the increment and
// decrement sub-counters independently; other is only read.
func (c *PNCounter) Merge(other *PNCounter) {
	c.inc.Merge(other.inc)
	c.dec.Merge(other.dec)
}

// LessOrEqual reports whether c precedes or equals other in the partial
// order over counter states: both sub-counters must be ordered.
func (c *PNCounter) LessOrEqual(other *PNCounter) bool {
	return c.inc.LessOrEqual(other.inc) && c.dec.LessOrEqual(other.dec)
}

// Size returns the number of replica slots this counter covers.
func (c *PNCounter) Size() int {
	return c.inc.Size()
}
