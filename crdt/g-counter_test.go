package crdt

import (
	"testing"
)

// Functions

// TestInitGCounter executes a white-box unit test on
// implemented InitGCounter() functionality.
func TestInitGCounter(t *testing.T) {

	// Non-positive replica counts have to be rejected.
	if _, err := InitGCounter(0); err == nil {
		t.Fatalf("[crdt.TestInitGCounter] Expected InitGCounter(0) to fail but error was nil.\n")
	}

	if _, err := InitGCounter(-3); err == nil {
		t.Fatalf("[crdt.TestInitGCounter] Expected InitGCounter(-3) to fail but error was nil.\n")
	}

	c, err := InitGCounter(4)
	if err != nil {
		t.Fatalf("[crdt.TestInitGCounter] Expected InitGCounter(4) to succeed but received: '%v'\n", err)
	}

	if c.Size() != 4 {
		t.Fatalf("[crdt.TestInitGCounter] Expected counter over 4 replica slots but Size() returned %d.\n", c.Size())
	}

	// A fresh counter has to be zero-valued.
	if c.Value() != 0 {
		t.Fatalf("[crdt.TestInitGCounter] Expected fresh counter to be zero but Value() returned %d.\n", c.Value())
	}
}

// TestGCounterIncrement executes a white-box unit test on
// implemented Increment() functionality.
func TestGCounterIncrement(t *testing.T) {

	c, _ := InitGCounter(3)

	c.Increment(0)
	c.Increment(0)
	c.Increment(2)

	if c.payload[0] != 2 || c.payload[1] != 0 || c.payload[2] != 1 {
		t.Fatalf("[crdt.TestGCounterIncrement] Expected payload [2 0 1] but found: '%v'\n", c.payload)
	}

	if c.Value() != 3 {
		t.Fatalf("[crdt.TestGCounterIncrement] Expected Value() to return 3 but received %d.\n", c.Value())
	}

	// Out-of-range replica indices have to leave the counter untouched.
	c.Increment(-1)
	c.Increment(3)
	c.Increment(1000)

	if c.Value() != 3 {
		t.Fatalf("[crdt.TestGCounterIncrement] Expected out-of-range increments to be no-ops but Value() returned %d.\n", c.Value())
	}
}

// TestGCounterMerge executes a white-box unit test on
// implemented Merge() functionality.
func TestGCounterMerge(t *testing.T) {

	a, _ := InitGCounter(3)
	b, _ := InitGCounter(3)

	// Replica 0 increments twice, replica 1 increments three times.
	a.Increment(0)
	a.Increment(0)
	b.Increment(1)
	b.Increment(1)
	b.Increment(1)

	// Commutativity: merging in either direction has to produce the
	// pointwise maximum of both payloads.
	ab, _ := GCounterFromState(a.State())
	ba, _ := GCounterFromState(b.State())
	ab.Merge(b)
	ba.Merge(a)

	if ab.Value() != 5 {
		t.Fatalf("[crdt.TestGCounterMerge] Expected merged counter to report 5 but Value() returned %d.\n", ab.Value())
	}

	if !ab.LessOrEqual(ba) || !ba.LessOrEqual(ab) {
		t.Fatalf("[crdt.TestGCounterMerge] Expected a.Merge(b) and b.Merge(a) to converge to equal states.\n")
	}

	// Idempotence: merging a state into itself has to change nothing.
	before := ab.Value()
	self, _ := GCounterFromState(ab.State())
	ab.Merge(self)

	if ab.Value() != before {
		t.Fatalf("[crdt.TestGCounterMerge] Expected self-merge to be a no-op but Value() went from %d to %d.\n", before, ab.Value())
	}

	// Associativity: (a merge b) merge c has to equal a merge (b merge c).
	c, _ := InitGCounter(3)
	c.Increment(2)

	left, _ := GCounterFromState(a.State())
	left.Merge(b)
	left.Merge(c)

	bc, _ := GCounterFromState(b.State())
	bc.Merge(c)
	right, _ := GCounterFromState(a.State())
	right.Merge(bc)

	if !left.LessOrEqual(right) || !right.LessOrEqual(left) {
		t.Fatalf("[crdt.TestGCounterMerge] Expected both merge orders to converge to equal states.\n")
	}
}

// TestGCounterLessOrEqual executes a white-box unit test on
// implemented LessOrEqual() functionality.
func TestGCounterLessOrEqual(t *testing.T) {

	a, _ := InitGCounter(2)
	b, _ := InitGCounter(2)

	// Two fresh counters are equal, so ordered both ways.
	if !a.LessOrEqual(b) || !b.LessOrEqual(a) {
		t.Fatalf("[crdt.TestGCounterLessOrEqual] Expected two fresh counters to be mutually ordered.\n")
	}

	// a = [1 0], b = [0 1]: the order has to be a conjunction over all
	// replica slots, so neither direction may hold.
	a.Increment(0)
	b.Increment(1)

	if a.LessOrEqual(b) {
		t.Fatalf("[crdt.TestGCounterLessOrEqual] Expected [1 0] not to precede [0 1].\n")
	}

	if b.LessOrEqual(a) {
		t.Fatalf("[crdt.TestGCounterLessOrEqual] Expected [0 1] not to precede [1 0].\n")
	}

	// After merging, both inputs have to precede the merged state and the
	// pre-merge state has to precede its own successor.
	aOld, _ := GCounterFromState(a.State())
	a.Merge(b)

	if !b.LessOrEqual(a) {
		t.Fatalf("[crdt.TestGCounterLessOrEqual] Expected merge argument to precede merge result.\n")
	}

	if !aOld.LessOrEqual(a) {
		t.Fatalf("[crdt.TestGCounterLessOrEqual] Expected pre-merge state to precede post-merge state.\n")
	}

	// Counters over different replica ranges are never ordered.
	wide, _ := InitGCounter(3)

	if a.LessOrEqual(wide) || wide.LessOrEqual(a) {
		t.Fatalf("[crdt.TestGCounterLessOrEqual] Expected counters of different sizes to be unordered.\n")
	}
}
