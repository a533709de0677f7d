package crdt

import (
	"testing"
)

// Functions

// TestReplicaTagSource executes a white-box unit test on
// implemented ReplicaTagSource functionality.
func TestReplicaTagSource(t *testing.T) {

	src := InitReplicaTagSource("r7")

	first := src.NewTag()
	second := src.NewTag()

	if first != "r7:1" {
		t.Fatalf("[crdt.TestReplicaTagSource] Expected first tag 'r7:1' but received '%s'.\n", first)
	}

	if second != "r7:2" {
		t.Fatalf("[crdt.TestReplicaTagSource] Expected second tag 'r7:2' but received '%s'.\n", second)
	}

	// Sources of distinct replicas never collide.
	other := InitReplicaTagSource("r8")

	if other.NewTag() == first {
		t.Fatalf("[crdt.TestReplicaTagSource] Expected tags of distinct replicas to differ.\n")
	}
}

// TestUUIDTagSource executes a white-box unit test on
// implemented UUIDTagSource functionality.
func TestUUIDTagSource(t *testing.T) {

	src := UUIDTagSource{}

	seen := make(map[Tag]struct{})
	for i := 0; i < 1000; i++ {

		tag := src.NewTag()

		if tag == "" {
			t.Fatalf("[crdt.TestUUIDTagSource] Expected non-empty tag.\n")
		}

		if _, dup := seen[tag]; dup {
			t.Fatalf("[crdt.TestUUIDTagSource] Expected distinct tags but '%s' repeated.\n", tag)
		}
		seen[tag] = struct{}{}
	}
}
