package crdt

import (
	"fmt"

	"github.com/satori/go.uuid"
)

// Structs

// Tag identifies one single add event of an observed-removed set. Tags are
// opaque and serializable; their only obligation is global uniqueness.
type Tag = string

// TagSource supplies fresh tags on every add of an ORSet. Implementations
// must guarantee that no two calls across any replica, ever, produce the
// same tag: a collision silently breaks the remove-survives-across-replicas
// guarantee and with it convergence.
type TagSource interface {
	NewTag() Tag
}

// UUIDTagSource draws random version 4 UUIDs as tags. Stateless, so one
// value can be shared between sets of the same replica.
type UUIDTagSource struct{}

// ReplicaTagSource derives tags from a caller-assigned replica id and a
// monotonically increasing local sequence number. Uniqueness holds as long
// as the caller assigns every live replica a distinct id and uses one
// source per replica.
type ReplicaTagSource struct {
	replicaID string
	seq       uint64
}

// Functions

// NewTag returns a fresh random UUID tag.
func (UUIDTagSource) NewTag() Tag {
	return uuid.NewV4().String()
}

// InitReplicaTagSource returns a tag source bound to the supplied replica
// id with its sequence starting at zero.
func InitReplicaTagSource(replicaID string) *ReplicaTagSource {

	return &ReplicaTagSource{
		replicaID: replicaID,
	}
}

// NewTag returns the next tag of this replica, the pair of replica id and
// sequence number.
func (s *ReplicaTagSource) NewTag() Tag {

	s.seq++

	return fmt.Sprintf("%s:%d", s.replicaID, s.seq)
}
