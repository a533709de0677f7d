package crdt

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Structs

// The *State types are the raw-state surface for a transport collaborator:
// plain data snapshots of each replicated type that can be read on one
// replica, shipped as bytes and rebuilt on another, where the restored
// instance is handed to Merge. Shipping states and scheduling merges stays
// the caller's business; this package only guarantees that any interleaving
// of deliveries converges.

// GCounterState is the raw state of a GCounter: one slot per replica.
type GCounterState struct {
	Slots []uint64 `msgpack:"slots"`
}

// PNCounterState is the raw state of a PNCounter: the states of its
// increment and decrement sub-counters.
type PNCounterState struct {
	Inc GCounterState `msgpack:"inc"`
	Dec GCounterState `msgpack:"dec"`
}

// GSetState is the raw state of a GSet: its members.
type GSetState[T comparable] struct {
	Elements []T `msgpack:"elements"`
}

// TwoPhaseSetState is the raw state of a TwoPhaseSet: the states of its
// add-set and remove-set.
type TwoPhaseSetState[T comparable] struct {
	Added   GSetState[T] `msgpack:"added"`
	Removed GSetState[T] `msgpack:"removed"`
}

// ORSetState is the raw state of an ORSet: the live and tombstoned tags
// per element.
type ORSetState[T comparable] struct {
	Live map[T][]Tag `msgpack:"live"`
	Tomb map[T][]Tag `msgpack:"tomb"`
}

// Functions

// State returns a deep-copied snapshot of the counter's raw state.
func (c *GCounter) State() GCounterState {
	return GCounterState{Slots: c.payload.clone()}
}

// GCounterFromState rebuilds a counter from raw state, deep-copying the
// supplied slots. A state without replica slots is rejected.
func GCounterFromState(state GCounterState) (*GCounter, error) {

	c, err := InitGCounter(len(state.Slots))
	if err != nil {
		return nil, errors.Wrap(err, "invalid grow-only counter state")
	}

	copy(c.payload, state.Slots)

	return c, nil
}

// State returns a deep-copied snapshot of the counter's raw state.
func (c *PNCounter) State() PNCounterState {

	return PNCounterState{
		Inc: c.inc.State(),
		Dec: c.dec.State(),
	}
}

// PNCounterFromState rebuilds a counter from raw state. The increment and
// decrement sides must cover the same, non-zero replica range.
func PNCounterFromState(state PNCounterState) (*PNCounter, error) {

	if len(state.Inc.Slots) != len(state.Dec.Slots) {
		return nil, errors.Errorf("mismatched replica ranges in positive-negative counter state: %d increment slots, %d decrement slots",
			len(state.Inc.Slots), len(state.Dec.Slots))
	}

	inc, err := GCounterFromState(state.Inc)
	if err != nil {
		return nil, errors.Wrap(err, "invalid increment side")
	}

	dec, err := GCounterFromState(state.Dec)
	if err != nil {
		return nil, errors.Wrap(err, "invalid decrement side")
	}

	return &PNCounter{
		inc: inc,
		dec: dec,
	}, nil
}

// State returns a deep-copied snapshot of the set's raw state.
func (s *GSet[T]) State() GSetState[T] {
	return GSetState[T]{Elements: s.Value()}
}

// GSetFromState rebuilds a grow-only set from raw state.
func GSetFromState[T comparable](state GSetState[T]) *GSet[T] {

	s := InitGSet[T]()
	for _, elem := range state.Elements {
		s.Add(elem)
	}

	return s
}

// State returns a deep-copied snapshot of the set's raw state.
func (s *TwoPhaseSet[T]) State() TwoPhaseSetState[T] {

	return TwoPhaseSetState[T]{
		Added:   s.added.State(),
		Removed: s.removed.State(),
	}
}

// TwoPhaseSetFromState rebuilds a two-phase set from raw state.
func TwoPhaseSetFromState[T comparable](state TwoPhaseSetState[T]) *TwoPhaseSet[T] {

	return &TwoPhaseSet[T]{
		added:   GSetFromState(state.Added),
		removed: GSetFromState(state.Removed),
	}
}

// State returns a deep-copied snapshot of the set's raw state.
func (s *ORSet[T]) State() ORSetState[T] {

	return ORSetState[T]{
		Live: copyTagMap(s.live),
		Tomb: copyTagMap(s.tomb),
	}
}

// ORSetFromState rebuilds an observed-removed set from raw state. The
// supplied tag source feeds later adds on the restored instance; a replica
// that only merges the restored state may pass any source.
func ORSetFromState[T comparable](state ORSetState[T], tags TagSource) *ORSet[T] {

	s := InitORSet[T](tags)

	for elem, tagList := range state.Live {

		alive := make(map[Tag]struct{}, len(tagList))
		for _, tag := range tagList {
			alive[tag] = struct{}{}
		}
		s.live[elem] = alive
	}

	for elem, tagList := range state.Tomb {

		dead := make(map[Tag]struct{}, len(tagList))
		for _, tag := range tagList {
			dead[tag] = struct{}{}
		}
		s.tomb[elem] = dead
	}

	return s
}

// MarshalState encodes any of the *State snapshots into bytes ready to be
// handed to a transport.
func MarshalState(state any) ([]byte, error) {

	data, err := msgpack.Marshal(state)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal crdt state")
	}

	return data, nil
}

// UnmarshalState decodes bytes produced by MarshalState back into the
// snapshot type S.
func UnmarshalState[S any](data []byte) (S, error) {

	var state S

	if err := msgpack.Unmarshal(data, &state); err != nil {
		return state, errors.Wrap(err, "failed to unmarshal crdt state")
	}

	return state, nil
}

// copyTagMap flattens a map of tag-sets into a map of tag slices, copying
// every entry.
func copyTagMap[T comparable](in map[T]map[Tag]struct{}) map[T][]Tag {

	out := make(map[T][]Tag, len(in))
	for elem, tags := range in {

		tagList := make([]Tag, 0, len(tags))
		for tag := range tags {
			tagList = append(tagList, tag)
		}

		out[elem] = tagList
	}

	return out
}
