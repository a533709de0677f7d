package main

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/undisputed-seraphim/crdt/config"
	"github.com/undisputed-seraphim/crdt/crdt"
)

// Structs

// replica bundles one simulated replica's instance of every data type
// together with its replica index. The observed-removed set draws its tags
// from a per-replica tag source, so no two replicas ever collide.
type replica struct {
	index    int
	counter  *crdt.PNCounter
	grow     *crdt.GSet[string]
	twoPhase *crdt.TwoPhaseSet[string]
	observe  *crdt.ORSet[string]
}

// Simulation drives a cluster of in-process replicas. Every round each
// replica applies a batch of random local operations and then merges the
// state of one random peer, shipped through the raw-state codec just like
// a real transport would do it. A final all-to-all exchange completes
// convergence, which is then verified replica by replica.
type Simulation struct {
	conf     config.Simulation
	logger   log.Logger
	metrics  *SimMetrics
	rng      *rand.Rand
	replicas []*replica
}

// Functions

// NewSimulation prepares conf.Replicas fresh replicas and a deterministic
// random source seeded from the config.
func NewSimulation(conf config.Simulation, logger log.Logger, metrics *SimMetrics) (*Simulation, error) {

	replicas := make([]*replica, conf.Replicas)

	for i := range replicas {

		counter, err := crdt.InitPNCounter(conf.Replicas)
		if err != nil {
			return nil, err
		}

		replicas[i] = &replica{
			index:    i,
			counter:  counter,
			grow:     crdt.InitGSet[string](),
			twoPhase: crdt.InitTwoPhaseSet[string](),
			observe:  crdt.InitORSet[string](crdt.InitReplicaTagSource(fmt.Sprintf("replica-%d", i))),
		}
	}

	return &Simulation{
		conf:     conf,
		logger:   logger,
		metrics:  metrics,
		rng:      rand.New(rand.NewSource(conf.Seed)),
		replicas: replicas,
	}, nil
}

// applyRandomOp performs one random local mutation on r. Elements are
// drawn from a small alphabet so adds, removes and re-adds of equal
// elements collide across replicas, the interesting case.
func (s *Simulation) applyRandomOp(r *replica) {

	elem := fmt.Sprintf("element-%d", s.rng.Intn(12))

	switch s.rng.Intn(7) {
	case 0:
		r.counter.Increment(r.index)
		s.metrics.Ops.With("type", "pncounter").Add(1)
	case 1:
		r.counter.Decrement(r.index)
		s.metrics.Ops.With("type", "pncounter").Add(1)
	case 2:
		r.grow.Add(elem)
		s.metrics.Ops.With("type", "gset").Add(1)
	case 3:
		r.twoPhase.Add(elem)
		s.metrics.Ops.With("type", "twophaseset").Add(1)
	case 4:
		r.twoPhase.Remove(elem)
		s.metrics.Ops.With("type", "twophaseset").Add(1)
	case 5:
		r.observe.Add(elem)
		s.metrics.Ops.With("type", "orset").Add(1)
	case 6:
		r.observe.Remove(elem)
		s.metrics.Ops.With("type", "orset").Add(1)
	}
}

// shipState delivers every data type of src to dst through the raw-state
// codec: snapshot, marshal, unmarshal, rebuild, merge. Shipping the bytes
// instead of sharing the instances keeps the replicas as isolated as
// processes on different machines.
func (s *Simulation) shipState(dst *replica, src *replica) error {

	// Positive-negative counter.
	wire, err := crdt.MarshalState(src.counter.State())
	if err != nil {
		return err
	}

	counterState, err := crdt.UnmarshalState[crdt.PNCounterState](wire)
	if err != nil {
		return err
	}

	peerCounter, err := crdt.PNCounterFromState(counterState)
	if err != nil {
		return err
	}

	dst.counter.Merge(peerCounter)
	s.metrics.Merges.With("type", "pncounter").Add(1)

	// Grow-only set.
	wire, err = crdt.MarshalState(src.grow.State())
	if err != nil {
		return err
	}

	growState, err := crdt.UnmarshalState[crdt.GSetState[string]](wire)
	if err != nil {
		return err
	}

	dst.grow.Merge(crdt.GSetFromState(growState))
	s.metrics.Merges.With("type", "gset").Add(1)

	// Two-phase set.
	wire, err = crdt.MarshalState(src.twoPhase.State())
	if err != nil {
		return err
	}

	twoPhaseState, err := crdt.UnmarshalState[crdt.TwoPhaseSetState[string]](wire)
	if err != nil {
		return err
	}

	dst.twoPhase.Merge(crdt.TwoPhaseSetFromState(twoPhaseState))
	s.metrics.Merges.With("type", "twophaseset").Add(1)

	// Observed-removed set. The receiving side only merges the restored
	// instance, so the tag source is irrelevant.
	wire, err = crdt.MarshalState(src.observe.State())
	if err != nil {
		return err
	}

	observeState, err := crdt.UnmarshalState[crdt.ORSetState[string]](wire)
	if err != nil {
		return err
	}

	dst.observe.Merge(crdt.ORSetFromState(observeState, crdt.UUIDTagSource{}))
	s.metrics.Merges.With("type", "orset").Add(1)

	return nil
}

// Run executes the configured rounds of mutation and gossip, performs the
// final all-to-all exchange and verifies that every replica arrived at the
// same externally visible values.
func (s *Simulation) Run() error {

	// Remaining local operations per replica, spread over the rounds.
	remaining := make([]int, len(s.replicas))
	for i := range remaining {
		remaining[i] = s.conf.OpsPerReplica
	}

	for round := 0; round < s.conf.Rounds; round++ {

		for i, r := range s.replicas {

			// Apply this replica's share of operations for the round.
			batch := remaining[i] / (s.conf.Rounds - round)
			for op := 0; op < batch; op++ {
				s.applyRandomOp(r)
			}
			remaining[i] -= batch

			// Gossip: merge the shipped state of one random peer.
			peer := s.replicas[s.rng.Intn(len(s.replicas))]
			if peer == r {
				continue
			}

			if err := s.shipState(r, peer); err != nil {
				return err
			}
		}

		level.Debug(s.logger).Log("msg", "gossip round finished", "round", round)
	}

	// Final exchange: fold every replica into replica 0, then replica 0
	// back into every other replica. Afterwards all replicas have observed
	// all updates.
	head := s.replicas[0]

	for _, r := range s.replicas[1:] {

		if err := s.shipState(head, r); err != nil {
			return err
		}
	}

	for _, r := range s.replicas[1:] {

		if err := s.shipState(r, head); err != nil {
			return err
		}
	}

	if err := s.verify(); err != nil {
		return err
	}

	level.Info(s.logger).Log(
		"msg", "all replicas converged",
		"replicas", len(s.replicas),
		"counter", head.counter.Value(),
		"gset", head.grow.Len(),
		"twophaseset", head.twoPhase.Len(),
		"orset", head.observe.Len(),
	)

	return nil
}

// verify checks that every replica exposes the same externally visible
// values as replica 0 and that the partial orders agree in both directions.
func (s *Simulation) verify() error {

	head := s.replicas[0]

	for _, r := range s.replicas[1:] {

		if r.counter.Value() != head.counter.Value() {
			return fmt.Errorf("replica %d diverged on counter: %d != %d", r.index, r.counter.Value(), head.counter.Value())
		}

		if !equalElements(r.grow.Value(), head.grow.Value()) {
			return fmt.Errorf("replica %d diverged on grow-only set", r.index)
		}

		if !equalElements(r.twoPhase.Value(), head.twoPhase.Value()) {
			return fmt.Errorf("replica %d diverged on two-phase set", r.index)
		}

		if !equalElements(r.observe.Value(), head.observe.Value()) {
			return fmt.Errorf("replica %d diverged on observed-removed set", r.index)
		}

		// Equal states are mutually ordered.
		if !r.counter.LessOrEqual(head.counter) || !head.counter.LessOrEqual(r.counter) {
			return fmt.Errorf("replica %d counter state is not equal to replica 0 under the partial order", r.index)
		}

		if !r.observe.LessOrEqual(head.observe) || !head.observe.LessOrEqual(r.observe) {
			return fmt.Errorf("replica %d observed-removed set state is not equal to replica 0 under the partial order", r.index)
		}
	}

	return nil
}

// equalElements compares two unordered element slices.
func equalElements(a []string, b []string) bool {

	if len(a) != len(b) {
		return false
	}

	sort.Strings(a)
	sort.Strings(b)

	for i := range a {

		if a[i] != b[i] {
			return false
		}
	}

	return true
}
