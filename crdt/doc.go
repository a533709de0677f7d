/*
Package crdt implements a family of state-based convergent replicated data
types (CvRDTs): a grow-only counter (GCounter), a positive-negative counter
(PNCounter), a grow-only set (GSet), a two-phase set (TwoPhaseSet) and an
observed-removed set (ORSet).

Every type carries a Merge operation that folds a peer replica's state into
the local one. Merge is commutative, associative and idempotent for all
types, so replicas that have observed the same set of updates converge to
identical state no matter in which order, or how often, peer states are
delivered. A LessOrEqual partial order over states is exposed alongside
Merge for convergence monitoring.

CAUTION! Consider these two requirements:
  - Access to the values this package provides is expected to be synchronized
    explicitly by some outside measure, e.g. by wrapping calls to this package
    with a mutex lock if concurrent access is possible. This package does
    not(!) synchronize access by itself.
  - The argument passed to Merge is only read, but the caller must guarantee
    it is not mutated concurrently for the duration of the call, e.g. by
    handing over a snapshot obtained via the State functions.

The state-based designs of this package are practical derivations from their
specification by Shapiro, Preguiça, Baquero and Zawirski, available under:
https://hal.inria.fr/inria-00555588/document
*/
package crdt
