package agg

// State is the per-partition accumulator owned by one aggregator
// configuration for one group-by key. It is mutated by at most one
// logical thread at a time; the engine serializes access per key, so
// implementations hold no locks.
type State interface {
	// CanDestroy reports whether every accumulator is at its neutral
	// value, i.e. the state can be evicted and rebuilt from scratch
	// without losing information.
	CanDestroy() bool

	// Snapshot returns the minimal ordered field set needed to
	// reconstruct the state. Field names are stable identifiers and
	// must stay backward compatible across versions.
	Snapshot() *Snapshot

	// Restore replaces the state's fields from a snapshot. A missing
	// or mistyped field is a corrupt-snapshot error; the state must
	// not fall back to defaults.
	Restore(snap *Snapshot) error
}

// StateFactory produces a fresh State. Returned by Executor.Init and
// invoked once per newly observed group-by key.
type StateFactory func() State
