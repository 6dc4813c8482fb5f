package agg

import (
	"streamagg/value"
)

// Executor is the contract every aggregate function implements. One
// executor instance serves one aggregator configuration inside one
// query plan; the per-key accumulators live in State values produced
// by the factory Init returns.
//
// ProcessAdd and ProcessRemove mutate only the given state and return
// the aggregate recomputed over it. For a single state, remove calls
// correspond 1:1 to prior add calls with the same logical value; the
// window guarantees that ordering and the executor performs no
// validation of it. The batch forms apply the algebra once per element
// in order and return only the final aggregate.
type Executor interface {
	// Init validates parameter arity and types and returns a factory
	// for fresh state. Called exactly once per query-plan
	// instantiation; failures are configuration errors surfaced
	// before any event is processed.
	Init(params *InitParams) (StateFactory, error)

	ProcessAdd(v value.Value, state State) (value.Value, error)
	ProcessAddBatch(vs []value.Value, state State) (value.Value, error)

	ProcessRemove(v value.Value, state State) (value.Value, error)
	ProcessRemoveBatch(vs []value.Value, state State) (value.Value, error)

	// Reset clears the state to the algebra's identity element and
	// returns the aggregate of an empty window.
	Reset(state State) value.Value

	// ReturnType is queried by the planner for output-schema
	// inference. Static once Init has run.
	ReturnType() value.Type
}
