package agg

import (
	"streamagg/value"
)

func init() {
	Register(Extension{
		Name:        "distinctCount",
		Description: "Returns the count of distinct values for all the events.",
		Parameters: []Parameter{
			{Name: "arg", Description: "The value whose distinct occurrences are counted.",
				Types: []value.Type{value.TypeBool, value.TypeInt, value.TypeLong,
					value.TypeDouble, value.TypeFloat, value.TypeString},
				Dynamic: true},
		},
		Return: ReturnAttribute{
			Description: "Number of distinct live values in the window.",
			Types:       []value.Type{value.TypeLong},
		},
		Example: "select distinctCount(symbol) as numSymbols",
	}, func() Executor { return NewDistinctCountExecutor() })
}

// DistinctCountExecutor keeps per-value occurrence counts keyed by the
// value's interned identity; a key is dropped the moment its count
// reaches zero, so the map length is always the distinct count of live
// values.
type DistinctCountExecutor struct{}

func NewDistinctCountExecutor() *DistinctCountExecutor {
	return &DistinctCountExecutor{}
}

type distinctCountState struct {
	occurrences map[string]int64
}

func newDistinctCountState() *distinctCountState {
	return &distinctCountState{occurrences: make(map[string]int64)}
}

func (s *distinctCountState) CanDestroy() bool {
	return len(s.occurrences) == 0
}

func (s *distinctCountState) Snapshot() *Snapshot {
	counts := make(map[string]int64, len(s.occurrences))
	for k, n := range s.occurrences {
		counts[k] = n
	}
	snap := NewSnapshot()
	snap.Put("distinctValues", counts)
	return snap
}

func (s *distinctCountState) Restore(snap *Snapshot) error {
	counts, err := snap.CountMap("distinctValues")
	if err != nil {
		return err
	}
	s.occurrences = counts
	return nil
}

func (s *distinctCountState) add(v value.Value) {
	s.occurrences[v.Key()]++
}

func (s *distinctCountState) remove(v value.Value) {
	key := v.Key()
	if n := s.occurrences[key]; n > 1 {
		s.occurrences[key] = n - 1
	} else {
		delete(s.occurrences, key)
	}
}

func (s *distinctCountState) output() value.Value {
	return value.Long(int64(len(s.occurrences)))
}

func (e *DistinctCountExecutor) Init(params *InitParams) (StateFactory, error) {
	if len(params.Arguments) != 1 {
		return nil, arityError("distinctCount", 1, len(params.Arguments))
	}
	return func() State { return newDistinctCountState() }, nil
}

func (e *DistinctCountExecutor) ReturnType() value.Type {
	return value.TypeLong
}

func (e *DistinctCountExecutor) ProcessAdd(v value.Value, state State) (value.Value, error) {
	s, ok := state.(*distinctCountState)
	if !ok {
		return value.Null(), stateTypeError("distinctCount", state)
	}
	s.add(v)
	return s.output(), nil
}

func (e *DistinctCountExecutor) ProcessAddBatch(vs []value.Value, state State) (value.Value, error) {
	s, ok := state.(*distinctCountState)
	if !ok {
		return value.Null(), stateTypeError("distinctCount", state)
	}
	for _, v := range vs {
		s.add(v)
	}
	return s.output(), nil
}

func (e *DistinctCountExecutor) ProcessRemove(v value.Value, state State) (value.Value, error) {
	s, ok := state.(*distinctCountState)
	if !ok {
		return value.Null(), stateTypeError("distinctCount", state)
	}
	s.remove(v)
	return s.output(), nil
}

func (e *DistinctCountExecutor) ProcessRemoveBatch(vs []value.Value, state State) (value.Value, error) {
	s, ok := state.(*distinctCountState)
	if !ok {
		return value.Null(), stateTypeError("distinctCount", state)
	}
	for _, v := range vs {
		s.remove(v)
	}
	return s.output(), nil
}

func (e *DistinctCountExecutor) Reset(state State) value.Value {
	if s, ok := state.(*distinctCountState); ok {
		s.occurrences = make(map[string]int64)
	}
	return value.Long(0)
}
